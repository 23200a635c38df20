package llmtest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/prompts"
)

func TestMarkersAreUnique(t *testing.T) {
	for _, key := range prompts.Keys() {
		src, err := (*prompts.Renderer)(nil).Source(key)
		if err != nil {
			t.Fatal(err)
		}
		matches := 0
		for other, marker := range Markers {
			if strings.Contains(src, marker) {
				matches++
				if other != key {
					t.Errorf("template %s contains marker of %s", key, other)
				}
			}
		}
		if matches != 1 {
			t.Errorf("template %s matched %d markers, want 1", key, matches)
		}
	}
}

func TestGateway(t *testing.T) {
	boom := errors.New("boom")
	g := New().Reply(prompts.KeyKeyFeatures, `{"key_features": ["a"]}`).Fail(prompts.KeyRedefine, boom)

	got, err := g.Complete(context.Background(), "an agent that "+Markers[prompts.KeyKeyFeatures], llm.Options{Temperature: 1})
	if err != nil || got != `{"key_features": ["a"]}` {
		t.Fatalf("Complete() = %q, %v", got, err)
	}

	_, err = g.Complete(context.Background(), Markers[prompts.KeyRedefine], llm.Options{})
	var be *llm.BackendError
	if !errors.As(err, &be) || !errors.Is(err, boom) {
		t.Errorf("Complete() error = %v, want BackendError wrapping boom", err)
	}

	if _, err := g.Complete(context.Background(), "unknown prompt", llm.Options{}); !errors.Is(err, ErrUnscripted) {
		t.Errorf("Complete() error = %v, want ErrUnscripted", err)
	}

	if g.Calls(prompts.KeyKeyFeatures) != 1 || g.Calls(prompts.KeyRedefine) != 1 || g.Calls(prompts.KeyGoals) != 0 {
		t.Errorf("unexpected call counts")
	}
	if n := len(g.Options()); n != 3 {
		t.Errorf("Options() recorded %d calls, want 3", n)
	}
}

func TestGateway_Hang(t *testing.T) {
	g := New().Hang(prompts.KeyERDiagram)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.Complete(ctx, Markers[prompts.KeyERDiagram], llm.Options{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Complete() error = %v, want deadline exceeded", err)
	}
}
