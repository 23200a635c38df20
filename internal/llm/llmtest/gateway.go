// Package llmtest provides a scripted llm.Gateway for tests.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/prompts"
)

// Markers are phrases that appear only in one built-in template, so a
// rendered prompt can be traced back to its stage.
var Markers = map[prompts.Key]string{
	prompts.KeyRequirements:   "AI-powered Business Analyst agent",
	prompts.KeyGoals:          "Product Owner AI agent",
	prompts.KeyDecomposition:  "breaking goals down into smaller",
	prompts.KeyTaskAssignment: "Senior Software Developer responsible",
	prompts.KeyRedefine:       "writes an improved one",
	prompts.KeyKeyFeatures:    "lists its key features",
	prompts.KeyDocumentation:  "writes detailed software documentation",
	prompts.KeyTaskPlan:       "creates the tasks needed",
	prompts.KeyUseCaseDiagram: "draws use case diagrams",
	prompts.KeyERDiagram:      "draws Entity-Relationship diagrams",
}

// ErrUnscripted is returned for prompts no reply was scripted for.
var ErrUnscripted = errors.New("llmtest: no reply scripted for prompt")

type script struct {
	reply string
	err   error
	hang  bool
}

// Gateway replies to each prompt according to the script for the
// template it was rendered from. It is safe for concurrent use.
type Gateway struct {
	mu      sync.Mutex
	scripts map[prompts.Key]script
	calls   map[prompts.Key]int
	options []llm.Options
}

// New returns a Gateway with nothing scripted.
func New() *Gateway {
	return &Gateway{
		scripts: make(map[prompts.Key]script),
		calls:   make(map[prompts.Key]int),
	}
}

// Reply scripts the raw text returned for key.
func (g *Gateway) Reply(key prompts.Key, raw string) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scripts[key] = script{reply: raw}
	return g
}

// Fail scripts a backend failure for key.
func (g *Gateway) Fail(key prompts.Key, err error) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scripts[key] = script{err: err}
	return g
}

// Hang makes calls for key block until their context ends.
func (g *Gateway) Hang(key prompts.Key) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scripts[key] = script{hang: true}
	return g
}

// Complete implements llm.Gateway.
func (g *Gateway) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	key, ok := Identify(prompt)

	g.mu.Lock()
	g.options = append(g.options, opts)
	if ok {
		g.calls[key]++
	}
	s, scripted := g.scripts[key]
	g.mu.Unlock()

	if !ok || !scripted {
		return "", &llm.BackendError{Provider: "llmtest", Err: ErrUnscripted}
	}
	if s.hang {
		<-ctx.Done()
		return "", &llm.BackendError{Provider: "llmtest", Err: ctx.Err()}
	}
	if s.err != nil {
		return "", &llm.BackendError{Provider: "llmtest", Err: s.err}
	}
	return s.reply, nil
}

// Calls returns how many prompts rendered from key were sent.
func (g *Gateway) Calls(key prompts.Key) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[key]
}

// Options returns the options of every call in order.
func (g *Gateway) Options() []llm.Options {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.Options(nil), g.options...)
}

// Identify returns the template a prompt was rendered from.
func Identify(prompt string) (prompts.Key, bool) {
	for key, marker := range Markers {
		if strings.Contains(prompt, marker) {
			return key, true
		}
	}
	return "", false
}
