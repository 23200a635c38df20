package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Gateway sends one prompt to a text-completion backend and returns the raw
// reply. Calls are synchronous and made once; there is no retry.
type Gateway interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Options are per-call overrides.
type Options struct {
	Temperature float32
	// ModelID replaces the configured model for this call when set.
	ModelID string
}

// ErrUnavailable is wrapped by BackendError when the backend could not be
// constructed at startup (for example, no API key was configured).
var ErrUnavailable = errors.New("backend unavailable")

// BackendError reports a failed or unreachable backend call.
type BackendError struct {
	Provider Provider
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("llm backend %s: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ChatGateway implements Gateway over an Eino chat model.
type ChatGateway struct {
	model    model.BaseChatModel
	provider Provider
	modelID  string
	timeout  time.Duration
	initErr  error
}

// NewGateway builds a gateway from cfg. A backend that cannot be constructed
// does not fail startup: the returned gateway reports ErrUnavailable on every call.
func NewGateway(ctx context.Context, cfg Config, logger *slog.Logger) *ChatGateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &ChatGateway{
		provider: cfg.Provider,
		modelID:  cfg.Model,
		timeout:  cfg.Timeout,
	}
	chatModel, err := NewChatModel(ctx, cfg)
	if err != nil {
		logger.Warn("llm backend unavailable; every call will fail", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		g.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		return g
	}
	g.model = chatModel
	logger.Debug("llm backend ready", "provider", cfg.Provider, "model", cfg.Model)
	return g
}

// NewChatGateway wraps an existing chat model.
func NewChatGateway(m model.BaseChatModel, provider Provider, modelID string, timeout time.Duration) *ChatGateway {
	return &ChatGateway{model: m, provider: provider, modelID: modelID, timeout: timeout}
}

// Provider returns the configured provider.
func (g *ChatGateway) Provider() Provider { return g.provider }

// ModelID returns the configured default model.
func (g *ChatGateway) ModelID() string { return g.modelID }

// Available reports whether calls can reach a backend.
func (g *ChatGateway) Available() bool { return g.initErr == nil && g.model != nil }

// Complete sends prompt as a single user message.
func (g *ChatGateway) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	if g.initErr != nil {
		return "", &BackendError{Provider: g.provider, Err: g.initErr}
	}
	if g.model == nil {
		return "", &BackendError{Provider: g.provider, Err: ErrUnavailable}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	callOpts := []model.Option{model.WithTemperature(opts.Temperature)}
	if opts.ModelID != "" {
		callOpts = append(callOpts, model.WithModel(opts.ModelID))
	}

	resp, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, callOpts...)
	if err != nil {
		return "", &BackendError{Provider: g.provider, Err: err}
	}
	if resp == nil {
		return "", &BackendError{Provider: g.provider, Err: errors.New("empty response")}
	}
	return resp.Content, nil
}
