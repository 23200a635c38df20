/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/josephgoksu/AgentX/internal/agents/core"
	"github.com/josephgoksu/AgentX/internal/config"
	"github.com/josephgoksu/AgentX/internal/llm"
	"github.com/josephgoksu/AgentX/internal/logger"
	"github.com/josephgoksu/AgentX/internal/pipeline"
	"github.com/josephgoksu/AgentX/prompts"
	"github.com/josephgoksu/AgentX/store"
	"github.com/josephgoksu/AgentX/types"
)

// app wires the configured backend, stage runner, run history and
// orchestrator for a command.
type app struct {
	cfg     *types.AppConfig
	logger  *slog.Logger
	gateway *llm.ChatGateway
	orch    *pipeline.Orchestrator
	// runs is nil when history is off.
	runs store.RunStore
}

// newApp builds the pipeline from cfg. Logs go to logOut.
func newApp(ctx context.Context, cfg *types.AppConfig, fs afero.Fs, logOut io.Writer) (*app, error) {
	level := cfg.Log.Level
	if cfg.Verbose {
		level = "debug"
	}
	log := logger.New(level, cfg.Log.Format, logOut)

	llmCfg, err := config.LoadLLMConfig(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure LLM: %w", err)
	}
	gw := llm.NewGateway(ctx, llmCfg, log)

	runnerOpts := []core.RunnerOption{core.WithLogger(log)}
	if dir := config.ExpandPath(cfg.Prompts.Dir); dir != "" {
		runnerOpts = append(runnerOpts, core.WithRenderer(prompts.NewRenderer(fs, dir)))
		log.Info("prompt overrides enabled", "dir", dir)
	}
	if dir := config.ExpandPath(cfg.Debug.MirrorDir); dir != "" {
		runnerOpts = append(runnerOpts, core.WithMirror(core.NewMirror(fs, dir)))
		log.Info("debug mirror enabled", "dir", dir)
	}
	runner := core.NewRunner(gw, llm.Options{Temperature: llmCfg.Temperature}, runnerOpts...)

	a := &app{cfg: cfg, logger: log, gateway: gw}
	orchOpts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithBackend(string(gw.Provider()), gw.ModelID()),
	}
	if path := config.ExpandPath(cfg.Store.Path); path != "" {
		runs, err := store.NewSQLiteRunStore(path)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		a.runs = runs
		orchOpts = append(orchOpts, pipeline.WithStore(runs))
	}

	a.orch = pipeline.New(runner, pipeline.Config{
		Timeout:  cfg.Pipeline.Timeout,
		Diagrams: cfg.Pipeline.Diagrams,
	}, orchOpts...)
	return a, nil
}

// Close releases the run history.
func (a *app) Close() error {
	if a.runs == nil {
		return nil
	}
	return a.runs.Close()
}

// openRuns opens run history for read-only commands, falling back to the
// default location when store.path is not set.
func openRuns(cfg *types.AppConfig) (*store.SQLiteRunStore, error) {
	path := config.ExpandPath(cfg.Store.Path)
	if path == "" {
		path = config.DefaultStorePath()
	}
	runs, err := store.NewSQLiteRunStore(path)
	if err != nil {
		return nil, fmt.Errorf("open run history at %s: %w", path, err)
	}
	return runs, nil
}
