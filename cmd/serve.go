/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/AgentX/internal/config"
	"github.com/josephgoksu/AgentX/internal/logger"
	"github.com/josephgoksu/AgentX/internal/server"
	"github.com/josephgoksu/AgentX/internal/ui"
)

var (
	serveAddr    string
	serveHistory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the AgentX HTTP API",
	Long: `Start the HTTP API that exposes the full pipeline, the single-stage
endpoints and the raw agents.

Examples:
  agentx serve                   # Listen on server.addr (default :5000)
  agentx serve --addr :8080      # Use a custom address
  agentx serve --history         # Record runs (default location when store.path is unset)`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveHistory, "history", false, "record pipeline runs")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := *GetConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveHistory && cfg.Store.Path == "" {
		cfg.Store.Path = config.DefaultStorePath()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fs := afero.NewOsFs()
	a, err := newApp(ctx, &cfg, fs, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if !a.gateway.Available() {
		fmt.Fprintln(os.Stderr, ui.StyleWarning.Render("⚠️  LLM backend unavailable; every request will fail until it is configured."))
	}

	opts := []server.Option{
		server.WithLogger(a.logger),
		server.WithCrashReporter(logger.NewCrashReporter(fs, config.ExpandPath(cfg.Server.CrashDir), GetVersion())),
	}
	if a.runs != nil {
		opts = append(opts, server.WithRunStore(a.runs))
	}
	srv := server.New(a.orch, server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		MinFields:      cfg.Pipeline.MinFields,
		Provider:       string(a.gateway.Provider()),
		Model:          a.gateway.ModelID(),
		Version:        GetVersion(),
	}, opts...)

	fmt.Println()
	fmt.Println(ui.StyleHeader.Render("🚀 AgentX " + GetVersion()))
	fmt.Printf("🌐 API: %s\n", cfg.Server.Addr)
	fmt.Printf("🤖 Model: %s/%s\n", a.gateway.Provider(), a.gateway.ModelID())
	if a.runs != nil {
		fmt.Printf("🗂  History: %s\n", config.ExpandPath(cfg.Store.Path))
	}
	fmt.Println()

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var serveErr error
	select {
	case sig := <-sigChan:
		fmt.Printf("\n⏹️  Received %v, shutting down...\n", sig)
	case serveErr = <-errChan:
		fmt.Fprintf(os.Stderr, "\n❌ Error: %v\n", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Server shutdown error: %v\n", err)
	}
	wg.Wait()
	fmt.Println("✅ AgentX stopped")
	return serveErr
}
