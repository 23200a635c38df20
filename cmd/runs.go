/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/AgentX/internal/ui"
	"github.com/josephgoksu/AgentX/store"
)

var (
	runsLimit int
	runsJSON  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := openRuns(GetConfig())
		if err != nil {
			return err
		}
		defer func() { _ = runs.Close() }()

		list, err := runs.List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		return printRuns(cmd.OutOrStdout(), list, runsJSON)
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run with its artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := openRuns(GetConfig())
		if err != nil {
			return err
		}
		defer func() { _ = runs.Close() }()

		run, err := runs.Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no run with id %s", args[0])
		}
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "print runs as JSON")
}

func printRuns(w io.Writer, runs []store.Run, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, ui.StyleSubtle.Render("No runs recorded yet."))
		return err
	}
	_, err := fmt.Fprint(w, ui.RunTable(runs).Render())
	return err
}
