package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"time"

	"ar-sync/feature/arsync"
	"ar-sync/feature/arsync/models"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var runsLimit int

// runsCmd lists recent runs from the history database.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent sync runs",
	Long:  `Lists the most recent sync runs recorded in the history database (DATABASE_ENABLED=true).`,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	history := arsync.NewHistory(a.db)
	if !history.Enabled() {
		return errors.New("run history is disabled: set DATABASE_ENABLED=true and check the connection")
	}
	if err := history.Migrate(); err != nil {
		return err
	}

	runs, err := history.Recent(context.Background(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		a.log.Info("No runs recorded yet")
		return nil
	}

	return renderRuns(os.Stdout, runs)
}

// renderRuns writes runs as a table, newest first.
func renderRuns(w io.Writer, runs []models.SyncRun) error {
	table := tablewriter.NewTable(w)
	table.Header("ID", "Started", "Duration", "Trigger", "Status", "Updated", "Created", "Not Found", "Errors", "Error")

	for _, r := range runs {
		status := r.Status
		if r.DryRun {
			status += " (dry run)"
		}
		row := []any{
			strconv.FormatUint(uint64(r.ID), 10),
			r.StartedAt.UTC().Format(time.RFC3339),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String(),
			r.Trigger,
			status,
			r.Updated,
			r.Created,
			r.NotFound,
			r.Errors,
			truncate(r.Error, 60),
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}

	return table.Render()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
