package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/chitai-gorod-qa/internal/store"
)

var errNoDatabase = errors.New("run history needs database.host to be configured")

func historyCmd(a *app) *cobra.Command {
	var (
		limit   int
		offset  int
		trigger string
		failed  bool
		since   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded smoke runs",
		Long:  "Lists recorded runs newest first, or shows every check of a single run.",
		Example: `  chitai-qa history --limit 10 --failed
  chitai-qa history --trigger schedule --since 24h
  chitai-qa history 3f2c8a4e-6d1b-4c47-9b7a-0e5d2f1c9a88`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if s == nil {
				return errNoDatabase
			}
			defer s.Close()

			if len(args) == 1 {
				run, err := s.GetRun(ctx, args[0])
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), run)
				}
				return printRunTable(cmd.OutOrStdout(), run)
			}

			q := &store.RunQuery{Limit: limit, Offset: offset}
			if cmd.Flags().Changed("trigger") {
				q.Trigger = &trigger
			}
			if failed {
				passed := false
				q.Passed = &passed
			}
			if since > 0 {
				t := time.Now().Add(-since)
				q.Since = &t
			}

			runs, total, err := s.ListRuns(ctx, q)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"runs": runs, "total": total})
			}
			return printRunsTable(cmd.OutOrStdout(), runs, total)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "runs to skip")
	cmd.Flags().StringVar(&trigger, "trigger", "", "only runs with this trigger (manual, schedule)")
	cmd.Flags().BoolVar(&failed, "failed", false, "only failed runs")
	cmd.Flags().DurationVar(&since, "since", 0, "only runs started within this window")

	return cmd
}
