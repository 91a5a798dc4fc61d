package cmd

import (
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/chitai-gorod-qa/internal/config"
	"github.com/donaldgifford/chitai-gorod-qa/internal/smoke"
	"github.com/donaldgifford/chitai-gorod-qa/pkg/logger"
)

func smokeCmd(a *app) *cobra.Command {
	var (
		metricsFile string
		only        []string
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the smoke suite once",
		Long: "Runs every smoke check against the live API and prints the verdict.\n" +
			"Exits non-zero when any check fails or errors.",
		Example: `  chitai-qa smoke
  chitai-qa smoke --only search_tolstoy,popular_searches
  chitai-qa smoke --metrics-file /var/lib/node_exporter/chitai.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			checks, err := selectChecks(smokeInputs(&a.cfg.Smoke), only)
			if err != nil {
				return err
			}

			opts := []smoke.Option{
				smoke.WithChecks(checks...),
				smoke.WithParallelism(a.cfg.Smoke.Parallelism),
				smoke.WithCheckTimeout(a.cfg.Smoke.CheckTimeout),
				smoke.WithNotifier(a.newNotifier(), a.cfg.Notifications.Discord.NotifyOnPass),
				smoke.WithLogger(logger.Component(a.log, "smoke")),
			}

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if s != nil {
				defer s.Close()
				opts = append(opts, smoke.WithRecorder(s))
			}

			run, err := smoke.NewSuite(a.newClient(), smoke.Inputs{}, opts...).Run(ctx)
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, prometheus.DefaultGatherer); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}

			if a.jsonOutput() {
				err = outputJSON(cmd.OutOrStdout(), run)
			} else {
				err = printRunTable(cmd.OutOrStdout(), run)
			}
			if err != nil {
				return err
			}

			if !run.Passed {
				return fmt.Errorf("smoke run %s failed: %d check(s) did not pass", run.ID, len(run.FailedChecks()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	cmd.Flags().StringSliceVar(&only, "only", nil, "run only the named checks")

	return cmd
}

func smokeInputs(c *config.SmokeConfig) smoke.Inputs {
	return smoke.Inputs{
		AuthorPhrase:  c.Phrases.Author,
		GenericPhrase: c.Phrases.Generic,
		GenrePhrase:   c.Phrases.Genre,
		TypoQueries:   c.TypoQueries,
		NonsenseQuery: c.NonsenseQuery,
	}
}

// selectChecks filters the default checks by name, keeping their order.
func selectChecks(in smoke.Inputs, only []string) ([]smoke.Check, error) {
	all := smoke.DefaultChecks(in)
	if len(only) == 0 {
		return all, nil
	}

	known := make([]string, 0, len(all))
	for i := range all {
		known = append(known, all[i].Name)
	}
	for _, name := range only {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown check %q (known: %v)", name, known)
		}
	}

	selected := make([]smoke.Check, 0, len(only))
	for i := range all {
		if slices.Contains(only, all[i].Name) {
			selected = append(selected, all[i])
		}
	}
	return selected, nil
}
