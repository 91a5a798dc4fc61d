package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/chitai-gorod-qa/internal/store"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if s == nil {
				return errNoDatabase
			}
			defer s.Close()

			names, err := store.MigrationNames()
			if err != nil {
				return err
			}
			a.log.Info("running migrations", "host", a.cfg.Database.Host, "available", len(names))
			if err := s.Migrate(ctx); err != nil {
				return err
			}
			a.log.Info("migrations complete")
			return nil
		},
	}
}
