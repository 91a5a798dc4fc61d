package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect and refresh the bearer token",
	}

	cmd.AddCommand(
		tokenShowCmd(a),
		tokenCheckCmd(a),
		tokenRefreshCmd(a),
	)

	return cmd
}

func tokenShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Resolve a token and print where it came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tp := a.tokenProvider()
			token, err := tp.Token(cmd.Context())
			if err != nil {
				return err
			}
			return printToken(cmd, a, token, tp.Source(), tp.ExpiresAt())
		},
	}
}

func tokenCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the site accepts the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			valid, err := a.newClient().CheckToken(cmd.Context())
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("token rejected by %s", a.cfg.API.BaseURL)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "token is valid")
			return err
		},
	}
}

func tokenRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Drop the cached token and resolve a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tp := a.tokenProvider()
			token, err := tp.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return printToken(cmd, a, token, tp.Source(), tp.ExpiresAt())
		},
	}
}

func printToken(cmd *cobra.Command, a *app, token, source string, expires time.Time) error {
	if a.jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), map[string]any{
			"token":      maskToken(token),
			"source":     source,
			"expires_at": expires,
		})
	}

	tw := newTabWriter(cmd.OutOrStdout())
	tw.writef("Token:\t%s\n", maskToken(token))
	tw.writef("Source:\t%s\n", source)
	if !expires.IsZero() {
		tw.writef("Expires:\t%s (in %s)\n",
			expires.Local().Format(timeLayout),
			time.Until(expires).Round(time.Minute),
		)
	}
	return tw.finish()
}

// maskToken keeps the first six and last four characters.
func maskToken(token string) string {
	if len(token) <= 12 {
		return "****"
	}
	return token[:6] + "..." + token[len(token)-4:]
}
