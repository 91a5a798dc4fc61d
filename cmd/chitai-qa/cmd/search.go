package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
	"github.com/donaldgifford/chitai-gorod-qa/pkg/logger"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

var errNotOK = errors.New("API did not respond ok")

func searchCmd(a *app) *cobra.Command {
	var (
		page     int
		perPage  int
		city     string
		all      bool
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "search <phrase>",
		Short: "Search the catalog",
		Long:  "Calls the product search endpoint and prints the adapted result.",
		Example: `  chitai-qa search "Лев Толстой"
  chitai-qa search детектив --city Санкт-Петербург --per-page 48
  chitai-qa search книга --all --max-pages 3 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cityID, err := a.cfg.API.ResolveCity(city)
			if err != nil {
				return err
			}
			if perPage == 0 {
				perPage = a.cfg.API.PerPage
			}

			req := chitai.SearchRequest{
				Phrase:  args[0],
				Page:    page,
				PerPage: perPage,
				CityID:  cityID,
			}

			client := a.newClient()

			var res *domain.SearchResult
			if all {
				if maxPages == 0 {
					maxPages = a.cfg.API.MaxPages
				}
				p := chitai.NewPaginator(client, chitai.WithPaginatorLogger(logger.Component(a.log, "paginator")))
				collected, err := p.Collect(cmd.Context(), req, maxPages)
				if err != nil {
					return err
				}
				a.log.Info("collected pages", "pages", collected.PagesUsed, "stopped_at", collected.StoppedAt)
				res = collected.Result
			} else {
				res, err = client.SearchProducts(cmd.Context(), req)
				if err != nil {
					return err
				}
			}

			if a.jsonOutput() {
				if err := outputJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else if res.OK {
				if err := printBooksTable(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}

			return checkOK(res.OK, res.Status, res.Error)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "first page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "products per page (default from config)")
	cmd.Flags().StringVar(&city, "city", "", "city name or id (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "follow pages until the total is reached")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "page limit with --all (default from config)")

	return cmd
}

func popularCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "List popular search phrases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.newClient().PopularSearches(cmd.Context())
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				if err := outputJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else if res.OK {
				if err := printPopularTable(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}

			return checkOK(res.OK, res.Status, res.Error)
		},
	}
}

func checkOK(ok bool, status []byte, msg string) error {
	switch {
	case ok:
		return nil
	case len(status) > 0:
		return fmt.Errorf("%w: status %s", errNotOK, status)
	case msg != "":
		return fmt.Errorf("%w: %s", errNotOK, msg)
	default:
		return errNotOK
	}
}
