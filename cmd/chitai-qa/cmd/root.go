// Package cmd implements the chitai-qa CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
	"github.com/donaldgifford/chitai-gorod-qa/internal/config"
	"github.com/donaldgifford/chitai-gorod-qa/internal/notify"
	"github.com/donaldgifford/chitai-gorod-qa/internal/store"
	"github.com/donaldgifford/chitai-gorod-qa/pkg/logger"
)

const envPrefix = "CHITAI"

// app holds per-invocation state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string

	cfg    *config.Config
	log    *slog.Logger
	tokens *chitai.CachedTokenProvider
}

// Root returns a fresh root command, for documentation generation.
func Root() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "chitai-qa",
		Short: "API test harness for the chitai-gorod.ru storefront",
		Long: "chitai-qa calls the chitai-gorod.ru JSON:API to validate search and catalog\n" +
			"behavior. It can run ad-hoc searches, run the smoke suite once or on a\n" +
			"schedule, and keep run history in PostgreSQL.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (defaults are used when empty)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before config")
	pf.String("output", "table", "output format (table, json)")
	pf.String("log-level", "", "log level override (debug, info, warn, error)")
	pf.String("base-url", "", "site API base URL override")

	cobra.CheckErr(a.v.BindPFlag("output", pf.Lookup("output")))
	cobra.CheckErr(a.v.BindPFlag("log_level", pf.Lookup("log-level")))
	cobra.CheckErr(a.v.BindPFlag("base_url", pf.Lookup("base-url")))

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()
	for _, key := range []string{"token", "email", "password", "auth_enabled", "db_password"} {
		cobra.CheckErr(a.v.BindEnv(key))
	}

	root.AddCommand(
		searchCmd(a),
		popularCmd(a),
		tokenCmd(a),
		smokeCmd(a),
		historyCmd(a),
		migrateCmd(a),
		monitorCmd(a),
		statusCmd(a),
		versionCmd(),
	)

	return root
}

// init loads .env, the config file and flag/env overrides, then builds the
// logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", a.envFile, err)
	}

	if a.cfgFile != "" {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.cfg = cfg
	} else {
		a.cfg = config.Default()
	}

	a.applyOverrides()
	if err := config.Validate(a.cfg); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), a.cfg.Logging.Level, a.cfg.Logging.Format)
	return nil
}

func (a *app) applyOverrides() {
	if v := a.v.GetString("log_level"); v != "" {
		a.cfg.Logging.Level = v
	}
	if v := a.v.GetString("base_url"); v != "" {
		a.cfg.API.BaseURL = v
	}
	if v := a.v.GetString("token"); v != "" {
		a.cfg.Auth.Token = v
	}
	if v := a.v.GetString("email"); v != "" {
		a.cfg.Auth.Email = v
	}
	if v := a.v.GetString("password"); v != "" {
		a.cfg.Auth.Password = v
	}
	if a.v.IsSet("auth_enabled") {
		enabled := a.v.GetBool("auth_enabled")
		a.cfg.Auth.Enabled = &enabled
	}
	if v := a.v.GetString("db_password"); v != "" {
		a.cfg.Database.Password = v
	}
}

func (a *app) jsonOutput() bool {
	return a.v.GetString("output") == "json"
}

func (a *app) tokenProvider() *chitai.CachedTokenProvider {
	if a.tokens != nil {
		return a.tokens
	}
	auth := a.cfg.Auth
	a.tokens = chitai.NewCachedTokenProvider(
		chitai.WithAuthBaseURL(a.cfg.API.BaseURL),
		chitai.WithStaticToken(auth.Token),
		chitai.WithCredentials(auth.Email, auth.Password),
		chitai.WithCacheFile(auth.CacheFile),
		chitai.WithTokenTTL(auth.TTL, auth.RefreshBuffer),
		chitai.WithAuthHTTPClient(&http.Client{Timeout: a.cfg.API.Timeout}),
		chitai.WithAuthLogger(logger.Component(a.log, "auth")),
	)
	return a.tokens
}

func (a *app) newClient() *chitai.SearchClient {
	api := a.cfg.API
	rl := api.RateLimit

	opts := []chitai.Option{
		chitai.WithBaseURL(api.BaseURL),
		chitai.WithSiteURL(api.SiteURL),
		chitai.WithCityID(api.CityID),
		chitai.WithUserAgent(api.UserAgent),
		chitai.WithHTTPClient(&http.Client{Timeout: api.Timeout}),
		chitai.WithRateLimiter(chitai.NewRateLimiter(rl.PerSecond, rl.Burst, rl.WindowLimit, rl.Window)),
		chitai.WithLogger(logger.Component(a.log, "chitai")),
	}
	if a.cfg.Auth.IsEnabled() {
		opts = append(opts, chitai.WithTokenProvider(a.tokenProvider()))
	}

	return chitai.NewSearchClient(opts...)
}

// openStore connects to the run history database. It returns nil when no
// database is configured.
func (a *app) openStore(ctx context.Context) (*store.PostgresStore, error) {
	if !a.cfg.Database.Enabled() {
		return nil, nil //nolint:nilnil // nil store means history is disabled
	}
	s, err := store.NewPostgresStore(ctx, a.cfg.Database.DSN(), store.WithMaxConns(a.cfg.Database.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

func (a *app) newNotifier() notify.Notifier {
	d := a.cfg.Notifications.Discord
	if d.Enabled {
		return notify.NewDiscordNotifier(d.WebhookURL)
	}
	return notify.NewNoOpNotifier(logger.Component(a.log, "notify"))
}
