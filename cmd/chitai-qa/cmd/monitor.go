package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/chitai-gorod-qa/internal/monitor"
	"github.com/donaldgifford/chitai-gorod-qa/internal/smoke"
	"github.com/donaldgifford/chitai-gorod-qa/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func monitorCmd(a *app) *cobra.Command {
	var (
		runOnStart bool
		migrate    bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the smoke suite on a schedule and serve health and metrics",
		Long: "Runs the smoke suite every monitor.interval and serves /healthz, /readyz,\n" +
			"/metrics and /runs/latest until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			mc := a.cfg.Monitor
			suiteOpts := []smoke.Option{
				smoke.WithChecks(smoke.DefaultChecks(smokeInputs(&a.cfg.Smoke))...),
				smoke.WithTrigger(smoke.TriggerSchedule),
				smoke.WithParallelism(a.cfg.Smoke.Parallelism),
				smoke.WithCheckTimeout(a.cfg.Smoke.CheckTimeout),
				smoke.WithNotifier(a.newNotifier(), a.cfg.Notifications.Discord.NotifyOnPass),
				smoke.WithLogger(logger.Component(a.log, "smoke")),
			}
			schedOpts := []monitor.SchedulerOption{
				monitor.WithSchedulerLogger(logger.Component(a.log, "scheduler")),
			}
			var serverOpts []monitor.ServerOption

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if s != nil {
				defer s.Close()
				if migrate {
					if err := s.Migrate(ctx); err != nil {
						return err
					}
				}
				suiteOpts = append(suiteOpts, smoke.WithRecorder(s))
				schedOpts = append(schedOpts, monitor.WithPruner(s, mc.Retention))
				serverOpts = append(serverOpts, monitor.WithPinger(s))
			}

			suite := smoke.NewSuite(a.newClient(), smoke.Inputs{}, suiteOpts...)
			sched, err := monitor.NewScheduler(suite, mc.Interval, schedOpts...)
			if err != nil {
				return fmt.Errorf("creating scheduler: %w", err)
			}

			serverOpts = append(serverOpts,
				monitor.WithLastRun(sched.LastRun),
				monitor.WithTimeouts(mc.ReadTimeout, mc.WriteTimeout),
				monitor.WithServerLogger(logger.Component(a.log, "server")),
			)
			addr := net.JoinHostPort(mc.Host, strconv.Itoa(mc.Port))
			srv := monitor.NewServer(addr, serverOpts...)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)

			if runOnStart {
				g.Go(func() error {
					run, err := sched.RunNow(gctx)
					if errors.Is(err, monitor.ErrRunInProgress) {
						a.log.Info("initial smoke run skipped, scheduled run already going")
						return nil
					}
					if err != nil {
						a.log.Warn("initial smoke run did not complete", "error", err)
						return nil
					}
					a.log.Info("initial smoke run finished", "run_id", run.ID, "passed", run.Passed)
					return nil
				})
			}

			sched.Start()

			g.Go(func() error {
				<-gctx.Done()
				a.log.Info("shutting down")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				select {
				case <-sched.Stop().Done():
				case <-shutdownCtx.Done():
					a.log.Warn("scheduled run still in progress at shutdown")
				}
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}
			a.log.Info("monitor stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&runOnStart, "run-on-start", true, "run the suite once at startup")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply database migrations at startup")

	return cmd
}
