package cmd

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/chitai-gorod-qa/internal/monitor/client"
)

var errUnhealthy = errors.New("monitor is not healthy")

func statusCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the health and latest run of a running monitor",
		Long: "status queries a running 'chitai-qa monitor' for readiness and its most\n" +
			"recent smoke run. It exits non-zero when the monitor is not ready or the\n" +
			"latest run failed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = monitorURL(a.cfg.Monitor.Host, a.cfg.Monitor.Port)
			}

			c := client.New(addr, client.WithHTTPClient(&http.Client{Timeout: a.cfg.API.Timeout}))
			st, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				err = outputJSON(cmd.OutOrStdout(), st)
			} else {
				err = printStatus(cmd.OutOrStdout(), st)
			}
			if err != nil {
				return err
			}

			switch {
			case !st.Ready:
				return fmt.Errorf("%w: not ready", errUnhealthy)
			case st.LastRun != nil && !st.LastRun.Passed:
				return fmt.Errorf("%w: run %s failed", errUnhealthy, st.LastRun.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "monitor base URL (defaults to monitor.host and monitor.port)")

	return cmd
}

// monitorURL turns a listen address into one a client can dial.
func monitorURL(host string, port int) string {
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

func printStatus(w io.Writer, st *client.Status) error {
	tw := newTabWriter(w)
	tw.writef("HEALTHY\t%v\n", st.Healthy)
	tw.writef("READY\t%v\n", st.Ready)
	if st.LastRun == nil {
		tw.writef("LAST RUN\tnone yet\n")
		return tw.finish()
	}
	if err := tw.finish(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	if err != nil {
		return err
	}
	return printRunTable(w, st.LastRun)
}
