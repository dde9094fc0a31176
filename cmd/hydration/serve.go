// ABOUTME: CLI command for the JSON HTTP API.
// ABOUTME: Serves /api routes and Prometheus /metrics until interrupted.
package main

import (
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/server"
	"github.com/harperreed/hydration/internal/weather"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API used by the web app.

ROUTES (all under /api):

  GET  /ping                 Health check
  POST /users                Register a profile
  POST /auth/login           Sign in; returns profile, plans and daily records
  POST /plan                 Compute and store a plan
  GET  /logs                 Recent plans
  POST /logs/update          Record intake for a plan
  GET  /daily                Daily record for a date
  POST /daily                Merge a partial daily record
  POST /daily/urine          Log a urine color reading
  POST /daily/water          Log a drink
  POST /daily/water/reset    Clear the water log
  GET  /goal                 Daily goal with workout needs
  GET  /weather              Current weather for lat/lon

Prometheus metrics are served at /metrics.

Set WEATHER_API_KEY (or weather_api_key in config) to enable weather lookups.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		srv := server.NewServer(server.Params{
			Service:  svc,
			Weather:  weather.NewClient(cfg.GetWeatherAPIKey(), weather.WithMetrics(metricsManager)),
			Metrics:  metricsManager,
			Gatherer: promRegistry,
		})

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		color.Green("✓ Listening on %s", addr)
		log.WithField("addr", addr).Info("starting hydration API")
		if err := srv.Run(ctx, addr); err != nil {
			return err
		}
		log.Info("hydration API stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config listen_addr or :3000)")
	rootCmd.AddCommand(serveCmd)
}

