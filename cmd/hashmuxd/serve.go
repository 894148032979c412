package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/hashmux/hashmux/dispatch"
	"github.com/hashmux/hashmux/dispatchhandlers"
	"github.com/hashmux/hashmux/server"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demonstration route table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			level, err := cfg.slogLevel()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			mws := []dispatch.Middleware{
				dispatchhandlers.RequestIDMiddleware(dispatchhandlers.RequestIDConfig{}),
				dispatchhandlers.LoggingMiddleware(dispatchhandlers.LoggingConfig{Logger: logger}),
				dispatchhandlers.MetricsMiddleware(),
			}

			d, err := dispatch.Compile(demoTable(cfg.DescribePath, mws...), nil)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle(cfg.MetricsPath, promhttp.Handler())
			mux.Handle("/", d)

			srvCfg := server.Config{
				Addr:            cfg.Listen,
				Handler:         mux,
				EnableH2C:       cfg.EnableH2C,
				ShutdownTimeout: cfg.ShutdownTimeout,
				Logger:          logger.With("component", "server"),
			}
			if cfg.EnableCORS {
				srvCfg.CORS = &cors.Options{}
			}

			srv, err := server.New(srvCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "network listen address (overrides HASHMUX_LISTEN)")

	return cmd
}
