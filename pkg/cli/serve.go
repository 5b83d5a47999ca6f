package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/riskdss/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskdss/pkg/controller/http"
	"github.com/secmon-lab/riskdss/pkg/service/metrics"
	"github.com/secmon-lab/riskdss/pkg/usecase"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var corsOrigins string
	var dashboardCfg config.Dashboard

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKDSS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "cors-origin",
			Usage:       "Comma separated origins allowed to call /api (CORS disabled if empty)",
			Sources:     cli.EnvVars("RISKDSS_CORS_ORIGIN"),
			Destination: &corsOrigins,
		},
	}
	flags = append(flags, dashboardCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the interactive dashboard HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			dashboard, err := dashboardCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load dashboard configuration")
			}

			repo, err := config.OpenDataset(ctx, dashboard.Dataset)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo, "dataset repository")

			dataset, err := usecase.LoadDataset(ctx, repo)
			if err != nil {
				return err
			}

			m := metrics.New()
			m.SetDatasetRecords(dataset.Len())

			uc := usecase.New(dataset,
				usecase.WithDashboardConfig(dashboard),
				usecase.WithObserver(m),
			)

			httpOpts := []httpctrl.Options{
				httpctrl.WithMetrics(m),
			}
			if origins := splitOrigins(corsOrigins); len(origins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithCORSOrigins(origins))
				logging.Default().Info("CORS enabled for /api", "origins", origins)
			}

			httpHandler, err := httpctrl.New(uc.Dashboard, httpOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			return runServer(ctx, server, dataset.SessionID().String())
		},
	}
}

// runServer serves until the listener fails or SIGINT/SIGTERM arrives, then
// shuts the server down gracefully.
func runServer(ctx context.Context, server *http.Server, sessionID string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logging.Default().Info("Starting HTTP server", "addr", server.Addr, "session_id", sessionID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return goerr.Wrap(err, "failed to start server", goerr.V("addr", server.Addr))
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		logging.Default().Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server gracefully")
		}

		logging.Default().Info("Server shutdown completed")
		return nil
	})

	return eg.Wait()
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
