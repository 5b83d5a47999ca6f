package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting
type Sentry struct {
	dsn string
	env string
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled if empty)",
			Category:    "Sentry",
			Sources:     cli.EnvVars("RISKDSS_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "development",
			Category:    "Sentry",
			Sources:     cli.EnvVars("RISKDSS_SENTRY_ENV"),
			Destination: &x.env,
		},
	}
}

type sentryLogValue struct {
	Enabled bool   `json:"enabled"`
	DSN     string `json:"dsn" masq:"secret"`
	Env     string `json:"env"`
}

// LogValue implements slog.LogValuer. DSN is redacted by the logger's masq
// filter.
func (x Sentry) LogValue() slog.Value {
	return slog.AnyValue(sentryLogValue{
		Enabled: x.dsn != "",
		DSN:     x.dsn,
		Env:     x.env,
	})
}

// Configure initializes the Sentry client. The returned flush function must
// be called before the process exits; it is a no-op when Sentry is disabled.
func (x *Sentry) Configure(release string) (func(), error) {
	if x.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize Sentry")
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}
