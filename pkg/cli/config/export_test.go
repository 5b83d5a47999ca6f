package config

// ParseLogLevel is exported for testing
var ParseLogLevel = parseLogLevel

// NewDashboardForTest creates dashboard flags for testing purposes
func NewDashboardForTest(configPath, dataset string) *Dashboard {
	return &Dashboard{
		configPath: configPath,
		dataset:    dataset,
	}
}

// NewLoggerForTest creates logger flags for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewSentryForTest creates Sentry flags for testing purposes
func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{
		dsn: dsn,
		env: env,
	}
}
