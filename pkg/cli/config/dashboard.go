package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// DashboardFile is the TOML representation of the dashboard configuration
type DashboardFile struct {
	Title    string           `toml:"title"`
	Caption  string           `toml:"caption"`
	Dataset  string           `toml:"dataset"`
	Defaults DashboardDefault `toml:"defaults"`
}

// DashboardDefault holds the initial control values. Unset keys keep the
// built-in defaults.
type DashboardDefault struct {
	View         string `toml:"view"`
	Threshold    *int   `toml:"threshold"`
	ProbReduce   *int   `toml:"prob_reduce"`
	ImpactReduce *int   `toml:"impact_reduce"`
}

// LoadDashboardFile loads the dashboard configuration from a TOML file
func LoadDashboardFile(path string) (*DashboardFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "dashboard config not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file DashboardFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()),
		)
	}

	return &file, nil
}

// ToDomain merges the file over the built-in defaults and validates the result
func (f *DashboardFile) ToDomain() (*domainConfig.Dashboard, error) {
	d := domainConfig.DefaultDashboard()

	if f.Title != "" {
		d.Title = f.Title
	}
	if f.Caption != "" {
		d.Caption = f.Caption
	}
	if f.Dataset != "" {
		d.Dataset = f.Dataset
	}

	view, err := types.ParseViewMode(f.Defaults.View)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid default view", goerr.V(ViewKey, f.Defaults.View))
	}
	d.DefaultView = view

	if f.Defaults.Threshold != nil {
		d.DefaultParameters.Threshold = float64(*f.Defaults.Threshold)
	}
	if f.Defaults.ProbReduce != nil {
		d.DefaultParameters.ProbReducePct = float64(*f.Defaults.ProbReduce)
	}
	if f.Defaults.ImpactReduce != nil {
		d.DefaultParameters.ImpactReducePct = float64(*f.Defaults.ImpactReduce)
	}
	if err := d.DefaultParameters.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid default parameters")
	}

	return d, nil
}

// Dashboard holds CLI flags locating the dashboard configuration and dataset
type Dashboard struct {
	configPath string
	dataset    string
}

// Flags returns CLI flags for dashboard configuration
func (x *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Dashboard configuration file (TOML)",
			Sources:     cli.EnvVars("RISKDSS_CONFIG"),
			Destination: &x.configPath,
		},
		&cli.StringFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "Risk dataset CSV (local path or gs://bucket/object); overrides the config file",
			Sources:     cli.EnvVars("RISKDSS_DATASET"),
			Destination: &x.dataset,
		},
	}
}

// Configure resolves the dashboard settings. The --dataset flag wins over
// the config file, which wins over the built-in default.
func (x *Dashboard) Configure() (*domainConfig.Dashboard, error) {
	file := &DashboardFile{}
	if x.configPath != "" {
		loaded, err := LoadDashboardFile(x.configPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	d, err := file.ToDomain()
	if err != nil {
		return nil, goerr.Wrap(err, "dashboard config validation failed", goerr.V(ConfigPathKey, x.configPath))
	}

	if x.dataset != "" {
		d.Dataset = x.dataset
	}

	return d, nil
}
