package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/cli/config"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "riskdss.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadDashboardFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "full configuration",
			content: `
title   = "Project Phoenix"
caption = "Quarterly review"
dataset = "gs://risk-bucket/phoenix.csv"

[defaults]
view          = "Risk Analysis"
threshold     = 55
prob_reduce   = 10
impact_reduce = 20
`,
		},
		{
			name:    "empty file",
			content: "",
		},
		{
			name:    "malformed TOML",
			content: "title = \"unterminated\n",
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := config.LoadDashboardFile(path)
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadDashboardFile(filepath.Join(t.TempDir(), "none.toml"))
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}

func TestDashboardFile_ToDomain(t *testing.T) {
	t.Run("empty file keeps defaults", func(t *testing.T) {
		d, err := (&config.DashboardFile{}).ToDomain()
		gt.NoError(t, err).Required()
		gt.Value(t, d).Equal(domainConfig.DefaultDashboard())
	})

	t.Run("overrides", func(t *testing.T) {
		threshold := 55
		zero := 0
		f := &config.DashboardFile{
			Title:   "Project Phoenix",
			Dataset: "phoenix.csv",
			Defaults: config.DashboardDefault{
				View:       "critical",
				Threshold:  &threshold,
				ProbReduce: &zero,
			},
		}
		d, err := f.ToDomain()
		gt.NoError(t, err).Required()
		gt.Value(t, d.Title).Equal("Project Phoenix")
		gt.Value(t, d.Caption).Equal(domainConfig.DefaultCaption)
		gt.Value(t, d.Dataset).Equal("phoenix.csv")
		gt.Value(t, d.DefaultView).Equal(types.ViewModeCritical)
		gt.Value(t, d.DefaultParameters.Threshold).Equal(55.0)
		gt.Value(t, d.DefaultParameters.ProbReducePct).Equal(0.0)
	})

	t.Run("unknown view", func(t *testing.T) {
		f := &config.DashboardFile{Defaults: config.DashboardDefault{View: "timeline"}}
		_, err := f.ToDomain()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("reduction out of range", func(t *testing.T) {
		v := 75
		f := &config.DashboardFile{Defaults: config.DashboardDefault{ImpactReduce: &v}}
		_, err := f.ToDomain()
		gt.Error(t, err).Is(model.ErrValidation)
	})
}

func TestDashboard_Configure(t *testing.T) {
	path := writeConfig(t, `
title   = "Project Phoenix"
dataset = "from-config.csv"
`)

	t.Run("config file dataset", func(t *testing.T) {
		d, err := config.NewDashboardForTest(path, "").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, d.Title).Equal("Project Phoenix")
		gt.Value(t, d.Dataset).Equal("from-config.csv")
	})

	t.Run("dataset flag wins", func(t *testing.T) {
		d, err := config.NewDashboardForTest(path, "from-flag.csv").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, d.Dataset).Equal("from-flag.csv")
	})

	t.Run("no config file", func(t *testing.T) {
		d, err := config.NewDashboardForTest("", "").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, d.Dataset).Equal(domainConfig.DefaultDataset)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := config.NewDashboardForTest(filepath.Join(t.TempDir(), "none.toml"), "").Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}
