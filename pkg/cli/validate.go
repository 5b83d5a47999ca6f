package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskdss/pkg/cli/config"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/usecase"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

func cmdValidate() *cli.Command {
	var dashboardCfg config.Dashboard

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the dashboard configuration and the risk dataset",
		Flags:   dashboardCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: configuration file and defaults
			dashboard, err := dashboardCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			logger.Info("Configuration validation passed",
				"title", dashboard.Title,
				"dataset", dashboard.Dataset,
				"default_view", dashboard.DefaultView.String(),
				"default_params", dashboard.DefaultParameters,
			)

			// Step 2: dataset columns and values
			repo, err := config.OpenDataset(ctx, dashboard.Dataset)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo, "dataset repository")

			dataset, err := usecase.LoadDataset(ctx, repo)
			if err != nil {
				return goerr.Wrap(err, "dataset validation failed")
			}

			// Step 3: a transform with the configured defaults must succeed
			derived, err := usecase.Transform(dataset.Records(), dashboard.DefaultParameters)
			if err != nil {
				return goerr.Wrap(err, "dataset cannot be transformed with default parameters")
			}

			critical := usecase.CriticalRecords(derived)
			logger.Info("Dataset validation passed",
				"source", dataset.Source(),
				"records", dataset.Len(),
				"critical", len(critical),
			)
			if dataset.Len() == 0 {
				logger.Warn("Dataset has no records", "hint", "views will display "+model.NoDataLabel)
			}

			return nil
		},
	}
}
