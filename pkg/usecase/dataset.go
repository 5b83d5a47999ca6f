package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/interfaces"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
)

// LoadDataset reads and validates the risk register, returning the session
// snapshot every later transform works on.
func LoadDataset(ctx context.Context, repo interfaces.DatasetRepository) (*model.Dataset, error) {
	records, err := repo.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V(model.SourceKey, repo.Source()))
	}

	if err := model.ValidateRecords(records); err != nil {
		return nil, goerr.Wrap(err, "dataset validation failed", goerr.V(model.SourceKey, repo.Source()))
	}

	dataset := model.NewDataset(repo.Source(), records, time.Now().UTC())

	logger := logging.From(ctx)
	if dataset.Len() == 0 {
		logger.Warn("Dataset is empty, views will show no data", "source", dataset.Source())
	}
	logger.Info("Dataset loaded",
		"source", dataset.Source(),
		"session_id", dataset.SessionID().String(),
		"records", dataset.Len(),
		"loaded_at", dataset.LoadedAt(),
	)

	return dataset, nil
}
