package interfaces

import (
	"context"

	"github.com/secmon-lab/riskdss/pkg/domain/model"
)

// DatasetRepository reads the risk register from static storage
type DatasetRepository interface {
	// Load reads every record of the dataset
	Load(ctx context.Context) ([]model.RiskRecord, error)

	// Source describes where the dataset is read from, for logging
	Source() string

	// Close releases storage clients held by the repository
	Close() error
}
