package csvfile

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/interfaces"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/repository/csvcodec"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

// Repository reads the risk register from a CSV file on local disk
type Repository struct {
	path string
}

var _ interfaces.DatasetRepository = &Repository{}

func New(path string) *Repository {
	return &Repository{path: path}
}

func (r *Repository) Load(ctx context.Context) ([]model.RiskRecord, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Open(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dataset", goerr.V(model.SourceKey, r.path))
	}
	defer safe.Close(ctx, f, "dataset file")

	records, err := csvcodec.Decode(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode dataset", goerr.V(model.SourceKey, r.path))
	}
	return records, nil
}

func (r *Repository) Source() string {
	return r.path
}

func (r *Repository) Close() error {
	return nil
}
