package config

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/interfaces"
	"github.com/secmon-lab/riskdss/pkg/repository/csvfile"
	"github.com/secmon-lab/riskdss/pkg/repository/gcs"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
)

// OpenDataset returns the repository for a dataset location. "gs://" URIs
// are read from Cloud Storage, anything else from the local filesystem.
// The caller is responsible for calling Close() on the returned repository.
func OpenDataset(ctx context.Context, location string) (interfaces.DatasetRepository, error) {
	if location == "" {
		return nil, goerr.New("dataset location is required")
	}

	if strings.HasPrefix(location, gcs.Scheme) {
		repo, err := gcs.New(ctx, location)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize Cloud Storage dataset", goerr.V(DatasetKey, location))
		}
		logging.Default().Info("Using Cloud Storage dataset", "uri", location)
		return repo, nil
	}

	logging.Default().Info("Using local dataset", "path", location)
	return csvfile.New(location), nil
}
