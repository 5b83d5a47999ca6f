package gcs_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/repository/gcs"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"simple", "gs://risks/project1.csv", "risks", "project1.csv", false},
		{"nested object", "gs://risks/2024/q1/project1.csv", "risks", "2024/q1/project1.csv", false},
		{"missing object", "gs://risks", "", "", true},
		{"empty object", "gs://risks/", "", "", true},
		{"empty bucket", "gs:///project1.csv", "", "", true},
		{"wrong scheme", "s3://risks/project1.csv", "", "", true},
		{"local path", "data/project1.csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := gcs.ParseURI(tt.uri)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, bucket).Equal(tt.wantBucket)
			gt.Value(t, object).Equal(tt.wantObject)
		})
	}
}

func TestRepository_Load(t *testing.T) {
	uri, ok := os.LookupEnv("TEST_GCS_DATASET_URI")
	if !ok {
		t.Skip("TEST_GCS_DATASET_URI is not set")
	}

	ctx := context.Background()
	repo, err := gcs.New(ctx, uri)
	gt.NoError(t, err).Required()
	defer func() {
		gt.NoError(t, repo.Close())
	}()

	gt.Value(t, repo.Source()).Equal(uri)

	records, err := repo.Load(ctx)
	gt.NoError(t, err).Required()
	gt.NoError(t, model.ValidateRecords(records))
}
