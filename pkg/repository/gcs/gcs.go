package gcs

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/interfaces"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/repository/csvcodec"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

// Scheme is the URI prefix of Cloud Storage datasets
const Scheme = "gs://"

// Repository reads the risk register from a CSV object in Cloud Storage
type Repository struct {
	client *storage.Client
	bucket string
	object string
}

var _ interfaces.DatasetRepository = &Repository{}

// ParseURI splits "gs://bucket/path/to/object.csv" into bucket and object
func ParseURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, Scheme) {
		return "", "", goerr.New("not a Cloud Storage URI", goerr.V(model.SourceKey, uri))
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, Scheme), "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("Cloud Storage URI must be gs://bucket/object", goerr.V(model.SourceKey, uri))
	}
	return bucket, object, nil
}

// New creates a Cloud Storage client using Application Default Credentials
func New(ctx context.Context, uri string) (*Repository, error) {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}

	return &Repository{
		client: client,
		bucket: bucket,
		object: object,
	}, nil
}

func (r *Repository) Load(ctx context.Context) ([]model.RiskRecord, error) {
	reader, err := r.client.Bucket(r.bucket).Object(r.object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dataset object", goerr.V(model.SourceKey, r.Source()))
	}
	defer safe.Close(ctx, reader, "dataset object")

	records, err := csvcodec.Decode(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode dataset", goerr.V(model.SourceKey, r.Source()))
	}
	return records, nil
}

func (r *Repository) Source() string {
	return Scheme + r.bucket + "/" + r.object
}

func (r *Repository) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Cloud Storage client")
	}
	return nil
}
