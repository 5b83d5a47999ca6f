package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/riskdss/pkg/domain/interfaces"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
)

// Repository holds a risk register in memory. It backs tests and callers
// that build the dataset programmatically.
type Repository struct {
	mu      sync.RWMutex
	records []model.RiskRecord
}

var _ interfaces.DatasetRepository = &Repository{}

func New(records ...model.RiskRecord) *Repository {
	r := &Repository{}
	r.Replace(records)
	return r
}

// Replace swaps the stored records for a copy of records
func (r *Repository) Replace(records []model.RiskRecord) {
	copied := make([]model.RiskRecord, len(records))
	copy(copied, records)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = copied
}

func (r *Repository) Load(ctx context.Context) ([]model.RiskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external modification
	copied := make([]model.RiskRecord, len(r.records))
	copy(copied, r.records)
	return copied, nil
}

func (r *Repository) Source() string {
	return "memory"
}

func (r *Repository) Close() error {
	return nil
}
