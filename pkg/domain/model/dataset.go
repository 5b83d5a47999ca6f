package model

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is the risk register loaded once for a session. It is never
// mutated after construction; Records returns a copy.
type Dataset struct {
	sessionID uuid.UUID
	source    string
	loadedAt  time.Time
	records   []RiskRecord
}

// NewDataset builds a dataset snapshot with a fresh session ID
func NewDataset(source string, records []RiskRecord, loadedAt time.Time) *Dataset {
	copied := make([]RiskRecord, len(records))
	copy(copied, records)

	return &Dataset{
		sessionID: uuid.New(),
		source:    source,
		loadedAt:  loadedAt,
		records:   copied,
	}
}

func (d *Dataset) SessionID() uuid.UUID { return d.sessionID }
func (d *Dataset) Source() string       { return d.source }
func (d *Dataset) LoadedAt() time.Time  { return d.loadedAt }
func (d *Dataset) Len() int             { return len(d.records) }

// Records returns a copy of the loaded records
func (d *Dataset) Records() []RiskRecord {
	copied := make([]RiskRecord, len(d.records))
	copy(copied, d.records)
	return copied
}
