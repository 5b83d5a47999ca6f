package model

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

// RiskRecord is one row of the risk register as loaded from storage
type RiskRecord struct {
	RiskID              string  `json:"risk_id"`
	RiskName            string  `json:"risk_name"`
	ProbabilityBefore   float64 `json:"probability_before"`
	ProbabilityAfter    float64 `json:"probability_after"`
	ImpactBefore        float64 `json:"impact_before"`
	ImpactAfter         float64 `json:"impact_after"`
	RiskScoreBefore     float64 `json:"risk_score_before"`
	RiskScoreAfter      float64 `json:"risk_score_after"`
	ReductionAbs        float64 `json:"reduction_abs"`
	ImpactCategoryAfter string  `json:"impact_category_after"`
}

// DerivedRecord is a RiskRecord augmented with the values computed for one
// set of Parameters.
type DerivedRecord struct {
	RiskRecord
	SimProbability float64              `json:"sim_probability"`
	SimImpact      float64              `json:"sim_impact"`
	SimRiskScore   float64              `json:"sim_risk_score"`
	ResidualRisk   types.ResidualRisk   `json:"residual_risk"`
	Recommendation types.Recommendation `json:"recommendation"`
}

// IsCritical reports whether the record remains a high residual risk
func (d DerivedRecord) IsCritical() bool {
	return d.ResidualRisk == types.ResidualRiskHigh
}

// Validate checks that every required field is present, numeric and, for
// percentages, within 0-100. Scores and ReductionAbs only need to be finite.
func (r *RiskRecord) Validate() error {
	if r.RiskID == "" {
		return goerr.Wrap(ErrValidation, "risk ID is required", goerr.V(FieldKey, "RiskID"))
	}
	if r.RiskName == "" {
		return goerr.Wrap(ErrValidation, "risk name is required",
			goerr.V(RiskIDKey, r.RiskID),
			goerr.V(FieldKey, "RiskName"),
		)
	}

	percentages := []struct {
		name  string
		value float64
	}{
		{"ProbabilityBefore", r.ProbabilityBefore},
		{"ProbabilityAfter", r.ProbabilityAfter},
		{"ImpactBefore", r.ImpactBefore},
		{"ImpactAfter", r.ImpactAfter},
	}
	for _, p := range percentages {
		if !isFinite(p.value) {
			return goerr.Wrap(ErrValidation, "value is not numeric",
				goerr.V(RiskIDKey, r.RiskID),
				goerr.V(FieldKey, p.name),
			)
		}
		if p.value < 0 || p.value > 100 {
			return goerr.Wrap(ErrValidation, "percentage out of range 0-100",
				goerr.V(RiskIDKey, r.RiskID),
				goerr.V(FieldKey, p.name),
				goerr.V(ValueKey, p.value),
			)
		}
	}

	scores := []struct {
		name  string
		value float64
	}{
		{"RiskScoreBefore", r.RiskScoreBefore},
		{"RiskScoreAfter", r.RiskScoreAfter},
		{"ReductionAbs", r.ReductionAbs},
	}
	for _, s := range scores {
		if !isFinite(s.value) {
			return goerr.Wrap(ErrValidation, "value is not numeric",
				goerr.V(RiskIDKey, r.RiskID),
				goerr.V(FieldKey, s.name),
			)
		}
	}

	return nil
}

// ValidateRecords validates each record and checks RiskID uniqueness
func ValidateRecords(records []RiskRecord) error {
	seen := make(map[string]int, len(records))
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid risk record", goerr.V(IndexKey, i))
		}
		if prev, ok := seen[records[i].RiskID]; ok {
			return goerr.Wrap(ErrValidation, "duplicate risk ID",
				goerr.V(RiskIDKey, records[i].RiskID),
				goerr.V(IndexKey, i),
				goerr.V("first_index", prev),
			)
		}
		seen[records[i].RiskID] = i
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
