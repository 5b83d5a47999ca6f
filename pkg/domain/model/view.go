package model

import (
	"fmt"

	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

// NoDataLabel is displayed when an aggregate has no records to work on
const NoDataLabel = "no data"

// Summary holds the overview metrics for one transform
type Summary struct {
	Total            int                          `json:"total"`
	HighResidual     int                          `json:"high_residual"`
	AverageReduction *float64                     `json:"average_reduction"` // nil when the dataset is empty
	Recommendations  map[types.Recommendation]int `json:"recommendations"`
}

// AverageReductionLabel formats AverageReduction for display
func (s Summary) AverageReductionLabel() string {
	if s.AverageReduction == nil {
		return NoDataLabel
	}
	return fmt.Sprintf("%.2f", *s.AverageReduction)
}

// OverviewView feeds the project overview: metrics plus the before/after chart
type OverviewView struct {
	Parameters Parameters      `json:"parameters"`
	Summary    Summary         `json:"summary"`
	Records    []DerivedRecord `json:"records"`
}

// AnalysisRow is one line of the detailed risk analysis table
type AnalysisRow struct {
	RiskID          string               `json:"risk_id"`
	RiskName        string               `json:"risk_name"`
	RiskScoreBefore float64              `json:"risk_score_before"`
	SimRiskScore    float64              `json:"sim_risk_score"`
	ResidualRisk    types.ResidualRisk   `json:"residual_risk"`
	Recommendation  types.Recommendation `json:"recommendation"`
}

// AnalysisView feeds the detailed analysis table and the heat map
type AnalysisView struct {
	Parameters Parameters      `json:"parameters"`
	Rows       []AnalysisRow   `json:"rows"`
	Records    []DerivedRecord `json:"-"`
}

// CriticalRow is one line of the critical risks table
type CriticalRow struct {
	RiskID              string  `json:"risk_id"`
	RiskName            string  `json:"risk_name"`
	RiskScoreAfter      float64 `json:"risk_score_after"`
	ImpactCategoryAfter string  `json:"impact_category_after"`
}

// CriticalView lists risks whose residual risk is High
type CriticalView struct {
	Parameters Parameters    `json:"parameters"`
	Rows       []CriticalRow `json:"rows"`
}

// HasCritical reports whether any risk requires immediate attention
func (v CriticalView) HasCritical() bool {
	return len(v.Rows) > 0
}
