package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

// Transform derives the residual risk class, the what-if simulated score and
// the mitigation recommendation for every record. It performs no I/O, never
// modifies records, and returns results in input order.
//
// ResidualRisk is decided on the recorded RiskScoreAfter while Recommendation
// is decided on the simulated score, so the what-if sliders never change
// ResidualRisk.
func Transform(records []model.RiskRecord, params model.Parameters) ([]model.DerivedRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid transform parameters")
	}
	if err := model.ValidateRecords(records); err != nil {
		return nil, goerr.Wrap(err, "invalid dataset")
	}

	derived := make([]model.DerivedRecord, len(records))
	for i, r := range records {
		derived[i] = derive(r, params)
	}
	return derived, nil
}

func derive(r model.RiskRecord, params model.Parameters) model.DerivedRecord {
	residual := types.ResidualRiskAcceptable
	if r.RiskScoreAfter >= params.Threshold {
		residual = types.ResidualRiskHigh
	}

	simProbability := r.ProbabilityAfter * (1 - params.ProbReducePct/100)
	simImpact := r.ImpactAfter * (1 - params.ImpactReducePct/100)
	simRiskScore := simProbability * simImpact / 100

	return model.DerivedRecord{
		RiskRecord:     r,
		SimProbability: simProbability,
		SimImpact:      simImpact,
		SimRiskScore:   simRiskScore,
		ResidualRisk:   residual,
		Recommendation: Recommend(simRiskScore, params),
	}
}

// Recommend maps a simulated risk score onto a mitigation tier. Each tier's
// lower bound is inclusive.
func Recommend(simRiskScore float64, params model.Parameters) types.Recommendation {
	switch {
	case simRiskScore >= params.Threshold:
		return types.RecommendationMitigationRequired
	case simRiskScore >= params.MonitorThreshold():
		return types.RecommendationMonitorClosely
	default:
		return types.RecommendationAcceptRisk
	}
}

// CriticalRecords returns the records whose residual risk is High, keeping
// their order.
func CriticalRecords(derived []model.DerivedRecord) []model.DerivedRecord {
	critical := make([]model.DerivedRecord, 0, len(derived))
	for _, d := range derived {
		if d.IsCritical() {
			critical = append(critical, d)
		}
	}
	return critical
}

// AverageReduction returns the mean ReductionAbs. It fails with
// model.ErrEmptyDataset when there are no records.
func AverageReduction(derived []model.DerivedRecord) (decimal.Decimal, error) {
	if len(derived) == 0 {
		return decimal.Zero, goerr.Wrap(model.ErrEmptyDataset, "no records to average")
	}

	sum := decimal.Zero
	for _, d := range derived {
		sum = sum.Add(decimal.NewFromFloat(d.ReductionAbs))
	}
	return sum.Div(decimal.NewFromInt(int64(len(derived)))), nil
}

// Summarize computes the overview metrics. An empty dataset yields a
// summary whose AverageReduction is nil ("no data").
func Summarize(derived []model.DerivedRecord) model.Summary {
	summary := model.Summary{
		Total:           len(derived),
		Recommendations: make(map[types.Recommendation]int, len(types.AllRecommendations())),
	}
	for _, r := range types.AllRecommendations() {
		summary.Recommendations[r] = 0
	}

	for _, d := range derived {
		if d.IsCritical() {
			summary.HighResidual++
		}
		summary.Recommendations[d.Recommendation]++
	}

	if avg, err := AverageReduction(derived); err == nil {
		rounded := avg.RoundBank(2).InexactFloat64()
		summary.AverageReduction = &rounded
	}

	return summary
}
