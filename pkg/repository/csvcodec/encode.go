package csvcodec

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
)

// DerivedHeader returns the header written by EncodeDerived: the canonical
// register columns followed by the derived ones.
func DerivedHeader() []string {
	return append(Header(),
		"Residual_Risk",
		"Sim_Probability",
		"Sim_Impact",
		"Sim_RiskScore",
		"Recommendation",
	)
}

// EncodeDerived writes a transformed dataset as CSV. The register columns
// keep their canonical names so the output can be decoded again.
func EncodeDerived(w io.Writer, records []model.DerivedRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(DerivedHeader()); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	for _, r := range records {
		row := []string{
			r.RiskID,
			r.RiskName,
			f(r.ProbabilityBefore),
			f(r.ProbabilityAfter),
			f(r.ImpactBefore),
			f(r.ImpactAfter),
			f(r.RiskScoreBefore),
			f(r.RiskScoreAfter),
			f(r.ReductionAbs),
			r.ImpactCategoryAfter,
			r.ResidualRisk.String(),
			f(r.SimProbability),
			f(r.SimImpact),
			f(r.SimRiskScore),
			r.Recommendation.String(),
		}
		if err := writer.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V(model.RiskIDKey, r.RiskID))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}
