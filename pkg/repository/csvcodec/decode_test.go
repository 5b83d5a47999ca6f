package csvcodec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/secmon-lab/riskdss/pkg/repository/csvcodec"
)

const registerCSV = `Risk_ID,Risk_Name,Probability_Before_%,Impact_Before_%,Probability_After_%,Impact_After_%,RiskScore_Before,RiskScore_After,Reduction_Abs,Reduction_%,Impact_Category_After
R1,Vendor delay,80,90,60,80,72,48,24,33.3,High
R2,Scope creep,50,60,30,40,30,12,18,60,Medium
`

func TestDecode_OriginalHeader(t *testing.T) {
	records, err := csvcodec.Decode(strings.NewReader(registerCSV))
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(2).Required()

	r := records[0]
	gt.Value(t, r.RiskID).Equal("R1")
	gt.Value(t, r.RiskName).Equal("Vendor delay")
	gt.Value(t, r.ProbabilityBefore).Equal(80.0)
	gt.Value(t, r.ImpactBefore).Equal(90.0)
	gt.Value(t, r.ProbabilityAfter).Equal(60.0)
	gt.Value(t, r.ImpactAfter).Equal(80.0)
	gt.Value(t, r.RiskScoreBefore).Equal(72.0)
	gt.Value(t, r.RiskScoreAfter).Equal(48.0)
	gt.Value(t, r.ReductionAbs).Equal(24.0)
	gt.Value(t, r.ImpactCategoryAfter).Equal("High")

	gt.Value(t, records[1].RiskID).Equal("R2")
}

func TestDecode_SemanticHeaderAndBOM(t *testing.T) {
	input := "\ufeffRiskID, RiskName, ProbabilityBefore, ProbabilityAfter, ImpactBefore, ImpactAfter, RiskScoreBefore, RiskScoreAfter, ReductionAbs, ImpactCategoryAfter\n" +
		"7, Data loss, 40, 20, 50, 50, 20, 10, 10, \n"

	records, err := csvcodec.Decode(strings.NewReader(input))
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(1).Required()
	gt.Value(t, records[0].RiskID).Equal("7")
	gt.Value(t, records[0].RiskName).Equal("Data loss")
	gt.Value(t, records[0].ImpactCategoryAfter).Equal("")
}

func TestDecode_SkipsBlankRows(t *testing.T) {
	records, err := csvcodec.Decode(strings.NewReader(registerCSV + ",,,,,,,,,,\n"))
	gt.NoError(t, err)
	gt.A(t, records).Length(2)
}

func TestDecode_HeaderOnly(t *testing.T) {
	records, err := csvcodec.Decode(strings.NewReader(strings.SplitN(registerCSV, "\n", 2)[0] + "\n"))
	gt.NoError(t, err)
	gt.A(t, records).Length(0)
}

func TestDecode_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "missing column",
			input: "Risk_ID,Risk_Name,Probability_After_%,Impact_After_%\nR1,A,1,2\n",
		},
		{
			name:  "non-numeric value",
			input: strings.Replace(registerCSV, "R2,Scope creep,50", "R2,Scope creep,fifty", 1),
		},
		{
			name:  "empty numeric cell",
			input: strings.Replace(registerCSV, "R2,Scope creep,50", "R2,Scope creep,", 1),
		},
		{
			name:  "empty id",
			input: strings.Replace(registerCSV, "R2,Scope creep", ",Scope creep", 1),
		},
		{
			name:  "short row",
			input: strings.Replace(registerCSV, "R2,Scope creep,50,60,30,40,30,12,18,60,Medium", "R2,Scope creep,50", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvcodec.Decode(strings.NewReader(tt.input))
			gt.Error(t, err).Is(model.ErrValidation)
		})
	}
}

func TestEncodeDerived_ReadableByDecode(t *testing.T) {
	derived := []model.DerivedRecord{
		{
			RiskRecord: model.RiskRecord{
				RiskID: "R1", RiskName: "Vendor delay, offshore",
				ProbabilityBefore: 80, ProbabilityAfter: 60,
				ImpactBefore: 90, ImpactAfter: 80,
				RiskScoreBefore: 72, RiskScoreAfter: 48, ReductionAbs: 24,
				ImpactCategoryAfter: "High",
			},
			SimProbability: 60,
			SimImpact:      80,
			SimRiskScore:   48,
			ResidualRisk:   types.ResidualRiskHigh,
			Recommendation: types.RecommendationMitigationRequired,
		},
	}

	var buf bytes.Buffer
	gt.NoError(t, csvcodec.EncodeDerived(&buf, derived)).Required()

	out := buf.String()
	gt.String(t, out).Contains("Residual_Risk,Sim_Probability,Sim_Impact,Sim_RiskScore,Recommendation")
	gt.String(t, out).Contains(`"Vendor delay, offshore"`)
	gt.String(t, out).Contains("High,60,80,48,MitigationRequired")

	records, err := csvcodec.Decode(strings.NewReader(out))
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(1).Required()
	gt.Value(t, records[0]).Equal(derived[0].RiskRecord)
}
