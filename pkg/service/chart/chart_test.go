package chart_test

import (
	"bytes"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/secmon-lab/riskdss/pkg/service/chart"
)

func derivedRecords() []model.DerivedRecord {
	return []model.DerivedRecord{
		{
			RiskRecord: model.RiskRecord{
				RiskID: "R1", RiskName: "Vendor delay",
				ProbabilityAfter: 60, ImpactAfter: 80,
				RiskScoreBefore: 72, RiskScoreAfter: 48,
			},
			ResidualRisk:   types.ResidualRiskHigh,
			Recommendation: types.RecommendationMitigationRequired,
		},
		{
			RiskRecord: model.RiskRecord{
				RiskID: "R2", RiskName: "Scope creep",
				ProbabilityAfter: 20, ImpactAfter: 30,
				RiskScoreBefore: 35, RiskScoreAfter: 6,
			},
			ResidualRisk:   types.ResidualRiskAcceptable,
			Recommendation: types.RecommendationAcceptRisk,
		},
	}
}

var pngMagic = []byte("\x89PNG")

func TestBeforeAfter(t *testing.T) {
	t.Run("svg", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, chart.BeforeAfter(&buf, derivedRecords(), chart.FormatSVG)).Required()
		gt.String(t, buf.String()).Contains("<svg")
		gt.String(t, buf.String()).Contains("R1")
	})

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, chart.BeforeAfter(&buf, derivedRecords(), chart.FormatPNG)).Required()
		gt.Bool(t, bytes.HasPrefix(buf.Bytes(), pngMagic)).True()
	})

	t.Run("empty dataset still renders", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, chart.BeforeAfter(&buf, nil, chart.FormatSVG)).Required()
		gt.String(t, buf.String()).Contains("<svg")
	})

	t.Run("unsupported format", func(t *testing.T) {
		var buf bytes.Buffer
		err := chart.BeforeAfter(&buf, derivedRecords(), chart.Format("gif"))
		gt.Error(t, err).Is(chart.ErrUnsupportedFormat)
	})
}

func TestHeatMap(t *testing.T) {
	t.Run("svg with both residual classes", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, chart.HeatMap(&buf, derivedRecords(), chart.FormatSVG)).Required()
		gt.String(t, buf.String()).Contains("<svg")
		gt.String(t, buf.String()).Contains("Acceptable")
	})

	t.Run("empty dataset still renders", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, chart.HeatMap(&buf, nil, chart.FormatPNG)).Required()
		gt.Bool(t, bytes.HasPrefix(buf.Bytes(), pngMagic)).True()
	})
}

func TestParseFormat(t *testing.T) {
	f, err := chart.ParseFormat(" SVG ")
	gt.NoError(t, err).Required()
	gt.Value(t, f).Equal(chart.FormatSVG)
	gt.Value(t, f.Ext()).Equal(".svg")
	gt.Value(t, f.ContentType()).Equal("image/svg+xml")

	f, err = chart.ParseFormat("png")
	gt.NoError(t, err).Required()
	gt.Value(t, f.ContentType()).Equal("image/png")

	_, err = chart.ParseFormat("pdf")
	gt.Error(t, err).Is(chart.ErrUnsupportedFormat)
}
