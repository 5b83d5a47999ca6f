package chart

import (
	"image/color"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

// Format is an output image format supported by gonum/plot
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

const (
	BeforeAfterTitle = "Before vs After Risk Scores"
	HeatMapTitle     = "Risk Heat Map (After Mitigation)"

	defaultWidth  = 8 * vg.Inch
	defaultHeight = 5 * vg.Inch
)

var ErrUnsupportedFormat = goerr.New("unsupported chart format")

const (
	FormatKey = "format"
	ChartKey  = "chart"
)

var (
	beforeColor     = color.RGBA{R: 99, G: 110, B: 250, A: 255}
	afterColor      = color.RGBA{R: 239, G: 85, B: 59, A: 255}
	highColor       = color.RGBA{R: 214, G: 39, B: 40, A: 200}
	acceptableColor = color.RGBA{R: 44, G: 160, B: 44, A: 200}
)

// ParseFormat accepts "svg" or "png", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", goerr.Wrap(ErrUnsupportedFormat, "cannot render chart", goerr.V(FormatKey, s))
	}
}

// Ext returns the file extension for the format, including the dot
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the HTTP content type for the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// BeforeAfter draws a grouped bar chart of RiskScore_Before and
// RiskScore_After keyed by RiskID.
func BeforeAfter(w io.Writer, records []model.DerivedRecord, format Format) error {
	p := plot.New()
	p.Title.Text = BeforeAfterTitle
	p.X.Label.Text = "Risk_ID"
	p.Y.Label.Text = "Risk Score"
	p.Y.Min = 0
	p.Legend.Top = true

	if len(records) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Max = 100
		return render(w, p, format, "before-after")
	}

	ids := make([]string, len(records))
	before := make(plotter.Values, len(records))
	after := make(plotter.Values, len(records))
	for i, r := range records {
		ids[i] = r.RiskID
		before[i] = r.RiskScoreBefore
		after[i] = r.RiskScoreAfter
	}

	width := barWidth(len(records))

	beforeBars, err := plotter.NewBarChart(before, width)
	if err != nil {
		return goerr.Wrap(err, "failed to create bar chart", goerr.V(ChartKey, "before-after"))
	}
	beforeBars.Color = beforeColor
	beforeBars.LineStyle.Width = 0
	beforeBars.Offset = -width / 2

	afterBars, err := plotter.NewBarChart(after, width)
	if err != nil {
		return goerr.Wrap(err, "failed to create bar chart", goerr.V(ChartKey, "before-after"))
	}
	afterBars.Color = afterColor
	afterBars.LineStyle.Width = 0
	afterBars.Offset = width / 2

	p.Add(beforeBars, afterBars)
	p.Legend.Add("RiskScore_Before", beforeBars)
	p.Legend.Add("RiskScore_After", afterBars)
	p.NominalX(ids...)

	return render(w, p, format, "before-after")
}

// HeatMap draws ProbabilityAfter against ImpactAfter. Glyph size follows
// RiskScoreAfter and colour follows ResidualRisk.
func HeatMap(w io.Writer, records []model.DerivedRecord, format Format) error {
	p := plot.New()
	p.Title.Text = HeatMapTitle
	p.X.Label.Text = "Probability_After_%"
	p.Y.Label.Text = "Impact_After_%"
	p.X.Min, p.X.Max = 0, 100
	p.Y.Min, p.Y.Max = 0, 100
	p.Add(plotter.NewGrid())

	for _, residual := range types.AllResidualRisks() {
		group := make([]model.DerivedRecord, 0, len(records))
		for _, r := range records {
			if r.ResidualRisk == residual {
				group = append(group, r)
			}
		}
		if len(group) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(group))
		for i, r := range group {
			xys[i].X = r.ProbabilityAfter
			xys[i].Y = r.ImpactAfter
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return goerr.Wrap(err, "failed to create scatter plot", goerr.V(ChartKey, "heatmap"))
		}
		fill := residualColor(residual)
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  fill,
				Radius: glyphRadius(group[i].RiskScoreAfter),
				Shape:  draw.CircleGlyph{},
			}
		}
		scatter.GlyphStyle = scatter.GlyphStyleFunc(0)

		p.Add(scatter)
		p.Legend.Add(residual.String(), scatter)
	}

	return render(w, p, format, "heatmap")
}

func render(w io.Writer, p *plot.Plot, format Format, name string) error {
	if format != FormatSVG && format != FormatPNG {
		return goerr.Wrap(ErrUnsupportedFormat, "cannot render chart", goerr.V(FormatKey, format), goerr.V(ChartKey, name))
	}

	wt, err := p.WriterTo(defaultWidth, defaultHeight, string(format))
	if err != nil {
		return goerr.Wrap(err, "failed to prepare chart writer", goerr.V(ChartKey, name))
	}
	if _, err := wt.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to write chart", goerr.V(ChartKey, name))
	}
	return nil
}

// barWidth shrinks bars as the number of risks grows so groups do not overlap
func barWidth(n int) vg.Length {
	w := (defaultWidth - vg.Inch) / vg.Length(2*n+n/2+1)
	if w > vg.Points(20) {
		return vg.Points(20)
	}
	if w < vg.Points(2) {
		return vg.Points(2)
	}
	return w
}

func glyphRadius(score float64) vg.Length {
	if score < 0 {
		score = 0
	}
	return vg.Points(3 + score/8)
}

func residualColor(r types.ResidualRisk) color.Color {
	if r == types.ResidualRiskHigh {
		return highColor
	}
	return acceptableColor
}
