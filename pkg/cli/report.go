package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskdss/pkg/cli/config"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/secmon-lab/riskdss/pkg/repository/csvcodec"
	"github.com/secmon-lab/riskdss/pkg/service/chart"
	"github.com/secmon-lab/riskdss/pkg/usecase"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

const (
	reportFormatTable = "table"
	reportFormatJSON  = "json"
	reportFormatCSV   = "csv"
)

var ErrInvalidReportFormat = goerr.New("invalid report format")

func cmdReport() *cli.Command {
	var dashboardCfg config.Dashboard
	var paramsCfg config.Parameters
	var format string
	var output string
	var chartDir string
	var chartFormat string
	var noColor bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (table, json, csv)",
			Value:       reportFormatTable,
			Sources:     cli.EnvVars("RISKDSS_REPORT_FORMAT"),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the report to a file instead of stdout",
			Sources:     cli.EnvVars("RISKDSS_REPORT_OUTPUT"),
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "chart-dir",
			Usage:       "Also write the before/after and heat map charts into this directory",
			Sources:     cli.EnvVars("RISKDSS_CHART_DIR"),
			Destination: &chartDir,
		},
		&cli.StringFlag{
			Name:        "chart-format",
			Usage:       "Chart image format (svg, png)",
			Value:       string(chart.FormatSVG),
			Sources:     cli.EnvVars("RISKDSS_CHART_FORMAT"),
			Destination: &chartFormat,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable coloured table output",
			Sources:     cli.EnvVars("RISKDSS_NO_COLOR"),
			Destination: &noColor,
		},
	}
	flags = append(flags, dashboardCfg.Flags()...)
	flags = append(flags, paramsCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Render one dashboard view in the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case reportFormatTable, reportFormatJSON, reportFormatCSV:
			default:
				return goerr.Wrap(ErrInvalidReportFormat, "unsupported --format", goerr.V("format", format))
			}

			var imgFormat chart.Format
			if chartDir != "" {
				f, err := chart.ParseFormat(chartFormat)
				if err != nil {
					return err
				}
				imgFormat = f
			}

			dashboard, err := dashboardCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load dashboard configuration")
			}

			view, params, err := paramsCfg.Configure(c, dashboard)
			if err != nil {
				return err
			}

			repo, err := config.OpenDataset(ctx, dashboard.Dataset)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo, "dataset repository")

			dataset, err := usecase.LoadDataset(ctx, repo)
			if err != nil {
				return err
			}
			uc := usecase.New(dataset, usecase.WithDashboardConfig(dashboard))

			var w io.Writer = os.Stdout
			if output != "" {
				// #nosec G304 - path is expected to be provided by CLI argument
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create report file", goerr.V("path", output))
				}
				defer safe.Close(ctx, f, "report file")
				w = f
				noColor = true
			}

			r := &reporter{
				w:       w,
				config:  dashboard,
				palette: newPalette(!noColor),
			}

			switch format {
			case reportFormatJSON:
				err = r.writeJSON(ctx, uc.Dashboard, view, params)
			case reportFormatCSV:
				err = r.writeCSV(ctx, uc.Dashboard, params)
			default:
				err = r.writeTable(ctx, uc.Dashboard, view, params)
			}
			if err != nil {
				return err
			}

			if chartDir != "" {
				records, err := uc.Dashboard.Records(ctx, params)
				if err != nil {
					return err
				}
				if err := writeCharts(ctx, chartDir, records, imgFormat); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

type palette struct {
	title    *color.Color
	caption  *color.Color
	danger   *color.Color
	warning  *color.Color
	success  *color.Color
	emphasis *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		title:    color.New(color.FgCyan, color.Bold),
		caption:  color.New(color.Faint),
		danger:   color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow),
		success:  color.New(color.FgGreen),
		emphasis: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.title, p.caption, p.danger, p.warning, p.success, p.emphasis} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) recommendation(r types.Recommendation) string {
	switch r {
	case types.RecommendationMitigationRequired:
		return p.danger.Sprint(r.Label())
	case types.RecommendationMonitorClosely:
		return p.warning.Sprint(r.Label())
	default:
		return p.success.Sprint(r.Label())
	}
}

func (p *palette) residual(r types.ResidualRisk) string {
	if r == types.ResidualRiskHigh {
		return p.danger.Sprint(r.String())
	}
	return p.success.Sprint(r.String())
}

type reporter struct {
	w       io.Writer
	config  *domainConfig.Dashboard
	palette *palette
}

func (r *reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *reporter) writeHeader(view types.ViewMode, params model.Parameters) {
	r.printf("%s\n", r.palette.title.Sprint(r.config.Title))
	r.printf("%s\n\n", r.palette.caption.Sprint(r.config.Caption))
	r.printf("View: %s  (threshold=%s, prob_reduce=%s%%, impact_reduce=%s%%)\n\n",
		r.palette.emphasis.Sprint(view.String()),
		formatNumber(params.Threshold),
		formatNumber(params.ProbReducePct),
		formatNumber(params.ImpactReducePct),
	)
}

func (r *reporter) writeTable(ctx context.Context, uc *usecase.DashboardUseCase, view types.ViewMode, params model.Parameters) error {
	r.writeHeader(view, params)

	switch view {
	case types.ViewModeAnalysis:
		v, err := uc.Analysis(ctx, params)
		if err != nil {
			return err
		}
		r.printf("%s\n", r.palette.emphasis.Sprint("Detailed Risk Analysis"))
		table := tablewriter.NewWriter(r.w)
		table.SetHeader([]string{"Risk_ID", "Risk_Name", "RiskScore_Before", "Sim_RiskScore", "Residual_Risk", "Recommendation"})
		table.SetAutoFormatHeaders(false)
		for _, row := range v.Rows {
			table.Append([]string{
				row.RiskID,
				row.RiskName,
				formatScore(row.RiskScoreBefore),
				formatScore(row.SimRiskScore),
				r.palette.residual(row.ResidualRisk),
				r.palette.recommendation(row.Recommendation),
			})
		}
		table.Render()

	case types.ViewModeCritical:
		v, err := uc.Critical(ctx, params)
		if err != nil {
			return err
		}
		r.printf("%s\n", r.palette.emphasis.Sprint("Critical Risks Requiring Attention"))
		if !v.HasCritical() {
			r.printf("%s\n", r.palette.success.Sprint("No critical risks detected"))
			return nil
		}
		r.printf("%s\n", r.palette.danger.Sprint("Immediate attention required"))
		table := tablewriter.NewWriter(r.w)
		table.SetHeader([]string{"Risk_ID", "Risk_Name", "RiskScore_After", "Impact_Category_After"})
		table.SetAutoFormatHeaders(false)
		for _, row := range v.Rows {
			table.Append([]string{
				row.RiskID,
				row.RiskName,
				formatScore(row.RiskScoreAfter),
				row.ImpactCategoryAfter,
			})
		}
		table.Render()

	default:
		v, err := uc.Overview(ctx, params)
		if err != nil {
			return err
		}
		r.printf("%s\n", r.palette.emphasis.Sprint("Project Overview"))
		metrics := tablewriter.NewWriter(r.w)
		metrics.SetHeader([]string{"Metric", "Value"})
		metrics.SetAutoFormatHeaders(false)
		metrics.Append([]string{"Total Risks", strconv.Itoa(v.Summary.Total)})
		metrics.Append([]string{"High Residual Risks", r.palette.danger.Sprint(strconv.Itoa(v.Summary.HighResidual))})
		metrics.Append([]string{"Average Risk Reduction", v.Summary.AverageReductionLabel()})
		metrics.Render()

		counts := tablewriter.NewWriter(r.w)
		counts.SetHeader([]string{"Recommendation", "Risks"})
		counts.SetAutoFormatHeaders(false)
		for _, rec := range types.AllRecommendations() {
			counts.Append([]string{r.palette.recommendation(rec), strconv.Itoa(v.Summary.Recommendations[rec])})
		}
		counts.Render()
	}

	return nil
}

func (r *reporter) writeJSON(ctx context.Context, uc *usecase.DashboardUseCase, view types.ViewMode, params model.Parameters) error {
	v, err := uc.View(ctx, view, params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode report")
	}
	return nil
}

func (r *reporter) writeCSV(ctx context.Context, uc *usecase.DashboardUseCase, params model.Parameters) error {
	records, err := uc.Records(ctx, params)
	if err != nil {
		return err
	}
	return csvcodec.EncodeDerived(r.w, records)
}

func writeCharts(ctx context.Context, dir string, records []model.DerivedRecord, format chart.Format) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return goerr.Wrap(err, "failed to create chart directory", goerr.V("dir", dir))
	}

	charts := []struct {
		name   string
		render func(io.Writer, []model.DerivedRecord, chart.Format) error
	}{
		{"before-after", chart.BeforeAfter},
		{"heatmap", chart.HeatMap},
	}

	for _, ch := range charts {
		path := filepath.Join(dir, ch.name+format.Ext())
		if err := writeChart(ctx, path, records, format, ch.render); err != nil {
			return err
		}
		logging.From(ctx).Info("Chart written", "path", path)
	}
	return nil
}

func writeChart(ctx context.Context, path string, records []model.DerivedRecord, format chart.Format, render func(io.Writer, []model.DerivedRecord, chart.Format) error) error {
	// #nosec G304 - path is built from the --chart-dir argument
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create chart file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f, "chart file")

	if err := render(f, records, format); err != nil {
		return goerr.Wrap(err, "failed to render chart", goerr.V("path", path))
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
