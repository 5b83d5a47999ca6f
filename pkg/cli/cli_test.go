package cli_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/cli"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/secmon-lab/riskdss/pkg/repository/csvcodec"
)

const datasetCSV = `Risk_ID,Risk_Name,Probability_Before_%,Impact_Before_%,Probability_After_%,Impact_After_%,RiskScore_Before,RiskScore_After,Reduction_Abs,Impact_Category_After
R1,Vendor delay,80,90,60,80,72,48,24,High
R2,Scope creep,70,70,50,60,49,30,19,Medium
R3,Budget overrun,75,60,45,50,45,22.5,22.5,Low
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func run(args ...string) error {
	return cli.Run(context.Background(), append([]string{"riskdss"}, args...), "test")
}

func TestRun_ValidateCommand(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		dataset := writeFile(t, "project.csv", datasetCSV)
		gt.NoError(t, run("validate", "--dataset", dataset))
	})

	t.Run("valid config pointing at dataset", func(t *testing.T) {
		dataset := writeFile(t, "project.csv", datasetCSV)
		configPath := writeFile(t, "riskdss.toml", `
title = "Phoenix"
dataset = "`+filepath.ToSlash(dataset)+`"

[defaults]
view = "critical"
threshold = 30
`)
		gt.NoError(t, run("validate", "--config", configPath))
	})

	t.Run("missing column", func(t *testing.T) {
		dataset := writeFile(t, "project.csv", "Risk_ID,Risk_Name\nR1,Vendor delay\n")
		err := run("validate", "--dataset", dataset)
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("percentage out of range", func(t *testing.T) {
		dataset := writeFile(t, "project.csv", strings.Replace(datasetCSV, "R1,Vendor delay,80", "R1,Vendor delay,180", 1))
		err := run("validate", "--dataset", dataset)
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("missing dataset file", func(t *testing.T) {
		err := run("validate", "--dataset", filepath.Join(t.TempDir(), "nope.csv"))
		gt.Value(t, err).NotNil()
	})

	t.Run("invalid default threshold", func(t *testing.T) {
		configPath := writeFile(t, "riskdss.toml", "[defaults]\nthreshold = 120\n")
		err := run("validate", "--config", configPath)
		gt.Error(t, err).Is(model.ErrValidation)
	})
}

func TestRun_ReportCommand_JSON(t *testing.T) {
	dataset := writeFile(t, "project.csv", datasetCSV)
	output := filepath.Join(t.TempDir(), "report.json")

	err := run("report",
		"--dataset", dataset,
		"--view", "analysis",
		"--prob-reduce", "50",
		"--impact-reduce", "50",
		"--format", "json",
		"--output", output,
	)
	gt.NoError(t, err).Required()

	data, err := os.ReadFile(output)
	gt.NoError(t, err).Required()

	var view model.AnalysisView
	gt.NoError(t, json.Unmarshal(data, &view)).Required()
	gt.Value(t, view.Parameters.ProbReducePct).Equal(50.0)
	gt.A(t, view.Rows).Length(3).Required()
	gt.Value(t, view.Rows[0].SimRiskScore).Equal(12.0)
	gt.Value(t, view.Rows[0].ResidualRisk).Equal(types.ResidualRiskHigh)
	gt.Value(t, view.Rows[0].Recommendation).Equal(types.RecommendationAcceptRisk)
}

func TestRun_ReportCommand_Table(t *testing.T) {
	dataset := writeFile(t, "project.csv", datasetCSV)

	t.Run("overview", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "report.txt")
		gt.NoError(t, run("report", "--dataset", dataset, "--output", output)).Required()

		data, err := os.ReadFile(output)
		gt.NoError(t, err).Required()
		body := string(data)
		gt.String(t, body).Contains("Project Overview")
		gt.String(t, body).Contains("High Residual Risks")
		gt.String(t, body).Contains("21.83")
		gt.String(t, body).Contains("Mitigation Required")
		gt.Bool(t, strings.Contains(body, "\x1b[")).False()
	})

	t.Run("critical", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "report.txt")
		gt.NoError(t, run("report", "--dataset", dataset, "--view", "critical", "--output", output)).Required()

		data, err := os.ReadFile(output)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("Immediate attention required")
		gt.String(t, string(data)).Contains("Vendor delay")
	})

	t.Run("no critical risks", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "report.txt")
		gt.NoError(t, run("report", "--dataset", dataset, "--view", "critical", "--threshold", "90", "--output", output)).Required()

		data, err := os.ReadFile(output)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("No critical risks detected")
	})
}

func TestRun_ReportCommand_CSV(t *testing.T) {
	dataset := writeFile(t, "project.csv", datasetCSV)
	output := filepath.Join(t.TempDir(), "derived.csv")

	gt.NoError(t, run("report", "--dataset", dataset, "--format", "csv", "--output", output)).Required()

	f, err := os.Open(output)
	gt.NoError(t, err).Required()
	defer f.Close()

	records, err := csvcodec.Decode(f)
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(3)
}

func TestRun_ReportCommand_Charts(t *testing.T) {
	dataset := writeFile(t, "project.csv", datasetCSV)
	dir := filepath.Join(t.TempDir(), "charts")

	gt.NoError(t, run("report",
		"--dataset", dataset,
		"--output", filepath.Join(t.TempDir(), "report.txt"),
		"--chart-dir", dir,
	)).Required()

	for _, name := range []string{"before-after.svg", "heatmap.svg"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("<svg")
	}
}

func TestRun_ReportCommand_InvalidInput(t *testing.T) {
	dataset := writeFile(t, "project.csv", datasetCSV)

	t.Run("threshold out of range", func(t *testing.T) {
		err := run("report", "--dataset", dataset, "--threshold", "101")
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("reduction out of range", func(t *testing.T) {
		err := run("report", "--dataset", dataset, "--prob-reduce", "70")
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := run("report", "--dataset", dataset, "--format", "xml")
		gt.Error(t, err).Is(cli.ErrInvalidReportFormat)
	})
}
