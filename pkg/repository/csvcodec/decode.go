package csvcodec

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
)

type column int

const (
	colRiskID column = iota
	colRiskName
	colProbabilityBefore
	colProbabilityAfter
	colImpactBefore
	colImpactAfter
	colRiskScoreBefore
	colRiskScoreAfter
	colReductionAbs
	colImpactCategoryAfter
	numColumns
)

// columnNames lists, per column, the accepted header spellings. The first
// entry is the column name as exported by the register workbook.
var columnNames = [numColumns][]string{
	colRiskID:              {"Risk_ID", "RiskID"},
	colRiskName:            {"Risk_Name", "RiskName"},
	colProbabilityBefore:   {"Probability_Before_%", "ProbabilityBefore"},
	colProbabilityAfter:    {"Probability_After_%", "ProbabilityAfter"},
	colImpactBefore:        {"Impact_Before_%", "ImpactBefore"},
	colImpactAfter:         {"Impact_After_%", "ImpactAfter"},
	colRiskScoreBefore:     {"RiskScore_Before", "RiskScoreBefore"},
	colRiskScoreAfter:      {"RiskScore_After", "RiskScoreAfter"},
	colReductionAbs:        {"Reduction_Abs", "ReductionAbs"},
	colImpactCategoryAfter: {"Impact_Category_After", "ImpactCategoryAfter"},
}

// Header returns the canonical register header row
func Header() []string {
	header := make([]string, numColumns)
	for i, names := range columnNames {
		header[i] = names[0]
	}
	return header
}

const utf8BOM = "\ufeff"

func lookupColumn(name string) (column, bool) {
	name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
	for c, names := range columnNames {
		for _, n := range names {
			if strings.EqualFold(name, n) {
				return column(c), true
			}
		}
	}
	return 0, false
}

// Decode reads a risk register in CSV form. The first row must be a header
// naming every required column; other columns are ignored. Any missing
// column, empty required cell or non-numeric value fails with
// model.ErrValidation.
func Decode(r io.Reader) ([]model.RiskRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, goerr.Wrap(model.ErrValidation, "dataset has no header row")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}

	var index [numColumns]int
	for i := range index {
		index[i] = -1
	}
	for pos, name := range header {
		if c, ok := lookupColumn(name); ok && index[c] < 0 {
			index[c] = pos
		}
	}
	for c, pos := range index {
		if pos < 0 {
			return nil, goerr.Wrap(model.ErrValidation, "required column is missing",
				goerr.V(model.ColumnKey, columnNames[c][0]),
			)
		}
	}

	var records []model.RiskRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.ErrValidation, "malformed CSV row", goerr.V("cause", err.Error()))
		}

		line, _ := reader.FieldPos(0)
		if isBlank(row) {
			continue
		}

		rec, err := decodeRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func decodeRow(row []string, index [numColumns]int, line int) (model.RiskRecord, error) {
	cell := func(c column) (string, error) {
		pos := index[c]
		if pos >= len(row) || strings.TrimSpace(row[pos]) == "" {
			return "", goerr.Wrap(model.ErrValidation, "required value is missing",
				goerr.V(model.ColumnKey, columnNames[c][0]),
				goerr.V(model.LineKey, line),
			)
		}
		return strings.TrimSpace(row[pos]), nil
	}
	number := func(c column) (float64, error) {
		s, err := cell(c)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, goerr.Wrap(model.ErrValidation, "value is not numeric",
				goerr.V(model.ColumnKey, columnNames[c][0]),
				goerr.V(model.LineKey, line),
				goerr.V(model.ValueKey, s),
			)
		}
		return v, nil
	}

	var rec model.RiskRecord
	var err error

	if rec.RiskID, err = cell(colRiskID); err != nil {
		return rec, err
	}
	if rec.RiskName, err = cell(colRiskName); err != nil {
		return rec, err
	}

	numbers := []struct {
		col column
		dst *float64
	}{
		{colProbabilityBefore, &rec.ProbabilityBefore},
		{colProbabilityAfter, &rec.ProbabilityAfter},
		{colImpactBefore, &rec.ImpactBefore},
		{colImpactAfter, &rec.ImpactAfter},
		{colRiskScoreBefore, &rec.RiskScoreBefore},
		{colRiskScoreAfter, &rec.RiskScoreAfter},
		{colReductionAbs, &rec.ReductionAbs},
	}
	for _, n := range numbers {
		if *n.dst, err = number(n.col); err != nil {
			return rec, err
		}
	}

	// Free text, may be blank
	if pos := index[colImpactCategoryAfter]; pos < len(row) {
		rec.ImpactCategoryAfter = strings.TrimSpace(row[pos])
	}

	return rec, nil
}
