package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
)

func TestDataset_RecordsAreCopied(t *testing.T) {
	src := []model.RiskRecord{validRecord("R1"), validRecord("R2")}
	ds := model.NewDataset("memory", src, time.Unix(0, 0))

	// Mutating the input after construction must not leak into the dataset
	src[0].RiskName = "changed"
	gt.Value(t, ds.Records()[0].RiskName).Equal("Vendor delay R1")

	// Mutating a returned slice must not leak either
	out := ds.Records()
	out[1].RiskScoreAfter = 99
	gt.Value(t, ds.Records()[1].RiskScoreAfter).Equal(48.0)

	gt.Value(t, ds.Len()).Equal(2)
	gt.Value(t, ds.Source()).Equal("memory")
	gt.Bool(t, ds.LoadedAt().Equal(time.Unix(0, 0))).True()
	gt.Bool(t, ds.SessionID() != uuid.Nil).True()
}

func TestDataset_SessionIDsDiffer(t *testing.T) {
	a := model.NewDataset("a", nil, time.Now())
	b := model.NewDataset("b", nil, time.Now())
	gt.Value(t, a.SessionID()).NotEqual(b.SessionID())
	gt.Value(t, a.Len()).Equal(0)
}

func TestSummary_AverageReductionLabel(t *testing.T) {
	gt.Value(t, model.Summary{}.AverageReductionLabel()).Equal(model.NoDataLabel)

	avg := 12.5
	gt.Value(t, model.Summary{AverageReduction: &avg}.AverageReductionLabel()).Equal("12.50")
}

func TestCriticalView_HasCritical(t *testing.T) {
	gt.Bool(t, model.CriticalView{}.HasCritical()).False()
	gt.Bool(t, model.CriticalView{Rows: []model.CriticalRow{{RiskID: "R1"}}}.HasCritical()).True()
}
