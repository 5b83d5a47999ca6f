package model_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
)

func TestDefaultParameters(t *testing.T) {
	p := model.DefaultParameters()
	gt.Value(t, p.Threshold).Equal(40.0)
	gt.Value(t, p.ProbReducePct).Equal(0.0)
	gt.Value(t, p.ImpactReducePct).Equal(0.0)
	gt.NoError(t, p.Validate())
}

func TestParameters_MonitorThreshold(t *testing.T) {
	p := model.Parameters{Threshold: 40}
	gt.Bool(t, math.Abs(p.MonitorThreshold()-28) < 1e-9).True()
}

func TestParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  model.Parameters
		wantErr bool
	}{
		{"defaults", model.DefaultParameters(), false},
		{"upper bounds", model.Parameters{Threshold: 100, ProbReducePct: 50, ImpactReducePct: 50}, false},
		{"lower bounds", model.Parameters{}, false},
		{"threshold too high", model.Parameters{Threshold: 101}, true},
		{"threshold negative", model.Parameters{Threshold: -1}, true},
		{"threshold NaN", model.Parameters{Threshold: math.NaN()}, true},
		{"prob reduce too high", model.Parameters{Threshold: 40, ProbReducePct: 51}, true},
		{"impact reduce negative", model.Parameters{Threshold: 40, ImpactReducePct: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrValidation)
				return
			}
			gt.NoError(t, err)
		})
	}
}
