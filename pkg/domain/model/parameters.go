package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultThreshold       = 40
	DefaultProbReducePct   = 0
	DefaultImpactReducePct = 0

	MaxThreshold    = 100
	MaxReductionPct = 50
	monitorFraction = 0.7
)

// Parameters are the adjustable inputs of a transform: the high residual
// risk threshold and the what-if reductions applied to probability and
// impact.
type Parameters struct {
	Threshold       float64 `json:"threshold"`
	ProbReducePct   float64 `json:"prob_reduce_pct"`
	ImpactReducePct float64 `json:"impact_reduce_pct"`
}

// DefaultParameters returns threshold 40 with no simulated reduction
func DefaultParameters() Parameters {
	return Parameters{
		Threshold:       DefaultThreshold,
		ProbReducePct:   DefaultProbReducePct,
		ImpactReducePct: DefaultImpactReducePct,
	}
}

// MonitorThreshold is the lower bound of the MonitorClosely tier
func (p Parameters) MonitorThreshold() float64 {
	return p.Threshold * monitorFraction
}

// Validate checks parameter ranges
func (p Parameters) Validate() error {
	if !isFinite(p.Threshold) || p.Threshold < 0 || p.Threshold > MaxThreshold {
		return goerr.Wrap(ErrValidation, "threshold out of range 0-100", goerr.V(ParameterKey, "threshold"), goerr.V(ValueKey, p.Threshold))
	}
	if !isFinite(p.ProbReducePct) || p.ProbReducePct < 0 || p.ProbReducePct > MaxReductionPct {
		return goerr.Wrap(ErrValidation, "probability reduction out of range 0-50", goerr.V(ParameterKey, "prob_reduce"), goerr.V(ValueKey, p.ProbReducePct))
	}
	if !isFinite(p.ImpactReducePct) || p.ImpactReducePct < 0 || p.ImpactReducePct > MaxReductionPct {
		return goerr.Wrap(ErrValidation, "impact reduction out of range 0-50", goerr.V(ParameterKey, "impact_reduce"), goerr.V(ValueKey, p.ImpactReducePct))
	}
	return nil
}

// LogValue implements slog.LogValuer
func (p Parameters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("threshold", p.Threshold),
		slog.Float64("prob_reduce_pct", p.ProbReducePct),
		slog.Float64("impact_reduce_pct", p.ImpactReducePct),
	)
}
