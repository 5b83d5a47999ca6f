package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

const (
	queryView         = "view"
	queryThreshold    = "threshold"
	queryProbReduce   = "prob_reduce"
	queryImpactReduce = "impact_reduce"
)

// parseQuery reads the dashboard controls from the query string. Missing
// values fall back to the configured defaults. Any malformed or out of range
// value is a model.ErrValidation.
func parseQuery(r *http.Request, cfg *domainConfig.Dashboard) (types.ViewMode, model.Parameters, error) {
	q := r.URL.Query()

	view := cfg.DefaultView.Normalize()
	if raw := q.Get(queryView); raw != "" {
		v, err := types.ParseViewMode(raw)
		if err != nil {
			return "", model.Parameters{}, goerr.Wrap(model.ErrValidation, "unknown view",
				goerr.V(model.ParameterKey, queryView),
				goerr.V(model.ValueKey, raw),
			)
		}
		view = v
	}

	params := cfg.DefaultParameters
	targets := []struct {
		key string
		dst *float64
	}{
		{queryThreshold, &params.Threshold},
		{queryProbReduce, &params.ProbReducePct},
		{queryImpactReduce, &params.ImpactReducePct},
	}
	for _, t := range targets {
		raw := strings.TrimSpace(q.Get(t.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", model.Parameters{}, goerr.Wrap(model.ErrValidation, t.key+" must be an integer",
				goerr.V(model.ParameterKey, t.key),
				goerr.V(model.ValueKey, raw),
			)
		}
		*t.dst = float64(n)
	}

	if err := params.Validate(); err != nil {
		return "", model.Parameters{}, err
	}

	return view, params, nil
}

// controls is the integer form of the slider positions, used to build links
// and to fill in the form
type controls struct {
	View         types.ViewMode
	Threshold    int
	ProbReduce   int
	ImpactReduce int
}

func newControls(view types.ViewMode, params model.Parameters) controls {
	return controls{
		View:         view,
		Threshold:    int(params.Threshold),
		ProbReduce:   int(params.ProbReducePct),
		ImpactReduce: int(params.ImpactReducePct),
	}
}
