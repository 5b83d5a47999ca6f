package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Parameters holds CLI flags mirroring the dashboard controls
type Parameters struct {
	view         string
	threshold    int
	probReduce   int
	impactReduce int
}

// Flags returns CLI flags for the view selector and the three sliders
func (x *Parameters) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "view",
			Usage:       "View to render (overview, analysis, critical)",
			Category:    "Controls",
			Sources:     cli.EnvVars("RISKDSS_VIEW"),
			Destination: &x.view,
		},
		&cli.IntFlag{
			Name:        "threshold",
			Usage:       "High residual risk threshold (0-100)",
			Value:       model.DefaultThreshold,
			Category:    "Controls",
			Sources:     cli.EnvVars("RISKDSS_THRESHOLD"),
			Destination: &x.threshold,
		},
		&cli.IntFlag{
			Name:        "prob-reduce",
			Usage:       "What-if probability reduction in percent (0-50)",
			Value:       model.DefaultProbReducePct,
			Category:    "Controls",
			Sources:     cli.EnvVars("RISKDSS_PROB_REDUCE"),
			Destination: &x.probReduce,
		},
		&cli.IntFlag{
			Name:        "impact-reduce",
			Usage:       "What-if impact reduction in percent (0-50)",
			Value:       model.DefaultImpactReducePct,
			Category:    "Controls",
			Sources:     cli.EnvVars("RISKDSS_IMPACT_REDUCE"),
			Destination: &x.impactReduce,
		},
	}
}

// Configure resolves the control values. Flags explicitly set on the
// command line override the dashboard defaults.
func (x *Parameters) Configure(c *cli.Command, d *domainConfig.Dashboard) (types.ViewMode, model.Parameters, error) {
	view := d.DefaultView.Normalize()
	params := d.DefaultParameters

	if c.IsSet("view") {
		v, err := types.ParseViewMode(x.view)
		if err != nil {
			return "", model.Parameters{}, goerr.Wrap(err, "invalid --view", goerr.V(ViewKey, x.view))
		}
		view = v
	}
	if c.IsSet("threshold") {
		params.Threshold = float64(x.threshold)
	}
	if c.IsSet("prob-reduce") {
		params.ProbReducePct = float64(x.probReduce)
	}
	if c.IsSet("impact-reduce") {
		params.ImpactReducePct = float64(x.impactReduce)
	}

	if err := params.Validate(); err != nil {
		return "", model.Parameters{}, goerr.Wrap(err, "invalid control values")
	}

	return view, params, nil
}
