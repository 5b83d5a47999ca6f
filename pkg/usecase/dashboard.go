package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
)

// TransformObserver is notified after every view computation. view is the
// view slug, or "records" for the raw derived dataset.
type TransformObserver interface {
	ObserveTransform(view string, records int, elapsed time.Duration, err error)
}

const recordsView = "records"

// DashboardUseCase builds the dashboard views over the session dataset. Each
// call runs Transform from scratch on a copy of the records; nothing is
// cached between calls.
type DashboardUseCase struct {
	dataset  *model.Dataset
	config   *domainConfig.Dashboard
	observer TransformObserver
}

func NewDashboardUseCase(dataset *model.Dataset, cfg *domainConfig.Dashboard, observer TransformObserver) *DashboardUseCase {
	if cfg == nil {
		cfg = domainConfig.DefaultDashboard()
	}
	return &DashboardUseCase{
		dataset:  dataset,
		config:   cfg,
		observer: observer,
	}
}

// Config returns the dashboard presentation settings
func (uc *DashboardUseCase) Config() *domainConfig.Dashboard {
	return uc.config
}

// Dataset returns the session dataset
func (uc *DashboardUseCase) Dataset() *model.Dataset {
	return uc.dataset
}

func (uc *DashboardUseCase) transform(ctx context.Context, view string, params model.Parameters) ([]model.DerivedRecord, error) {
	start := time.Now()
	derived, err := Transform(uc.dataset.Records(), params)
	elapsed := time.Since(start)

	if uc.observer != nil {
		uc.observer.ObserveTransform(view, uc.dataset.Len(), elapsed, err)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transform dataset", goerr.V(ViewKey, view))
	}

	logging.From(ctx).Debug("Dataset transformed",
		"view", view,
		"params", params,
		"records", len(derived),
		"elapsed", elapsed,
	)
	return derived, nil
}

// Records returns the full derived dataset
func (uc *DashboardUseCase) Records(ctx context.Context, params model.Parameters) ([]model.DerivedRecord, error) {
	return uc.transform(ctx, recordsView, params)
}

// Overview returns the project overview metrics and chart data
func (uc *DashboardUseCase) Overview(ctx context.Context, params model.Parameters) (*model.OverviewView, error) {
	derived, err := uc.transform(ctx, types.ViewModeOverview.Slug(), params)
	if err != nil {
		return nil, err
	}

	return &model.OverviewView{
		Parameters: params,
		Summary:    Summarize(derived),
		Records:    derived,
	}, nil
}

// Analysis returns the detailed risk analysis table
func (uc *DashboardUseCase) Analysis(ctx context.Context, params model.Parameters) (*model.AnalysisView, error) {
	derived, err := uc.transform(ctx, types.ViewModeAnalysis.Slug(), params)
	if err != nil {
		return nil, err
	}

	rows := make([]model.AnalysisRow, len(derived))
	for i, d := range derived {
		rows[i] = model.AnalysisRow{
			RiskID:          d.RiskID,
			RiskName:        d.RiskName,
			RiskScoreBefore: d.RiskScoreBefore,
			SimRiskScore:    d.SimRiskScore,
			ResidualRisk:    d.ResidualRisk,
			Recommendation:  d.Recommendation,
		}
	}

	return &model.AnalysisView{
		Parameters: params,
		Rows:       rows,
		Records:    derived,
	}, nil
}

// Critical returns the risks that still require immediate attention
func (uc *DashboardUseCase) Critical(ctx context.Context, params model.Parameters) (*model.CriticalView, error) {
	derived, err := uc.transform(ctx, types.ViewModeCritical.Slug(), params)
	if err != nil {
		return nil, err
	}

	critical := CriticalRecords(derived)
	rows := make([]model.CriticalRow, len(critical))
	for i, d := range critical {
		rows[i] = model.CriticalRow{
			RiskID:              d.RiskID,
			RiskName:            d.RiskName,
			RiskScoreAfter:      d.RiskScoreAfter,
			ImpactCategoryAfter: d.ImpactCategoryAfter,
		}
	}

	return &model.CriticalView{
		Parameters: params,
		Rows:       rows,
	}, nil
}

// View computes the view selected by mode and returns it as one of
// *model.OverviewView, *model.AnalysisView or *model.CriticalView.
func (uc *DashboardUseCase) View(ctx context.Context, mode types.ViewMode, params model.Parameters) (any, error) {
	switch mode.Normalize() {
	case types.ViewModeOverview:
		return uc.Overview(ctx, params)
	case types.ViewModeAnalysis:
		return uc.Analysis(ctx, params)
	case types.ViewModeCritical:
		return uc.Critical(ctx, params)
	default:
		return nil, goerr.Wrap(ErrUnknownView, "cannot render view", goerr.V(ViewKey, mode.String()))
	}
}
