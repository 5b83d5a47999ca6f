package http

import (
	"context"
	"net/http"

	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
)

// DashboardUseCase is the subset of usecase.DashboardUseCase the server needs
type DashboardUseCase interface {
	Config() *domainConfig.Dashboard
	Overview(ctx context.Context, params model.Parameters) (*model.OverviewView, error)
	Analysis(ctx context.Context, params model.Parameters) (*model.AnalysisView, error)
	Critical(ctx context.Context, params model.Parameters) (*model.CriticalView, error)
	Records(ctx context.Context, params model.Parameters) ([]model.DerivedRecord, error)
}

// MetricsCollector records served requests and exposes the scrape endpoint
type MetricsCollector interface {
	ObserveRequest(route string, code int)
	Handler() http.Handler
}
