package usecase

import (
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskdss/pkg/domain/model/config"
)

type UseCases struct {
	dataset         *model.Dataset
	dashboardConfig *domainConfig.Dashboard
	observer        TransformObserver
	Dashboard       *DashboardUseCase
}

type Option func(*UseCases)

func WithDashboardConfig(cfg *domainConfig.Dashboard) Option {
	return func(uc *UseCases) {
		uc.dashboardConfig = cfg
	}
}

func WithObserver(observer TransformObserver) Option {
	return func(uc *UseCases) {
		uc.observer = observer
	}
}

func New(dataset *model.Dataset, opts ...Option) *UseCases {
	uc := &UseCases{
		dataset: dataset,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Dashboard = NewDashboardUseCase(dataset, uc.dashboardConfig, uc.observer)

	return uc
}
