package config

import (
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
)

const (
	DefaultTitle   = "Risk Decision Support Tool"
	DefaultCaption = "Interactive Risk Analysis for IT Projects"
	DefaultDataset = "data/project1.csv"
)

// Dashboard holds presentation settings and the initial control values
type Dashboard struct {
	Title             string
	Caption           string
	Dataset           string
	DefaultView       types.ViewMode
	DefaultParameters model.Parameters
}

// DefaultDashboard returns the settings used when no configuration file is given
func DefaultDashboard() *Dashboard {
	return &Dashboard{
		Title:             DefaultTitle,
		Caption:           DefaultCaption,
		Dataset:           DefaultDataset,
		DefaultView:       types.ViewModeOverview,
		DefaultParameters: model.DefaultParameters(),
	}
}
