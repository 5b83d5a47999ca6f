package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ViewMode selects which dashboard view is rendered
type ViewMode string

const (
	ViewModeOverview ViewMode = "Overview"
	ViewModeAnalysis ViewMode = "Risk Analysis"
	ViewModeCritical ViewMode = "Critical Risks"
)

// AllViewModes returns all view modes in selector order
func AllViewModes() []ViewMode {
	return []ViewMode{
		ViewModeOverview,
		ViewModeAnalysis,
		ViewModeCritical,
	}
}

// IsValid checks if the view mode is valid
func (v ViewMode) IsValid() bool {
	switch v {
	case ViewModeOverview,
		ViewModeAnalysis,
		ViewModeCritical:
		return true
	default:
		return false
	}
}

// Normalize returns the view mode, treating empty as ViewModeOverview
func (v ViewMode) Normalize() ViewMode {
	if v == "" {
		return ViewModeOverview
	}
	return v
}

// Slug returns the URL and CLI friendly name of the view mode
func (v ViewMode) Slug() string {
	switch v {
	case ViewModeOverview:
		return "overview"
	case ViewModeAnalysis:
		return "analysis"
	case ViewModeCritical:
		return "critical"
	default:
		return ""
	}
}

// String returns the string representation of the view mode
func (v ViewMode) String() string {
	return string(v)
}

// ParseViewMode accepts either the display name ("Risk Analysis") or the
// slug ("analysis"), case-insensitively. Empty input yields ViewModeOverview.
func ParseViewMode(s string) (ViewMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ViewModeOverview, nil
	}
	for _, v := range AllViewModes() {
		if strings.EqualFold(s, string(v)) || strings.EqualFold(s, v.Slug()) {
			return v, nil
		}
	}
	return "", goerr.New("invalid view mode", goerr.V("view", s))
}
