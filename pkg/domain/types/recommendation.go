package types

// Recommendation is a mitigation tier derived from the simulated risk score
type Recommendation string

const (
	RecommendationMitigationRequired Recommendation = "MitigationRequired"
	RecommendationMonitorClosely     Recommendation = "MonitorClosely"
	RecommendationAcceptRisk         Recommendation = "AcceptRisk"
)

// AllRecommendations returns all tiers ordered from most to least severe
func AllRecommendations() []Recommendation {
	return []Recommendation{
		RecommendationMitigationRequired,
		RecommendationMonitorClosely,
		RecommendationAcceptRisk,
	}
}

// IsValid checks if the recommendation is valid
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationMitigationRequired,
		RecommendationMonitorClosely,
		RecommendationAcceptRisk:
		return true
	default:
		return false
	}
}

// Label returns the human readable text shown in views
func (r Recommendation) Label() string {
	switch r {
	case RecommendationMitigationRequired:
		return "Mitigation Required"
	case RecommendationMonitorClosely:
		return "Monitor Closely"
	case RecommendationAcceptRisk:
		return "Accept Risk"
	default:
		return string(r)
	}
}

// String returns the string representation of the recommendation
func (r Recommendation) String() string {
	return string(r)
}
