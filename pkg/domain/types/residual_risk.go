package types

// ResidualRisk classifies a risk after its recorded mitigation
type ResidualRisk string

const (
	ResidualRiskHigh       ResidualRisk = "High"
	ResidualRiskAcceptable ResidualRisk = "Acceptable"
)

// AllResidualRisks returns all residual risk classes, most severe first
func AllResidualRisks() []ResidualRisk {
	return []ResidualRisk{
		ResidualRiskHigh,
		ResidualRiskAcceptable,
	}
}

// IsValid checks if the residual risk class is valid
func (r ResidualRisk) IsValid() bool {
	switch r {
	case ResidualRiskHigh,
		ResidualRiskAcceptable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the residual risk class
func (r ResidualRisk) String() string {
	return string(r)
}
