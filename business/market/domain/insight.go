package domain

// Risk grades the current market risk level.
type Risk int

const (
	RiskLow Risk = iota
	RiskMedium
	RiskHigh
)

// String returns a human-readable risk name.
func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskHigh:
		return "High"
	default:
		return "Medium"
	}
}

// Insight is an analysis of the current calculation and market conditions.
type Insight struct {
	Risk    Risk
	Summary string
	Tips    []string
	Source  Source
}

// FallbackInsight returns generic advice used when live analysis is
// unavailable.
func FallbackInsight() Insight {
	return Insight{
		Risk:    RiskMedium,
		Summary: "Live analysis is unavailable. Figures below are computed locally from your inputs.",
		Tips: []string{
			"Compare rates across several payment channels before committing.",
			"Account for the platform fee on the sell side; thin spreads flip to losses quickly.",
			"Split large volumes into smaller orders to reduce execution risk.",
		},
		Source: SourceFallback,
	}
}
