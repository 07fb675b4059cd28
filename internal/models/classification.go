package models

// Category is the derived kind of an intent.
type Category string

const (
	CategorySwap        Category = "swap"
	CategoryLimitOrder  Category = "limit_order"
	CategoryComplexDeFi Category = "complex_defi"
	CategoryArbitrage   Category = "arbitrage"
	CategoryOther       Category = "other"
)

// Priority is the derived dominant optimization axis.
type Priority string

const (
	PrioritySpeed    Priority = "speed"
	PriorityCost     Priority = "cost"
	PriorityOutput   Priority = "output"
	PriorityBalanced Priority = "balanced"
)

// Complexity grades how involved fulfilling the intent is.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// RiskLevel grades the execution risk the intent tolerates.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Escalate raises the risk level by one step, saturating at high.
func (r RiskLevel) Escalate() RiskLevel {
	switch r {
	case RiskLow:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Classification is the derived label set for a valid intent. It is
// recomputed from the intent on every evaluation, never cached.
type Classification struct {
	PrimaryCategory  Category   `json:"primary_category"`
	DetectedPriority Priority   `json:"detected_priority"`
	ComplexityLevel  Complexity `json:"complexity_level"`
	RiskLevel        RiskLevel  `json:"risk_level"`
	Confidence       float64    `json:"confidence"`
}
