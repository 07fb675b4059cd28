// Package classifier derives category, priority, complexity, and risk
// labels from a valid intent. Classification is rule-based and pure: it
// is recomputed fresh on every evaluation and never cached, which is safe
// because intents are immutable once submitted.
package classifier

import (
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// Labeler produces a Classification for an intent. The rule-based
// classifier is the default; an ML-backed variant can sit behind the same
// interface.
type Labeler interface {
	Classify(intent *models.Intent) models.Classification
}

// Classifier is the rule-based Labeler.
type Classifier struct{}

// New creates a rule-based classifier.
func New() *Classifier {
	return &Classifier{}
}

// Thresholds for priority and risk derivation.
const (
	priorityDominanceMargin = 10.0
	elevatedSlippageBps     = 500
)

// Classify derives the label set from the intent alone.
func (c *Classifier) Classify(intent *models.Intent) models.Classification {
	return models.Classification{
		PrimaryCategory:  c.category(intent),
		DetectedPriority: c.priority(intent),
		ComplexityLevel:  c.complexity(intent),
		RiskLevel:        c.risk(intent),
		Confidence:       c.confidence(intent),
	}
}

func (c *Classifier) category(intent *models.Intent) models.Category {
	known := false
	for _, t := range models.KnownIntentTypes {
		if intent.IntentType == t {
			known = true
			break
		}
	}
	if !known {
		return models.CategoryOther
	}

	if intent.IntentType.IsLimit() {
		return models.CategoryLimitOrder
	}

	// A round trip through the same asset on both sides is an arbitrage
	// candidate: value leaves and returns in one denomination.
	for _, in := range intent.Operation.Inputs {
		for _, out := range intent.Operation.Outputs {
			if in.Asset.Address == out.Asset.Address {
				return models.CategoryArbitrage
			}
		}
	}

	// Multi-protocol routing over multiple legs is complex DeFi territory.
	if len(intent.Constraints.AllowedProtocols) > 1 &&
		len(intent.Operation.Inputs)+len(intent.Operation.Outputs) > 2 {
		return models.CategoryComplexDeFi
	}

	return models.CategorySwap
}

func (c *Classifier) priority(intent *models.Intent) models.Priority {
	w := intent.Preferences.RankingWeights

	type axis struct {
		priority models.Priority
		weight   float64
	}
	axes := []axis{
		{models.PriorityOutput, w.Surplus},
		{models.PriorityCost, w.GasCost},
		{models.PrioritySpeed, w.ExecutionSpeed},
	}

	best, second := axes[0], axes[1]
	if second.weight > best.weight {
		best, second = second, best
	}
	if axes[2].weight > best.weight {
		second = best
		best = axes[2]
	} else if axes[2].weight > second.weight {
		second = axes[2]
	}

	if best.weight-second.weight < priorityDominanceMargin {
		return models.PriorityBalanced
	}
	return best.priority
}

func (c *Classifier) complexity(intent *models.Intent) models.Complexity {
	assets := len(intent.Operation.Inputs) + len(intent.Operation.Outputs)
	constraints := optionalConstraintCount(&intent.Constraints)
	routing := len(intent.Constraints.AllowedProtocols) + len(intent.Constraints.DeniedProtocols)

	if constraints <= 1 && assets <= 2 {
		return models.ComplexitySimple
	}
	if routing <= 2 && assets <= 4 {
		return models.ComplexityModerate
	}
	return models.ComplexityComplex
}

func optionalConstraintCount(c *models.Constraints) int {
	n := 0
	if len(c.MinOutputs) > 0 {
		n++
	}
	if c.MaxGas != nil {
		n++
	}
	if len(c.AllowedProtocols) > 0 || len(c.DeniedProtocols) > 0 {
		n++
	}
	if c.LimitPrice != nil {
		n++
	}
	return n
}

func (c *Classifier) risk(intent *models.Intent) models.RiskLevel {
	highSlippage := intent.Constraints.MaxSlippageBps > elevatedSlippageBps
	urgentAuto := intent.Preferences.Execution.Urgency == "high" &&
		intent.Preferences.Execution.AutoExecute

	switch {
	case highSlippage && urgentAuto:
		return models.RiskHigh
	case highSlippage || urgentAuto:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// confidence is a completeness ratio: the share of optional signal fields
// present and non-default.
func (c *Classifier) confidence(intent *models.Intent) float64 {
	present := 0
	total := 6

	if intent.Metadata.OriginalInput != "" {
		present++
	}
	if intent.Metadata.InputConfidence > 0 {
		present++
	}
	if len(intent.ExpectedOutcome.ExpectedOutputs) > 0 {
		present++
	}
	if intent.ExpectedOutcome.Benchmark.Confidence > 0 {
		present++
	}
	if intent.Preferences.OptimizationGoal != "" {
		present++
	}
	if len(intent.Metadata.Tags) > 0 {
		present++
	}

	return float64(present) / float64(total)
}
