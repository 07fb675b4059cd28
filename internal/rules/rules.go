// Package rules applies the cross-field and temporal business rules that
// structural schema validation cannot express. Every rule lives in one
// enumerated table with a stable id, a fixed severity, and a pure
// predicate over the typed intent, so each rule can be unit tested in
// isolation and the compliance-score formula sees every rule.
package rules

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// Rule ids.
const (
	RuleExpiredDeadline            = models.CodeExpiredDeadline
	RuleMissingLimitPrice          = models.CodeMissingLimitPrice
	RuleDeadlineMismatch           = "DEADLINE_MISMATCH"
	RuleSolverWindowTooShort       = "SOLVER_WINDOW_TOO_SHORT"
	RuleSolverWindowTooLong        = "SOLVER_WINDOW_TOO_LONG"
	RuleSolverWindowTightComplex   = "SOLVER_WINDOW_TIGHT_FOR_COMPLEX"
	RuleDecisionTimeoutExcessive   = "DECISION_TIMEOUT_EXCESSIVE"
	RuleTypeModeMismatch           = "TYPE_MODE_MISMATCH"
	RuleWeightSumMismatch          = "WEIGHT_SUM_MISMATCH"
	RuleSlippageExcessive          = "SLIPPAGE_EXCESSIVE"
	RuleGasLimitExcessive          = "GAS_LIMIT_EXCESSIVE"
	RuleBenchmarkLowConfidence     = "BENCHMARK_LOW_CONFIDENCE"
	RuleLimitPriceFarFromMarket    = "LIMIT_FAR_FROM_MARKET"
)

// Rule thresholds.
const (
	minSolverWindowMs        = 1000
	maxSolverWindowMs        = 60000
	complexSolverWindowMs    = 2000
	maxDecisionTimeoutMs     = 600000
	weightSumTarget          = 100.0
	weightSumTolerance       = 0.01
	slippageWarningBps       = 1000
	maxReasonableGas         = 1_000_000_000_000_000_000 // one native-token unit in wei
	minBenchmarkConfidence   = 0.7
	limitMarketDivergenceMax = 0.5
)

// Rule is one business rule: a stable id, a fixed severity, and a pure
// predicate returning whether the rule fires and a human message.
type Rule struct {
	ID       string
	Severity models.Severity
	Check    func(intent *models.Intent, now time.Time) (bool, string)
}

// Table returns the full rule set. Rules run independently and all
// accumulate; order never affects the outcome.
func Table() []Rule {
	return []Rule{
		{
			ID:       RuleExpiredDeadline,
			Severity: models.SeverityError,
			Check: func(intent *models.Intent, now time.Time) (bool, string) {
				if !intent.Timing.AbsoluteDeadline.After(now) {
					return true, "absolute deadline has already passed"
				}
				return false, ""
			},
		},
		{
			// The only other hard error: ranking a limit order without a
			// reference price is meaningless.
			ID:       RuleMissingLimitPrice,
			Severity: models.SeverityError,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if intent.IntentType.IsLimit() && intent.Constraints.LimitPrice == nil {
					return true, "limit intents require constraints.limit_price"
				}
				return false, ""
			},
		},
		{
			ID:       RuleDeadlineMismatch,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if !intent.Constraints.Deadline.Equal(intent.Timing.AbsoluteDeadline) {
					return true, "constraints.deadline differs from timing.absolute_deadline"
				}
				return false, ""
			},
		},
		{
			ID:       RuleSolverWindowTooShort,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if intent.Timing.SolverWindowMs < minSolverWindowMs {
					return true, fmt.Sprintf("solver window %dms is too short", intent.Timing.SolverWindowMs)
				}
				return false, ""
			},
		},
		{
			ID:       RuleSolverWindowTooLong,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if intent.Timing.SolverWindowMs > maxSolverWindowMs {
					return true, fmt.Sprintf("solver window %dms is too long", intent.Timing.SolverWindowMs)
				}
				return false, ""
			},
		},
		{
			ID:       RuleSolverWindowTightComplex,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if isComplexOperation(intent) && intent.Timing.SolverWindowMs < complexSolverWindowMs {
					return true, fmt.Sprintf("solver window %dms is tight for a complex operation", intent.Timing.SolverWindowMs)
				}
				return false, ""
			},
		},
		{
			ID:       RuleDecisionTimeoutExcessive,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if intent.Timing.UserDecisionTimeoutMs > maxDecisionTimeoutMs {
					return true, fmt.Sprintf("user decision timeout %dms exceeds %dms", intent.Timing.UserDecisionTimeoutMs, maxDecisionTimeoutMs)
				}
				return false, ""
			},
		},
		{
			ID:       RuleTypeModeMismatch,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				expected := intent.IntentType.ExpectedMode()
				if expected != "" && intent.Operation.Mode != expected {
					return true, fmt.Sprintf("intent_type %q expects operation mode %q, got %q",
						intent.IntentType, expected, intent.Operation.Mode)
				}
				return false, ""
			},
		},
		{
			ID:       RuleWeightSumMismatch,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				sum := intent.Preferences.RankingWeights.Sum()
				if math.Abs(sum-weightSumTarget) > weightSumTolerance {
					return true, fmt.Sprintf("ranking weights sum to %.2f, expected 100", sum)
				}
				return false, ""
			},
		},
		{
			ID:       RuleSlippageExcessive,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if intent.Constraints.MaxSlippageBps > slippageWarningBps {
					return true, fmt.Sprintf("max slippage %d bps exceeds 10%%", intent.Constraints.MaxSlippageBps)
				}
				return false, ""
			},
		},
		{
			ID:       RuleGasLimitExcessive,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				if intent.Constraints.MaxGas != nil && *intent.Constraints.MaxGas > maxReasonableGas {
					return true, "declared max gas exceeds one native-token unit"
				}
				return false, ""
			},
		},
		{
			ID:       RuleBenchmarkLowConfidence,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				c := intent.ExpectedOutcome.Benchmark.Confidence
				if c > 0 && c < minBenchmarkConfidence {
					return true, fmt.Sprintf("benchmark confidence %.2f is below %.1f", c, minBenchmarkConfidence)
				}
				return false, ""
			},
		},
		{
			ID:       RuleLimitPriceFarFromMarket,
			Severity: models.SeverityWarning,
			Check: func(intent *models.Intent, _ time.Time) (bool, string) {
				lp := intent.Constraints.LimitPrice
				market := intent.ExpectedOutcome.Benchmark.MarketPrice
				if lp == nil || lp.Price <= 0 || market <= 0 {
					return false, ""
				}
				divergence := math.Abs(lp.Price-market) / market
				if divergence > limitMarketDivergenceMax {
					return true, fmt.Sprintf("limit price diverges %.0f%% from market", divergence*100)
				}
				return false, ""
			},
		},
	}
}

// isComplexOperation mirrors the classifier's complexity notion closely
// enough for the window-sanity rule: multi-asset legs or multi-protocol
// routing make a window under two seconds unrealistic.
func isComplexOperation(intent *models.Intent) bool {
	if len(intent.Operation.Inputs)+len(intent.Operation.Outputs) > 2 {
		return true
	}
	return len(intent.Constraints.AllowedProtocols) > 1
}

// Validator runs the rule table against structurally valid intents.
type Validator struct {
	table []Rule
}

// NewValidator builds a validator over the full rule table.
func NewValidator() *Validator {
	return &Validator{table: Table()}
}

// Validate runs every rule and accumulates findings. Errors make the
// intent invalid; warnings only erode its compliance score.
func (v *Validator) Validate(intent *models.Intent, now time.Time) ([]models.ValidationError, []string) {
	var errors []models.ValidationError
	var warnings []string

	for _, rule := range v.table {
		fired, message := rule.Check(intent, now)
		if !fired {
			continue
		}
		if rule.Severity == models.SeverityError {
			errors = append(errors, models.ValidationError{
				Code:     rule.ID,
				Message:  message,
				Severity: models.SeverityError,
			})
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: %s", rule.ID, message))
		}
	}
	return errors, warnings
}

// Score penalties and bonuses for the intent compliance score.
const (
	structuralErrorPenalty = 35.0
	ruleErrorPenalty       = 20.0
	warningPenalty         = 15.0
	confidenceBonus        = 5.0
	simulationBonus        = 3.0
	highConfidence         = 0.9
)

// ComplianceScore folds structural failures, rule errors, and warnings
// into the bounded [0,100] intent compliance score. Errors cost far more
// than warnings so a single hard violation dominates while stylistic
// warnings merely erode the figure.
func ComplianceScore(intent *models.Intent, structuralErrors, ruleErrors, warnings int) float64 {
	score := 100.0
	score -= structuralErrorPenalty * float64(structuralErrors)
	score -= ruleErrorPenalty * float64(ruleErrors)
	score -= warningPenalty * float64(warnings)

	if intent.Metadata.InputConfidence > highConfidence {
		score += confidenceBonus
	}
	if intent.ExpectedOutcome.Benchmark.Confidence > highConfidence {
		score += confidenceBonus
	}
	if intent.Preferences.Execution.RequireSimulation {
		score += simulationBonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
