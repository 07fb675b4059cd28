// Package compliance verifies that a solution honors its intent's hard
// constraints. Amount comparisons use big integers because amounts are
// base-unit integer strings that overflow float precision.
package compliance

import (
	"fmt"
	"math/big"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// Penalty per failed check and bonus per good signal.
const (
	constraintPenalty = 30.0
	outputPenalty     = 25.0
	timingPenalty     = 20.0
	gasPenalty        = 15.0
	transparencyBonus = 5.0
	headroomBonus     = 5.0

	// DefaultGasCeiling bounds estimated gas at a block-scale sanity limit.
	DefaultGasCeiling = 30_000_000
)

// Checker applies an intent's hard constraints to candidate solutions.
type Checker struct {
	gasCeiling uint64
}

// NewChecker creates a checker with the given gas sanity ceiling; zero
// selects the default.
func NewChecker(gasCeiling uint64) *Checker {
	if gasCeiling == 0 {
		gasCeiling = DefaultGasCeiling
	}
	return &Checker{gasCeiling: gasCeiling}
}

// Result is a solution's compliance outcome. TimingRejected marks the one
// failure that excludes the solution outright regardless of score: a
// solution submitted past the deadline gets no partial credit.
type Result struct {
	models.ValidationResult
	TimingRejected bool
}

// Check verifies the solution against the intent's constraints and
// produces the solution compliance score.
func (c *Checker) Check(intent *models.Intent, sol *models.Solution) Result {
	result := Result{ValidationResult: models.ValidationResult{Valid: true}}
	score := 100.0

	// Minimum outputs: every declared floor must be met by a matching
	// promised output.
	for i, min := range intent.Constraints.MinOutputs {
		path := fmt.Sprintf("constraints.min_outputs[%d]", i)
		promised, ok := findPromised(sol.PromisedOutputs, min.Asset)
		if !ok {
			result.AddError(models.CodeMinOutputNotMet, path,
				fmt.Sprintf("no promised output for asset %s", min.Asset))
			score -= constraintPenalty
			continue
		}
		cmp, err := compareAmounts(promised.Amount, min.Amount)
		if err != nil {
			result.AddError(models.CodeMinOutputNotMet, path, err.Error())
			score -= constraintPenalty
			continue
		}
		if cmp < 0 {
			result.AddError(models.CodeMinOutputNotMet, path,
				fmt.Sprintf("promised %s %s is below minimum %s", min.Asset, promised.Amount, min.Amount))
			score -= constraintPenalty
		}
	}

	// Slippage ceiling.
	if sol.EstimatedSlippageBps > intent.Constraints.MaxSlippageBps {
		result.AddError(models.CodeSlippageExceeded, "estimated_slippage_bps",
			fmt.Sprintf("estimated slippage %d bps exceeds ceiling %d bps",
				sol.EstimatedSlippageBps, intent.Constraints.MaxSlippageBps))
		score -= constraintPenalty
	}

	// Every expected output asset must be present. Amount adequacy is the
	// min-output rule's concern.
	for _, expected := range intent.ExpectedOutcome.ExpectedOutputs {
		if _, ok := findPromised(sol.PromisedOutputs, expected.Asset); !ok {
			result.AddError(models.CodeExpectedOutputMissing, "promised_outputs",
				fmt.Sprintf("expected output asset %s is not promised", expected.Asset))
			score -= outputPenalty
		}
	}

	// Timing: late is late. The window boundary is a timestamp comparison,
	// not a lock.
	if !sol.SubmittedAt.Before(intent.Timing.AbsoluteDeadline) {
		result.AddError(models.CodeDeadlineExceeded, "submitted_at",
			"solution submitted at or after the absolute deadline")
		result.TimingRejected = true
		score -= timingPenalty
	}

	// Gas reasonableness.
	if sol.EstimatedGas == 0 || sol.EstimatedGas > c.gasCeiling {
		result.AddError(models.CodeGasUnreasonable, "estimated_gas",
			fmt.Sprintf("estimated gas %d outside (0, %d]", sol.EstimatedGas, c.gasCeiling))
		score -= gasPenalty
	}

	// Strategy transparency: a disclosed protocol list earns a small bonus.
	if len(sol.Strategy.Protocols) > 0 {
		score += transparencyBonus
	}
	// Slippage headroom: staying within half the ceiling earns another.
	if intent.Constraints.MaxSlippageBps > 0 &&
		sol.EstimatedSlippageBps*2 <= intent.Constraints.MaxSlippageBps {
		score += headroomBonus
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	result.ComplianceScore = score
	return result
}

func findPromised(outputs []models.PromisedOutput, asset string) (models.PromisedOutput, bool) {
	for _, out := range outputs {
		if out.Asset == asset {
			return out, true
		}
	}
	return models.PromisedOutput{}, false
}

// compareAmounts compares two base-unit integer strings, returning the
// usual -1/0/1.
func compareAmounts(a, b string) (int, error) {
	av, ok := new(big.Int).SetString(a, 10)
	if !ok {
		return 0, fmt.Errorf("amount %q is not a base-unit integer", a)
	}
	bv, ok := new(big.Int).SetString(b, 10)
	if !ok {
		return 0, fmt.Errorf("amount %q is not a base-unit integer", b)
	}
	return av.Cmp(bv), nil
}
