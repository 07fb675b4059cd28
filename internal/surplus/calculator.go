// Package surplus computes the value a solution delivers beyond the
// intent's benchmark expectation. The figure drives both the ranking
// score and the winning solver's reward, so the calculation is a pure
// function of its inputs and identical for every solver.
package surplus

import (
	"math/big"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// Calculator derives SurplusResults. It reads the first expected-output
// asset that has a matching promised output; netting a multi-asset basket
// through a common price unit is a pluggable oracle strategy, not part of
// this calculator.
type Calculator struct{}

// NewCalculator creates a surplus calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate compares the solution's promised value against the intent's
// benchmark. When the intent declares no benchmark output or the solution
// promises no matching asset, every field is zero and ok is false; the
// caller raises a warning rather than an error.
func (c *Calculator) Calculate(intent *models.Intent, sol *models.Solution) (models.SurplusResult, bool) {
	zero := models.SurplusResult{
		BenchmarkValue:    "0",
		SolutionValue:     "0",
		Surplus:           "0",
		SurplusPercentage: 0,
	}

	for _, expected := range intent.ExpectedOutcome.ExpectedOutputs {
		promised, found := matchPromised(sol.PromisedOutputs, expected.Asset)
		if !found {
			continue
		}

		benchmark, ok := new(big.Int).SetString(expected.Amount, 10)
		if !ok {
			continue
		}
		delivered, ok := new(big.Int).SetString(promised.Amount, 10)
		if !ok {
			continue
		}

		diff := new(big.Int).Sub(delivered, benchmark)

		pct := 0.0
		if benchmark.Sign() != 0 {
			diffF := new(big.Float).SetInt(diff)
			benchF := new(big.Float).SetInt(benchmark)
			ratio, _ := new(big.Float).Quo(diffF, benchF).Float64()
			pct = ratio * 100
		}

		return models.SurplusResult{
			BenchmarkValue:    benchmark.String(),
			SolutionValue:     delivered.String(),
			Surplus:           diff.String(),
			SurplusPercentage: pct,
		}, true
	}

	return zero, false
}

func matchPromised(outputs []models.PromisedOutput, asset string) (models.PromisedOutput, bool) {
	for _, out := range outputs {
		if out.Asset == asset {
			return out, true
		}
	}
	return models.PromisedOutput{}, false
}
