// Package engine runs the full evaluation pipeline for one intent:
// structural validation, business rules, classification, per-solution
// compliance and surplus, and ranking. The engine holds no state between
// evaluations; every invocation is a pure function of the intent, the
// final solution set, and externally supplied reputation figures.
package engine

import (
	"sync"
	"time"

	"github.com/yourusername/intent-protocol/engine-service/internal/classifier"
	"github.com/yourusername/intent-protocol/engine-service/internal/compliance"
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
	"github.com/yourusername/intent-protocol/engine-service/internal/ranking"
	"github.com/yourusername/intent-protocol/engine-service/internal/rules"
	"github.com/yourusername/intent-protocol/engine-service/internal/schema"
	"github.com/yourusername/intent-protocol/engine-service/internal/surplus"
)

// Options tune the engine's configurable constants.
type Options struct {
	// GasCeiling is the compliance gas sanity ceiling; zero selects the
	// default.
	GasCeiling uint64
	// GasPerCostPoint is the gas cost of one cost-score point; zero or
	// negative selects the default.
	GasPerCostPoint float64
}

// Engine wires the pipeline stages. All stages are stateless values, so
// one Engine serves any number of concurrent evaluations.
type Engine struct {
	schema     *schema.Validator
	rules      *rules.Validator
	classifier classifier.Labeler
	compliance *compliance.Checker
	surplus    *surplus.Calculator
	ranker     *ranking.Ranker
}

// New constructs an engine.
func New(opts Options) *Engine {
	return &Engine{
		schema:     schema.NewValidator(),
		rules:      rules.NewValidator(),
		classifier: classifier.New(),
		compliance: compliance.NewChecker(opts.GasCeiling),
		surplus:    surplus.NewCalculator(),
		ranker:     ranking.NewRanker(opts.GasPerCostPoint),
	}
}

// EvaluationResult is the complete outcome of one intent's auction round.
// Ranking is nil exactly when the intent itself failed validation.
type EvaluationResult struct {
	IntentID         string                  `json:"intent_id"`
	IntentValidation models.ValidationResult `json:"intent_validation"`
	Classification   *models.Classification  `json:"classification,omitempty"`
	Ranking          *models.RankingResult   `json:"ranking,omitempty"`
	Rejections       []models.Rejection      `json:"rejections,omitempty"`
}

// Evaluate runs the pipeline once, after the intent's solver window has
// closed, over the full final solution set. Reputations are keyed by
// solver address; a missing entry scores zero.
func (e *Engine) Evaluate(
	intent *models.Intent,
	solutions []*models.Solution,
	reputations map[string]float64,
	now time.Time,
) *EvaluationResult {

	result := &EvaluationResult{IntentID: intent.ID}
	result.IntentValidation = e.validateIntent(intent, now)
	if !result.IntentValidation.Valid {
		return result
	}

	classification := e.classifier.Classify(intent)
	result.Classification = &classification

	candidates := e.evaluateSolutions(intent, solutions, reputations)

	rankingResult, rejections := e.ranker.Rank(intent, classification, candidates, now)
	result.Ranking = rankingResult
	result.Rejections = rejections
	return result
}

// validateIntent combines structural and business-rule validation into
// the intent's ValidationResult and compliance score.
func (e *Engine) validateIntent(intent *models.Intent, now time.Time) models.ValidationResult {
	structural := e.schema.ValidateIntent(intent)

	combined := models.ValidationResult{
		Valid:    structural.Valid,
		Errors:   structural.Errors,
		Warnings: structural.Warnings,
	}

	ruleErrors := 0
	if structural.Valid {
		errs, warnings := e.rules.Validate(intent, now)
		ruleErrors = len(errs)
		combined.Errors = append(combined.Errors, errs...)
		combined.Warnings = append(combined.Warnings, warnings...)
		if ruleErrors > 0 {
			combined.Valid = false
		}
	}

	combined.ComplianceScore = rules.ComplianceScore(
		intent, structural.ErrorCount(), ruleErrors, len(combined.Warnings))
	return combined
}

// evaluateSolutions fans per-solution work out across goroutines and
// gathers the candidates back in submission-slice order. Each goroutine
// touches only its own index and the read-only intent, so no locking is
// needed; ordering determinism comes from the ranker's sort, not from
// goroutine scheduling.
func (e *Engine) evaluateSolutions(
	intent *models.Intent,
	solutions []*models.Solution,
	reputations map[string]float64,
) []ranking.Candidate {

	candidates := make([]ranking.Candidate, len(solutions))

	var wg sync.WaitGroup
	for i, sol := range solutions {
		wg.Add(1)
		go func(i int, sol *models.Solution) {
			defer wg.Done()
			candidates[i] = e.evaluateSolution(intent, sol, reputations[sol.SolverAddress])
		}(i, sol)
	}
	wg.Wait()

	return candidates
}

func (e *Engine) evaluateSolution(
	intent *models.Intent,
	sol *models.Solution,
	reputation float64,
) ranking.Candidate {

	candidate := ranking.Candidate{Solution: sol, Reputation: reputation}

	// A structurally broken solution never reaches constraint checks; its
	// structural errors become its rejection reasons.
	structural := e.schema.ValidateSolution(sol)
	if !structural.Valid {
		candidate.Compliance = compliance.Result{ValidationResult: structural}
		return candidate
	}

	candidate.Compliance = e.compliance.Check(intent, sol)
	candidate.Surplus, candidate.SurplusOK = e.surplus.Calculate(intent, sol)
	return candidate
}
