// Package ranking combines compliance, surplus, cost, speed, and
// reputation signals into an ordered, explained list of solutions.
// Ranking is a pure function of its inputs: re-running it on the same
// intent, solutions, and reputation figures yields an identical result,
// so any party can re-derive the designated winner.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/intent-protocol/engine-service/internal/compliance"
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// Strategy identifiers stamped on every result.
const (
	StrategyName    = "weighted_composite"
	StrategyVersion = "1.0.0"
)

// Scoring constants.
const (
	// surplusSaturationFactor maps surplus percentage to score: 10%
	// surplus saturates at 100.
	surplusSaturationFactor = 10.0
	// speedPenaltyPerHop deducts from a perfect speed score per routing hop.
	speedPenaltyPerHop = 10.0
	// DefaultGasPerCostPoint is the gas cost of one cost-score point:
	// 500k gas zeroes the cost score.
	DefaultGasPerCostPoint = 5000.0
	// secondaryReasonShare keeps a sub-score a secondary reason when its
	// weighted contribution is within 15% of the dominant one.
	secondaryReasonShare = 0.85
	// riskEscalationShare escalates risk when a solution uses more than
	// this share of the intent's slippage budget.
	riskEscalationShare = 0.8
)

// Candidate is one solution with its per-solution derived inputs, all
// computed before ranking begins.
type Candidate struct {
	Solution   *models.Solution
	Compliance compliance.Result
	Surplus    models.SurplusResult
	SurplusOK  bool
	Reputation float64
}

// Ranker orders candidates by the intent's declared weights.
type Ranker struct {
	gasPerCostPoint float64
}

// NewRanker creates a ranker; a non-positive divisor selects the default.
func NewRanker(gasPerCostPoint float64) *Ranker {
	if gasPerCostPoint <= 0 {
		gasPerCostPoint = DefaultGasPerCostPoint
	}
	return &Ranker{gasPerCostPoint: gasPerCostPoint}
}

// Rank partitions candidates into passed and rejected, scores the passed
// set, sorts deterministically, and explains each entry. Zero passing
// candidates yield an explicit empty ranking, never an error.
func (r *Ranker) Rank(
	intent *models.Intent,
	classification models.Classification,
	candidates []Candidate,
	now time.Time,
) (*models.RankingResult, []models.Rejection) {

	var passed []Candidate
	var rejections []models.Rejection

	for _, cand := range candidates {
		if cand.Compliance.Valid {
			passed = append(passed, cand)
			continue
		}
		rejections = append(rejections, models.Rejection{
			SolutionID:    cand.Solution.ID,
			SolverAddress: cand.Solution.SolverAddress,
			FailureReason: rejectionReason(cand.Compliance),
			Errors:        cand.Compliance.Errors,
		})
	}

	expiresAt := now.Add(time.Duration(intent.Timing.UserDecisionTimeoutMs) * time.Millisecond)

	result := &models.RankingResult{
		IntentID:        intent.ID,
		RankedSolutions: []models.RankedSolution{},
		Metadata: models.RankingMetadata{
			TotalSolutions:  len(candidates),
			Strategy:        StrategyName,
			StrategyVersion: StrategyVersion,
		},
		RankedAt:  now,
		ExpiresAt: expiresAt,
	}

	if len(passed) == 0 {
		return result, rejections
	}

	type scored struct {
		cand      Candidate
		breakdown models.ScoreBreakdown
		total     float64
	}

	weights := intent.Preferences.RankingWeights
	entries := make([]scored, len(passed))
	for i, cand := range passed {
		breakdown := r.subScores(cand)
		entries[i] = scored{
			cand:      cand,
			breakdown: breakdown,
			total:     weightedTotal(breakdown, weights),
		}
	}

	// Descending by score with the deterministic tie-break chain:
	// higher surplus score, earlier submission, smaller solution id.
	// Insertion order never decides.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.total != b.total {
			return a.total > b.total
		}
		if a.breakdown.SurplusScore != b.breakdown.SurplusScore {
			return a.breakdown.SurplusScore > b.breakdown.SurplusScore
		}
		if !a.cand.Solution.SubmittedAt.Equal(b.cand.Solution.SubmittedAt) {
			return a.cand.Solution.SubmittedAt.Before(b.cand.Solution.SubmittedAt)
		}
		return a.cand.Solution.ID < b.cand.Solution.ID
	})

	sum := 0.0
	for i, entry := range entries {
		ranked := models.RankedSolution{
			SolutionID:     entry.cand.Solution.ID,
			SolverAddress:  entry.cand.Solution.SolverAddress,
			Rank:           i + 1,
			Score:          entry.total,
			ScoreBreakdown: entry.breakdown,
			Surplus:        entry.cand.Surplus,
			Reasoning:      r.explain(intent, classification, entry.cand, entry.breakdown, weights),
			Warnings:       candidateWarnings(entry.cand),
			ExpiresAt:      expiresAt,
		}
		result.RankedSolutions = append(result.RankedSolutions, ranked)
		sum += entry.total
	}

	result.Metadata.AverageScore = sum / float64(len(entries))

	// The protocol incentive always targets rank 1, even when a show_top_n
	// preference trims what a UI displays.
	best := result.RankedSolutions[0]
	result.BestSolution = &best

	return result, rejections
}

func (r *Ranker) subScores(cand Candidate) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		SurplusScore:    clamp(cand.Surplus.SurplusPercentage * surplusSaturationFactor),
		CostScore:       clamp(100 - float64(cand.Solution.EstimatedGas)/r.gasPerCostPoint),
		SpeedScore:      clamp(100 - float64(cand.Solution.Strategy.Hops)*speedPenaltyPerHop),
		ReputationScore: clamp(cand.Reputation),
	}
}

// weightedTotal reads the weights from the intent verbatim; a solver has
// no influence over the weighting.
func weightedTotal(b models.ScoreBreakdown, w models.RankingWeights) float64 {
	return b.SurplusScore*w.Surplus/100 +
		b.CostScore*w.GasCost/100 +
		b.SpeedScore*w.ExecutionSpeed/100 +
		b.ReputationScore*w.SolverReputation/100
}

func (r *Ranker) explain(
	intent *models.Intent,
	classification models.Classification,
	cand Candidate,
	b models.ScoreBreakdown,
	w models.RankingWeights,
) models.Reasoning {

	type contribution struct {
		label  string
		amount float64
	}
	contributions := []contribution{
		{"surplus", b.SurplusScore * w.Surplus / 100},
		{"gas cost", b.CostScore * w.GasCost / 100},
		{"execution speed", b.SpeedScore * w.ExecutionSpeed / 100},
		{"solver reputation", b.ReputationScore * w.SolverReputation / 100},
	}

	dominant := contributions[0]
	for _, c := range contributions[1:] {
		if c.amount > dominant.amount {
			dominant = c
		}
	}

	var secondary []string
	for _, c := range contributions {
		if c.label == dominant.label {
			continue
		}
		if dominant.amount > 0 && c.amount >= dominant.amount*secondaryReasonShare {
			secondary = append(secondary, fmt.Sprintf("strong %s contribution", c.label))
		}
	}

	risk := classification.RiskLevel
	budget := float64(intent.Constraints.MaxSlippageBps)
	if budget > 0 && float64(cand.Solution.EstimatedSlippageBps) > budget*riskEscalationShare {
		risk = risk.Escalate()
	}

	return models.Reasoning{
		PrimaryReason:    fmt.Sprintf("dominant %s contribution (%.1f points)", dominant.label, dominant.amount),
		SecondaryReasons: secondary,
		RiskAssessment:   risk,
		ConfidenceLevel:  cand.Compliance.ComplianceScore / 100,
	}
}

func candidateWarnings(cand Candidate) []string {
	warnings := append([]string(nil), cand.Compliance.Warnings...)
	if !cand.SurplusOK {
		warnings = append(warnings, "no matching benchmark asset; surplus defaulted to zero")
	}
	return warnings
}

func rejectionReason(result compliance.Result) string {
	if result.TimingRejected {
		return "submitted after the absolute deadline"
	}
	if len(result.Errors) > 0 {
		return result.Errors[0].Code
	}
	return "failed compliance"
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
