package ranking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/yourusername/intent-protocol/engine-service/internal/compliance"
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

var rankNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func rankingIntent() *models.Intent {
	return &models.Intent{
		ID: "intent-1",
		Constraints: models.Constraints{
			MaxSlippageBps: 50,
		},
		Preferences: models.Preferences{
			RankingWeights: models.RankingWeights{
				Surplus: 70, GasCost: 10, ExecutionSpeed: 10, SolverReputation: 10,
			},
		},
		Timing: models.Timing{UserDecisionTimeoutMs: 60000},
	}
}

func passingCandidate(id string, surplusPct float64, gas uint64, hops int, reputation float64) Candidate {
	return Candidate{
		Solution: &models.Solution{
			ID:                   id,
			SolverAddress:        "0x2222222222222222222222222222222222222222",
			SubmittedAt:          rankNow.Add(-10 * time.Minute),
			EstimatedGas:         gas,
			EstimatedSlippageBps: 20,
			Strategy:             models.Strategy{Hops: hops},
		},
		Compliance: compliance.Result{
			ValidationResult: models.ValidationResult{Valid: true, ComplianceScore: 100},
		},
		Surplus:    models.SurplusResult{SurplusPercentage: surplusPct, Surplus: "1", BenchmarkValue: "1", SolutionValue: "2"},
		SurplusOK:  true,
		Reputation: reputation,
	}
}

func failingCandidate(id, code string, timing bool) Candidate {
	result := compliance.Result{TimingRejected: timing}
	result.AddError(code, "field", "failed")
	return Candidate{
		Solution: &models.Solution{
			ID:            id,
			SolverAddress: "0x3333333333333333333333333333333333333333",
			SubmittedAt:   rankNow,
		},
		Compliance: result,
	}
}

func TestRankOrdersByWeightedScore(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	candidates := []Candidate{
		passingCandidate("solution-low", 1.0, 200000, 3, 50),
		passingCandidate("solution-high", 8.0, 150000, 2, 50),
		passingCandidate("solution-mid", 4.0, 150000, 2, 50),
	}

	result, rejections := r.Rank(intent, models.Classification{RiskLevel: models.RiskLow}, candidates, rankNow)

	if len(rejections) != 0 {
		t.Fatalf("expected no rejections, got %d", len(rejections))
	}
	if len(result.RankedSolutions) != 3 {
		t.Fatalf("expected 3 ranked solutions, got %d", len(result.RankedSolutions))
	}

	order := []string{"solution-high", "solution-mid", "solution-low"}
	for i, want := range order {
		got := result.RankedSolutions[i]
		if got.SolutionID != want {
			t.Errorf("rank %d = %s, expected %s", i+1, got.SolutionID, want)
		}
		if got.Rank != i+1 {
			t.Errorf("Rank field = %d, expected %d", got.Rank, i+1)
		}
	}

	if result.BestSolution == nil || result.BestSolution.SolutionID != "solution-high" {
		t.Error("BestSolution should be the rank-1 entry")
	}
	if result.Metadata.Strategy != StrategyName || result.Metadata.StrategyVersion != StrategyVersion {
		t.Errorf("unexpected strategy stamp: %+v", result.Metadata)
	}
	if !result.ExpiresAt.Equal(rankNow.Add(60 * time.Second)) {
		t.Errorf("ExpiresAt = %v, expected now + decision timeout", result.ExpiresAt)
	}
}

func TestRankSubScores(t *testing.T) {
	r := NewRanker(0)

	cand := passingCandidate("solution-1", 5.0, 150000, 2, 85)
	b := r.subScores(cand)

	if b.SurplusScore != 50 {
		t.Errorf("SurplusScore = %f, expected 50", b.SurplusScore)
	}
	if b.CostScore != 70 {
		t.Errorf("CostScore = %f, expected 70", b.CostScore)
	}
	if b.SpeedScore != 80 {
		t.Errorf("SpeedScore = %f, expected 80", b.SpeedScore)
	}
	if b.ReputationScore != 85 {
		t.Errorf("ReputationScore = %f, expected 85", b.ReputationScore)
	}
}

func TestRankSubScoreClamping(t *testing.T) {
	r := NewRanker(0)

	// 20% surplus saturates, 600k gas zeroes cost, 15 hops zero speed,
	// reputation beyond 100 is capped.
	cand := passingCandidate("solution-1", 20.0, 600000, 15, 250)
	b := r.subScores(cand)

	if b.SurplusScore != 100 {
		t.Errorf("SurplusScore = %f, expected saturation at 100", b.SurplusScore)
	}
	if b.CostScore != 0 {
		t.Errorf("CostScore = %f, expected floor of 0", b.CostScore)
	}
	if b.SpeedScore != 0 {
		t.Errorf("SpeedScore = %f, expected floor of 0", b.SpeedScore)
	}
	if b.ReputationScore != 100 {
		t.Errorf("ReputationScore = %f, expected cap of 100", b.ReputationScore)
	}

	neg := passingCandidate("solution-2", -5.0, 150000, 2, 50)
	if s := r.subScores(neg).SurplusScore; s != 0 {
		t.Errorf("negative surplus should clamp to 0, got %f", s)
	}
}

func TestRankSurplusMonotonicity(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	// Identical except surplus: more surplus must never rank worse.
	candidates := []Candidate{
		passingCandidate("solution-a", 2.0, 150000, 2, 50),
		passingCandidate("solution-b", 6.0, 150000, 2, 50),
	}

	result, _ := r.Rank(intent, models.Classification{}, candidates, rankNow)
	if result.RankedSolutions[0].SolutionID != "solution-b" {
		t.Error("higher surplus with equal everything else must rank first")
	}
}

func TestRankTieBreaks(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	t.Run("Earlier submission wins an exact tie", func(t *testing.T) {
		early := passingCandidate("solution-zz", 5.0, 150000, 2, 50)
		early.Solution.SubmittedAt = rankNow.Add(-20 * time.Minute)
		late := passingCandidate("solution-aa", 5.0, 150000, 2, 50)
		late.Solution.SubmittedAt = rankNow.Add(-5 * time.Minute)

		// Insertion order reversed on purpose.
		result, _ := r.Rank(intent, models.Classification{}, []Candidate{late, early}, rankNow)
		if result.RankedSolutions[0].SolutionID != "solution-zz" {
			t.Errorf("rank 1 = %s, expected the earlier submission", result.RankedSolutions[0].SolutionID)
		}
	})

	t.Run("Smaller id wins when timestamps also tie", func(t *testing.T) {
		a := passingCandidate("solution-a", 5.0, 150000, 2, 50)
		b := passingCandidate("solution-b", 5.0, 150000, 2, 50)

		result, _ := r.Rank(intent, models.Classification{}, []Candidate{b, a}, rankNow)
		if result.RankedSolutions[0].SolutionID != "solution-a" {
			t.Errorf("rank 1 = %s, expected solution-a", result.RankedSolutions[0].SolutionID)
		}
	})

	t.Run("Higher surplus score wins a total-score tie", func(t *testing.T) {
		// Equal weights trade 10 surplus points against 10 reputation
		// points: totals tie, surplus breaks it.
		even := rankingIntent()
		even.Preferences.RankingWeights = models.RankingWeights{
			Surplus: 25, GasCost: 25, ExecutionSpeed: 25, SolverReputation: 25,
		}
		surplusHeavy := passingCandidate("solution-x", 6.0, 150000, 2, 50)
		repHeavy := passingCandidate("solution-y", 5.0, 150000, 2, 60)

		result, _ := r.Rank(even, models.Classification{}, []Candidate{repHeavy, surplusHeavy}, rankNow)
		if result.RankedSolutions[0].SolutionID != "solution-x" {
			t.Errorf("rank 1 = %s, expected the surplus-heavy entry", result.RankedSolutions[0].SolutionID)
		}
	})
}

func TestRankDeterminism(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	candidates := []Candidate{
		passingCandidate("solution-c", 3.0, 180000, 1, 40),
		passingCandidate("solution-a", 5.0, 150000, 2, 85),
		passingCandidate("solution-b", 5.0, 150000, 2, 85),
	}

	first, _ := r.Rank(intent, models.Classification{RiskLevel: models.RiskLow}, candidates, rankNow)
	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		again, _ := r.Rank(intent, models.Classification{RiskLevel: models.RiskLow}, candidates, rankNow)
		againJSON, err := json.Marshal(again)
		if err != nil {
			t.Fatal(err)
		}
		if string(firstJSON) != string(againJSON) {
			t.Fatal("identical inputs must produce byte-identical rankings")
		}
	}
}

func TestRankRejections(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	candidates := []Candidate{
		passingCandidate("solution-good", 5.0, 150000, 2, 50),
		failingCandidate("solution-late", models.CodeDeadlineExceeded, true),
		failingCandidate("solution-slip", models.CodeSlippageExceeded, false),
	}

	result, rejections := r.Rank(intent, models.Classification{}, candidates, rankNow)

	if len(result.RankedSolutions) != 1 {
		t.Fatalf("expected 1 ranked solution, got %d", len(result.RankedSolutions))
	}
	if len(rejections) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(rejections))
	}
	if result.Metadata.TotalSolutions != 3 {
		t.Errorf("TotalSolutions = %d, expected 3", result.Metadata.TotalSolutions)
	}

	byID := map[string]models.Rejection{}
	for _, rej := range rejections {
		byID[rej.SolutionID] = rej
	}
	if byID["solution-late"].FailureReason != "submitted after the absolute deadline" {
		t.Errorf("timing rejection reason = %q", byID["solution-late"].FailureReason)
	}
	if byID["solution-slip"].FailureReason != models.CodeSlippageExceeded {
		t.Errorf("compliance rejection reason = %q", byID["solution-slip"].FailureReason)
	}
}

func TestRankEmptyRound(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	t.Run("No candidates at all", func(t *testing.T) {
		result, rejections := r.Rank(intent, models.Classification{}, nil, rankNow)
		if len(result.RankedSolutions) != 0 || result.BestSolution != nil {
			t.Error("expected an explicit empty ranking")
		}
		if len(rejections) != 0 {
			t.Error("expected no rejections")
		}
	})

	t.Run("All candidates rejected", func(t *testing.T) {
		candidates := []Candidate{
			failingCandidate("solution-1", models.CodeMinOutputNotMet, false),
			failingCandidate("solution-2", models.CodeGasUnreasonable, false),
		}
		result, rejections := r.Rank(intent, models.Classification{}, candidates, rankNow)
		if len(result.RankedSolutions) != 0 {
			t.Error("expected no ranked solutions")
		}
		if result.BestSolution != nil {
			t.Error("BestSolution must be nil for an empty round")
		}
		if len(rejections) != 2 {
			t.Errorf("expected 2 rejections, got %d", len(rejections))
		}
		if result.Metadata.TotalSolutions != 2 {
			t.Errorf("TotalSolutions = %d, expected 2", result.Metadata.TotalSolutions)
		}
	})
}

func TestRankReasoning(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	candidates := []Candidate{passingCandidate("solution-1", 8.0, 150000, 2, 50)}
	result, _ := r.Rank(intent, models.Classification{RiskLevel: models.RiskLow}, candidates, rankNow)

	reasoning := result.RankedSolutions[0].Reasoning
	// Surplus contributes 80*0.70=56 points, far ahead of the rest.
	if reasoning.PrimaryReason != "dominant surplus contribution (56.0 points)" {
		t.Errorf("PrimaryReason = %q", reasoning.PrimaryReason)
	}
	if len(reasoning.SecondaryReasons) != 0 {
		t.Errorf("expected no secondary reasons, got %v", reasoning.SecondaryReasons)
	}
	if reasoning.RiskAssessment != models.RiskLow {
		t.Errorf("RiskAssessment = %s, expected low", reasoning.RiskAssessment)
	}
	if reasoning.ConfidenceLevel != 1 {
		t.Errorf("ConfidenceLevel = %f, expected 1", reasoning.ConfidenceLevel)
	}
}

func TestRankRiskEscalation(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	cand := passingCandidate("solution-1", 5.0, 150000, 2, 50)
	cand.Solution.EstimatedSlippageBps = 45

	result, _ := r.Rank(intent, models.Classification{RiskLevel: models.RiskLow}, []Candidate{cand}, rankNow)
	if got := result.RankedSolutions[0].Reasoning.RiskAssessment; got != models.RiskMedium {
		t.Errorf("RiskAssessment = %s, expected escalation to medium", got)
	}
}

func TestRankSurplusWarning(t *testing.T) {
	r := NewRanker(0)
	intent := rankingIntent()

	cand := passingCandidate("solution-1", 0, 150000, 2, 50)
	cand.SurplusOK = false

	result, _ := r.Rank(intent, models.Classification{}, []Candidate{cand}, rankNow)
	warnings := result.RankedSolutions[0].Warnings
	if len(warnings) != 1 || warnings[0] != "no matching benchmark asset; surplus defaulted to zero" {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestWeightedTotal(t *testing.T) {
	b := models.ScoreBreakdown{SurplusScore: 80, CostScore: 60, SpeedScore: 40, ReputationScore: 20}
	w := models.RankingWeights{Surplus: 70, GasCost: 10, ExecutionSpeed: 10, SolverReputation: 10}

	got := weightedTotal(b, w)
	expected := 80*0.70 + 60*0.10 + 40*0.10 + 20*0.10
	if got != expected {
		t.Errorf("weightedTotal = %f, expected %f", got, expected)
	}
}
