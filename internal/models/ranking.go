package models

import "time"

// SurplusResult compares a solution's promised value to the intent's
// benchmark. All fields are zero when no matching benchmark/output pair
// exists; the caller raises a warning in that case.
type SurplusResult struct {
	BenchmarkValue    string  `json:"benchmark_value"`
	SolutionValue     string  `json:"solution_value"`
	Surplus           string  `json:"surplus"`
	SurplusPercentage float64 `json:"surplus_percentage"`
}

// ScoreBreakdown holds the four normalized sub-scores, each in [0,100].
type ScoreBreakdown struct {
	SurplusScore    float64 `json:"surplus_score"`
	CostScore       float64 `json:"cost_score"`
	SpeedScore      float64 `json:"speed_score"`
	ReputationScore float64 `json:"reputation_score"`
}

// Reasoning explains a ranked solution's position.
type Reasoning struct {
	PrimaryReason    string    `json:"primary_reason"`
	SecondaryReasons []string  `json:"secondary_reasons,omitempty"`
	RiskAssessment   RiskLevel `json:"risk_assessment"`
	ConfidenceLevel  float64   `json:"confidence_level"`
}

// RankedSolution is one scored, explained entry of a ranking.
type RankedSolution struct {
	SolutionID     string         `json:"solution_id"`
	SolverAddress  string         `json:"solver_address"`
	Rank           int            `json:"rank"`
	Score          float64        `json:"score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Surplus        SurplusResult  `json:"surplus"`
	Reasoning      Reasoning      `json:"reasoning"`
	Warnings       []string       `json:"warnings,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
}

// RankingMetadata describes the ranking run.
type RankingMetadata struct {
	TotalSolutions  int     `json:"total_solutions"`
	AverageScore    float64 `json:"average_score"`
	Strategy        string  `json:"strategy"`
	StrategyVersion string  `json:"strategy_version"`
}

// RankingResult is the ordered outcome of one intent's auction round.
// BestSolution is nil exactly when no solution passed compliance.
type RankingResult struct {
	IntentID        string           `json:"intent_id"`
	RankedSolutions []RankedSolution `json:"ranked_solutions"`
	BestSolution    *RankedSolution  `json:"best_solution,omitempty"`
	Metadata        RankingMetadata  `json:"metadata"`
	RankedAt        time.Time        `json:"ranked_at"`
	ExpiresAt       time.Time        `json:"expires_at"`
}

// Rejection records why a solution was excluded before scoring. Shown to
// the rejected solver, not to the end user.
type Rejection struct {
	SolutionID    string            `json:"solution_id"`
	SolverAddress string            `json:"solver_address"`
	FailureReason string            `json:"failure_reason"`
	Errors        []ValidationError `json:"errors,omitempty"`
}
