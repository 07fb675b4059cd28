package models

import "time"

// RankingRecord persists one intent's ranking outcome. The full
// RankingResult is stored serialized so any party can re-verify the
// designated winner.
type RankingRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EvaluationID    string    `gorm:"uniqueIndex;not null" json:"evaluation_id"`
	IntentID        string    `gorm:"index;not null" json:"intent_id"`
	BestSolutionID  string    `json:"best_solution_id"`
	TotalSolutions  int       `json:"total_solutions"`
	RankedCount     int       `json:"ranked_count"`
	RejectedCount   int       `json:"rejected_count"`
	AverageScore    float64   `json:"average_score"`
	Strategy        string    `json:"strategy"`
	StrategyVersion string    `json:"strategy_version"`
	ResultJSON      string    `gorm:"type:text" json:"-"`
	RankedAt        time.Time `gorm:"not null" json:"ranked_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// RejectionRecord persists one rejection ledger entry so solvers can audit
// why they lost without re-deriving the scoring math.
type RejectionRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EvaluationID  string    `gorm:"index;not null" json:"evaluation_id"`
	IntentID      string    `gorm:"index;not null" json:"intent_id"`
	SolutionID    string    `gorm:"not null" json:"solution_id"`
	SolverAddress string    `gorm:"index" json:"solver_address"`
	FailureReason string    `json:"failure_reason"`
	ErrorsJSON    string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
