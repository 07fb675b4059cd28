package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/intent-protocol/engine-service/internal/engine"
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
	"github.com/yourusername/intent-protocol/engine-service/internal/reputation"
	"github.com/yourusername/intent-protocol/engine-service/internal/repository"
	"github.com/yourusername/intent-protocol/engine-service/pkg/logger"
	"go.uber.org/zap"
)

// EngineService orchestrates one evaluation round: reputation lookup,
// engine evaluation, and persistence of the ranking and rejection ledger.
type EngineService struct {
	eng  *engine.Engine
	repo *repository.RankingRepository
	reps reputation.Source
}

// NewEngineService creates a new engine service.
func NewEngineService(
	eng *engine.Engine,
	repo *repository.RankingRepository,
	reps reputation.Source,
) *EngineService {
	return &EngineService{
		eng:  eng,
		repo: repo,
		reps: reps,
	}
}

// Evaluate runs the engine once for an intent's closed auction round and
// persists the outcome. Reputations supplied by the caller take priority;
// the rest are fetched from the configured source.
func (s *EngineService) Evaluate(
	ctx context.Context,
	intent *models.Intent,
	solutions []*models.Solution,
	suppliedReputations map[string]float64,
) (*engine.EvaluationResult, error) {

	logger.Info("Starting intent evaluation",
		zap.String("intentID", intent.ID),
		zap.Int("solutions", len(solutions)),
	)

	reputations := s.resolveReputations(ctx, solutions, suppliedReputations)

	result := s.eng.Evaluate(intent, solutions, reputations, time.Now().UTC())

	if !result.IntentValidation.Valid {
		logger.Warn("Intent failed validation, no ranking attempted",
			zap.String("intentID", intent.ID),
			zap.Int("errors", len(result.IntentValidation.Errors)),
		)
		return result, nil
	}

	if err := s.persist(ctx, result); err != nil {
		// Persistence trouble must not void a completed evaluation; the
		// caller still gets the result.
		logger.Error("Failed to persist evaluation", zap.Error(err))
	}

	logger.Info("Intent evaluation completed",
		zap.String("intentID", intent.ID),
		zap.Int("ranked", len(result.Ranking.RankedSolutions)),
		zap.Int("rejected", len(result.Rejections)),
	)

	return result, nil
}

func (s *EngineService) resolveReputations(
	ctx context.Context,
	solutions []*models.Solution,
	supplied map[string]float64,
) map[string]float64 {

	var missing []string
	for _, sol := range solutions {
		if _, ok := supplied[sol.SolverAddress]; !ok {
			missing = append(missing, sol.SolverAddress)
		}
	}

	reputations := make(map[string]float64, len(solutions))
	for addr, score := range supplied {
		reputations[addr] = score
	}
	for addr, score := range reputation.Fetch(ctx, s.reps, missing) {
		reputations[addr] = score
	}
	return reputations
}

func (s *EngineService) persist(ctx context.Context, result *engine.EvaluationResult) error {
	evaluationID := uuid.New().String()

	resultJSON, err := json.Marshal(result.Ranking)
	if err != nil {
		return fmt.Errorf("failed to serialize ranking: %w", err)
	}

	record := &models.RankingRecord{
		EvaluationID:    evaluationID,
		IntentID:        result.IntentID,
		TotalSolutions:  result.Ranking.Metadata.TotalSolutions,
		RankedCount:     len(result.Ranking.RankedSolutions),
		RejectedCount:   len(result.Rejections),
		AverageScore:    result.Ranking.Metadata.AverageScore,
		Strategy:        result.Ranking.Metadata.Strategy,
		StrategyVersion: result.Ranking.Metadata.StrategyVersion,
		ResultJSON:      string(resultJSON),
		RankedAt:        result.Ranking.RankedAt,
		ExpiresAt:       result.Ranking.ExpiresAt,
	}
	if result.Ranking.BestSolution != nil {
		record.BestSolutionID = result.Ranking.BestSolution.SolutionID
	}

	if err := s.repo.CreateRanking(ctx, record); err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}

	rejections := make([]*models.RejectionRecord, 0, len(result.Rejections))
	for _, rej := range result.Rejections {
		errorsJSON, err := json.Marshal(rej.Errors)
		if err != nil {
			return fmt.Errorf("failed to serialize rejection errors: %w", err)
		}
		rejections = append(rejections, &models.RejectionRecord{
			EvaluationID:  evaluationID,
			IntentID:      result.IntentID,
			SolutionID:    rej.SolutionID,
			SolverAddress: rej.SolverAddress,
			FailureReason: rej.FailureReason,
			ErrorsJSON:    string(errorsJSON),
		})
	}
	if err := s.repo.CreateRejections(ctx, rejections); err != nil {
		return fmt.Errorf("failed to save rejection ledger: %w", err)
	}

	return nil
}

// GetRanking retrieves the persisted ranking for an intent.
func (s *EngineService) GetRanking(ctx context.Context, intentID string) (*models.RankingResult, error) {
	record, err := s.repo.GetRankingByIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	var result models.RankingResult
	if err := json.Unmarshal([]byte(record.ResultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored ranking: %w", err)
	}
	return &result, nil
}

// GetRejections retrieves an intent's rejection ledger.
func (s *EngineService) GetRejections(ctx context.Context, intentID string) ([]*models.RejectionRecord, error) {
	return s.repo.GetRejectionsByIntent(ctx, intentID)
}

// GetStats retrieves service statistics.
func (s *EngineService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.GetStats(ctx)
}

// HealthCheck performs health checks on all components.
func (s *EngineService) HealthCheck(ctx context.Context) map[string]bool {
	health := make(map[string]bool)

	if err := s.reps.HealthCheck(ctx); err != nil {
		logger.Error("Reputation source health check failed", zap.Error(err))
		health["reputation_source"] = false
	} else {
		health["reputation_source"] = true
	}

	if _, err := s.repo.GetStats(ctx); err != nil {
		logger.Error("Repository health check failed", zap.Error(err))
		health["repository"] = false
	} else {
		health["repository"] = true
	}

	return health
}
