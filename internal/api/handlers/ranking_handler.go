package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/intent-protocol/engine-service/internal/engine"
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
	"github.com/yourusername/intent-protocol/engine-service/internal/service"
	"github.com/yourusername/intent-protocol/engine-service/pkg/logger"
	"go.uber.org/zap"
)

// RankingHandler handles evaluation and ranking API requests.
type RankingHandler struct {
	service *service.EngineService
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(service *service.EngineService) *RankingHandler {
	return &RankingHandler{
		service: service,
	}
}

// EvaluateRequest carries one intent's closed auction round: the intent,
// its final solution set, and optional caller-supplied reputations.
type EvaluateRequest struct {
	Intent      *models.Intent     `json:"intent" binding:"required"`
	Solutions   []*models.Solution `json:"solutions"`
	Reputations map[string]float64 `json:"reputations"`
}

// EvaluateResponse is the evaluation outcome. RankedSolutions is capped
// to the intent's show_top_n preference; the best solution always refers
// to rank 1 regardless of the cap.
type EvaluateResponse struct {
	IntentID         string                  `json:"intent_id"`
	IntentValidation models.ValidationResult `json:"intent_validation"`
	Classification   *models.Classification  `json:"classification,omitempty"`
	Ranking          *models.RankingResult   `json:"ranking,omitempty"`
	Rejections       []models.Rejection      `json:"rejections,omitempty"`
}

// Evaluate runs one intent evaluation
// @Summary Evaluate an intent's solutions
// @Description Validate, classify, score, and rank the submitted solutions for one intent
// @Tags rankings
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "Intent with its final solution set"
// @Success 200 {object} EvaluateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} EvaluateResponse
// @Router /api/v1/rankings/evaluate [post]
func (h *RankingHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	result, err := h.service.Evaluate(c.Request.Context(), req.Intent, req.Solutions, req.Reputations)
	if err != nil {
		logger.Error("Evaluation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Evaluation failed",
			Message: err.Error(),
		})
		return
	}

	status := http.StatusOK
	if !result.IntentValidation.Valid {
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, buildEvaluateResponse(req.Intent, result))
}

// buildEvaluateResponse applies the intent's show_top_n display cap. The
// full list stays persisted; only the response view is trimmed.
func buildEvaluateResponse(intent *models.Intent, result *engine.EvaluationResult) EvaluateResponse {
	resp := EvaluateResponse{
		IntentID:         result.IntentID,
		IntentValidation: result.IntentValidation,
		Classification:   result.Classification,
		Ranking:          result.Ranking,
		Rejections:       result.Rejections,
	}

	topN := intent.Preferences.Execution.ShowTopN
	if resp.Ranking != nil && topN > 0 && len(resp.Ranking.RankedSolutions) > topN {
		trimmed := *resp.Ranking
		trimmed.RankedSolutions = trimmed.RankedSolutions[:topN]
		resp.Ranking = &trimmed
	}
	return resp
}

// GetRanking retrieves a persisted ranking
// @Summary Get ranking
// @Description Get the persisted ranking result for an intent
// @Tags rankings
// @Accept json
// @Produce json
// @Param intent_id path string true "Intent ID"
// @Success 200 {object} models.RankingResult
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/rankings/{intent_id} [get]
func (h *RankingHandler) GetRanking(c *gin.Context) {
	intentID := c.Param("intent_id")

	result, err := h.service.GetRanking(c.Request.Context(), intentID)
	if err != nil {
		logger.Error("Failed to get ranking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to retrieve ranking",
			Message: err.Error(),
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Ranking not found",
			Message: "No ranking exists for this intent",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRejections retrieves an intent's rejection ledger
// @Summary Get rejection ledger
// @Description List solutions excluded before scoring, with reasons, so solvers can audit why they lost
// @Tags rankings
// @Accept json
// @Produce json
// @Param intent_id path string true "Intent ID"
// @Success 200 {array} RejectionResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/rankings/{intent_id}/rejections [get]
func (h *RankingHandler) GetRejections(c *gin.Context) {
	intentID := c.Param("intent_id")

	records, err := h.service.GetRejections(c.Request.Context(), intentID)
	if err != nil {
		logger.Error("Failed to get rejections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to retrieve rejection ledger",
			Message: err.Error(),
		})
		return
	}

	response := make([]RejectionResponse, len(records))
	for i, rec := range records {
		response[i] = RejectionResponse{
			SolutionID:    rec.SolutionID,
			SolverAddress: rec.SolverAddress,
			FailureReason: rec.FailureReason,
			Errors:        rec.ErrorsJSON,
			RecordedAt:    rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetStats retrieves engine service statistics
// @Summary Get service statistics
// @Description Get aggregate statistics about evaluations
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/stats [get]
func (h *RankingHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to retrieve statistics",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck performs health checks
// @Summary Health check
// @Description Check health of all engine components
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *RankingHandler) HealthCheck(c *gin.Context) {
	health := h.service.HealthCheck(c.Request.Context())

	allHealthy := true
	for _, v := range health {
		if !v {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:     map[bool]string{true: "healthy", false: "unhealthy"}[allHealthy],
		Components: health,
	})
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RejectionResponse struct {
	SolutionID    string `json:"solution_id"`
	SolverAddress string `json:"solver_address"`
	FailureReason string `json:"failure_reason"`
	Errors        string `json:"errors,omitempty"`
	RecordedAt    string `json:"recorded_at"`
}

type StatsResponse struct {
	TotalRankings   int64   `json:"total_rankings"`
	AverageScore    float64 `json:"average_score"`
	TotalRejections int64   `json:"total_rejections"`
	EmptyRounds     int64   `json:"empty_rounds"`
}

type HealthResponse struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
}
