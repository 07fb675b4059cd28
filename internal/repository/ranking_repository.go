package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
	"gorm.io/gorm"
)

// RankingRepository handles database operations for ranking outcomes and
// the rejection ledger.
type RankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository creates a new ranking repository.
func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

// CreateRanking persists a ranking record.
func (r *RankingRepository) CreateRanking(ctx context.Context, record *models.RankingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetRankingByIntent retrieves the latest ranking for an intent.
func (r *RankingRepository) GetRankingByIntent(ctx context.Context, intentID string) (*models.RankingRecord, error) {
	var record models.RankingRecord
	err := r.db.WithContext(ctx).
		Where("intent_id = ?", intentID).
		Order("ranked_at DESC").
		First(&record).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}

	return &record, nil
}

// CreateRejections persists a batch of rejection ledger entries.
func (r *RankingRepository) CreateRejections(ctx context.Context, records []*models.RejectionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(records).Error
}

// GetRejectionsByIntent retrieves the rejection ledger for an intent.
func (r *RankingRepository) GetRejectionsByIntent(ctx context.Context, intentID string) ([]*models.RejectionRecord, error) {
	var records []*models.RejectionRecord
	err := r.db.WithContext(ctx).
		Where("intent_id = ?", intentID).
		Order("created_at ASC").
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get rejections: %w", err)
	}

	return records, nil
}

// GetRejectionsBySolver retrieves a solver's rejections so it can audit
// why it lost.
func (r *RankingRepository) GetRejectionsBySolver(ctx context.Context, solverAddress string, limit int) ([]*models.RejectionRecord, error) {
	var records []*models.RejectionRecord
	err := r.db.WithContext(ctx).
		Where("solver_address = ?", solverAddress).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get solver rejections: %w", err)
	}

	return records, nil
}

// GetStats retrieves aggregate evaluation statistics.
func (r *RankingRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalRankings int64
	if err := r.db.WithContext(ctx).Model(&models.RankingRecord{}).Count(&totalRankings).Error; err != nil {
		return nil, err
	}
	stats["total_rankings"] = totalRankings

	// Average score across rankings (COALESCE handles the empty table)
	var avgScore sql.NullFloat64
	if err := r.db.WithContext(ctx).Model(&models.RankingRecord{}).Select("COALESCE(AVG(average_score), 0)").Scan(&avgScore).Error; err != nil {
		return nil, err
	}
	if avgScore.Valid {
		stats["average_score"] = avgScore.Float64
	} else {
		stats["average_score"] = 0.0
	}

	var totalRejections int64
	if err := r.db.WithContext(ctx).Model(&models.RejectionRecord{}).Count(&totalRejections).Error; err != nil {
		return nil, err
	}
	stats["total_rejections"] = totalRejections

	var emptyRounds int64
	if err := r.db.WithContext(ctx).Model(&models.RankingRecord{}).Where("ranked_count = ?", 0).Count(&emptyRounds).Error; err != nil {
		return nil, err
	}
	stats["empty_rounds"] = emptyRounds

	return stats, nil
}
