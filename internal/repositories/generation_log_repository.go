package repositories

import (
	"context"

	"gorm.io/gorm"

	"tripgen/internal/models/db_models"
)

type GenerationLogRepositoryInterface interface {
	CreateGenerationLog(ctx context.Context, log *db_models.GenerationLog) error
	ListGenerationLogs(ctx context.Context, page, pageSize int) ([]db_models.GenerationLog, error)
}

type GenerationLogRepository struct {
	db *gorm.DB
}

func NewGenerationLogRepository(db *gorm.DB) *GenerationLogRepository {
	return &GenerationLogRepository{db: db}
}

func (r *GenerationLogRepository) CreateGenerationLog(ctx context.Context, log *db_models.GenerationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GenerationLogRepository) ListGenerationLogs(ctx context.Context, page, pageSize int) ([]db_models.GenerationLog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var logs []db_models.GenerationLog
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// NoopGenerationLogRepository is used when no database is configured.
type NoopGenerationLogRepository struct{}

func (NoopGenerationLogRepository) CreateGenerationLog(ctx context.Context, log *db_models.GenerationLog) error {
	return nil
}

func (NoopGenerationLogRepository) ListGenerationLogs(ctx context.Context, page, pageSize int) ([]db_models.GenerationLog, error) {
	return []db_models.GenerationLog{}, nil
}
