//go:generate mockery --name SnapshotRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository はセッションのスナップショットを固定キーで読み書きする
type SnapshotRepository interface {
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*model.Snapshot, error)
	Save(ctx context.Context, db *gorm.DB, snapshot *model.Snapshot) error
}

type gormSnapshotRepository struct{}

func NewGormSnapshotRepository() SnapshotRepository {
	return &gormSnapshotRepository{}
}

func (r *gormSnapshotRepository) FindByKey(ctx context.Context, db *gorm.DB, key string) (*model.Snapshot, error) {
	logger := middleware.GetLogger(ctx)
	var snapshot model.Snapshot
	result := db.WithContext(ctx).Where(&model.Snapshot{Key: key}).First(&snapshot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding snapshot by key in DB", "error", result.Error, "key", key)
		return nil, fmt.Errorf("gormSnapshotRepository.FindByKey: %w", result.Error)
	}
	return &snapshot, nil
}

// Save は同じキーのレコードがあれば上書きする (upsert)
func (r *gormSnapshotRepository) Save(ctx context.Context, db *gorm.DB, snapshot *model.Snapshot) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(snapshot)
	if result.Error != nil {
		logger.Error("Error saving snapshot in DB", "error", result.Error, "key", snapshot.Key)
		return fmt.Errorf("gormSnapshotRepository.Save: %w", result.Error)
	}
	return nil
}
