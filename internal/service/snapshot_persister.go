package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"
	"ai_flashcards/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SnapshotPersister は SnapshotRepository を使って SnapshotStore を実装する
type SnapshotPersister struct {
	db   *gorm.DB
	repo repository.SnapshotRepository
	key  string
}

var _ SnapshotStore = (*SnapshotPersister)(nil)

func NewSnapshotPersister(db *gorm.DB, repo repository.SnapshotRepository, key string) *SnapshotPersister {
	return &SnapshotPersister{db: db, repo: repo, key: key}
}

func (p *SnapshotPersister) LoadSnapshot(ctx context.Context) (*model.SnapshotPayload, error) {
	logger := middleware.GetLogger(ctx).With("key", p.key)

	snapshot, err := p.repo.FindByKey(ctx, p.db, p.key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("SnapshotPersister.LoadSnapshot: %w", err)
	}

	payload, ok := model.DecodeSnapshot(snapshot.Data)
	if !ok {
		logger.Warn("Saved session is malformed, ignoring it")
		return nil, nil
	}
	return payload, nil
}

func (p *SnapshotPersister) SaveSnapshot(ctx context.Context, payload *model.SnapshotPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("SnapshotPersister.SaveSnapshot: %w", err)
	}
	return p.repo.Save(ctx, p.db, &model.Snapshot{
		Key:  p.key,
		Data: datatypes.JSON(data),
	})
}
