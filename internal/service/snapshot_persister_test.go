package service_test

import (
	"context"
	"errors"
	"testing"

	"ai_flashcards/internal/model"
	"ai_flashcards/internal/repository"
	repomocks "ai_flashcards/internal/repository/mocks"
	"ai_flashcards/internal/service"
	"ai_flashcards/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSnapshotPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	p := service.NewSnapshotPersister(db, repository.NewGormSnapshotRepository(), "flashcards-v1")

	got, err := p.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "保存が無ければ nil")

	want := &model.SnapshotPayload{
		Cards:     []model.Card{{ID: 1, Q: "Q", A: "A", Hint: "H", Tag: "T", Box: model.Box2}},
		Current:   0,
		LastTopic: "Go",
		Level:     model.LevelAdvanced,
		DeckID:    uuid.NewString(),
	}
	require.NoError(t, p.SaveSnapshot(ctx, want))

	got, err = p.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// 保存形式は {cards, current, lastTopic, level}
	var snap model.Snapshot
	require.NoError(t, db.Where(&model.Snapshot{Key: "flashcards-v1"}).First(&snap).Error)
	assert.Contains(t, string(snap.Data), `"lastTopic":"Go"`)
	assert.Contains(t, string(snap.Data), `"current":0`)
}

func TestSnapshotPersister_MalformedIsIgnored(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormSnapshotRepository()
	require.NoError(t, repo.Save(ctx, db, &model.Snapshot{Key: "flashcards-v1", Data: datatypes.JSON(`{"cards":"nope"}`)}))

	p := service.NewSnapshotPersister(db, repo, "flashcards-v1")
	got, err := p.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotPersister_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewSnapshotRepository(t)
	repo.On("FindByKey", ctx, mock.Anything, "k").Return(nil, errors.New("connection refused")).Once()
	repo.On("Save", ctx, mock.Anything, mock.AnythingOfType("*model.Snapshot")).Return(errors.New("read only")).Once()

	p := service.NewSnapshotPersister(nil, repo, "k")

	_, err := p.LoadSnapshot(ctx)
	assert.Error(t, err)
	assert.Error(t, p.SaveSnapshot(ctx, &model.SnapshotPayload{Cards: []model.Card{}}))
}

// DeckStore と SQLite を繋いで、再起動後に同じセッションが戻ることを確認する
func TestDeckStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormSnapshotRepository()

	gen := mocks.NewGenerationService(t)
	gen.On("GenerateCards", mock.Anything, mock.Anything).
		Return([]model.Card{{Q: "Q1", Tag: "a"}, {Q: "Q2", Tag: "b"}, {Q: "Q3", Tag: "c"}}, nil).Once()

	first := service.NewDeckStore(gen, service.NewSnapshotPersister(db, repo, "flashcards-v1"))
	_, err := first.LoadDeck(ctx, &model.LoadDeckRequest{Topic: "Go", Count: 4, Level: model.LevelIntermediate})
	require.NoError(t, err)
	before, err := first.MarkCurrent(ctx, true)
	require.NoError(t, err)

	second := service.NewDeckStore(gen, service.NewSnapshotPersister(db, repo, "flashcards-v1"))
	require.NoError(t, second.Restore(ctx))
	after := second.State()

	assert.Equal(t, before.Cards, after.Cards)
	assert.Equal(t, before.Current, after.Current)
	assert.Equal(t, before.DeckID, after.DeckID)
	assert.Equal(t, "Go", after.LastTopic)
	assert.Equal(t, model.LevelIntermediate, after.Level)
}
