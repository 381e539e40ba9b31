//go:generate mockery --name DeckService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"

	"github.com/google/uuid"
)

// DeckService は学習セッションの唯一の持ち主。
// デッキの読み込み・採点・1枚の作り直し・リセットを受け付ける。
type DeckService interface {
	LoadDeck(ctx context.Context, req *model.LoadDeckRequest) (*model.DeckState, error)
	MarkCurrent(ctx context.Context, isCorrect bool) (*model.DeckState, error)
	RegenerateCurrent(ctx context.Context) (*model.DeckState, error)
	Reset(ctx context.Context) *model.DeckState
	State() *model.DeckState
	Restore(ctx context.Context) error
}

// SnapshotStore はセッションのスナップショットの保存先。
// 保存が無い・壊れている場合 LoadSnapshot は (nil, nil) を返す。
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (*model.SnapshotPayload, error)
	SaveSnapshot(ctx context.Context, payload *model.SnapshotPayload) error
}

// DeckStore は DeckService の実装。
// mu は生成APIの呼び出し中には保持しない。
type DeckStore struct {
	mu        sync.Mutex
	session   model.Session
	loadSeq   uint64 // LoadDeck/Reset のたびに増える。古い LoadDeck の結果を捨てるのに使う
	generator GenerationService
	snapshots SnapshotStore // nil なら保存しない
	format    string
}

var _ DeckService = (*DeckStore)(nil)

func NewDeckStore(generator GenerationService, snapshots SnapshotStore) *DeckStore {
	return &DeckStore{
		session:   model.NewSession(),
		generator: generator,
		snapshots: snapshots,
		format:    DefaultFormat,
	}
}

func (s *DeckStore) State() *model.DeckState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.View()
}

// Restore は起動時に保存済みのセッションを読み込む。保存が無ければ空のまま
func (s *DeckStore) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	logger := middleware.GetLogger(ctx)

	payload, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		logger.Error("Failed to load saved session, starting empty", "error", err)
		return err
	}
	if payload == nil {
		logger.Info("No saved session found")
		return nil
	}

	cards := make([]model.Card, len(payload.Cards))
	for i, c := range payload.Cards {
		c.Box = c.Box.Normalize()
		cards[i] = c
	}
	if !hasUniqueIDs(cards) {
		logger.Warn("Saved cards have missing or duplicate ids, renumbering")
		for i := range cards {
			cards[i].ID = i + 1
		}
	}
	current := payload.Current
	if current < 0 || current >= len(cards) {
		current = 0
	}
	deckID := payload.ParsedDeckID()
	if deckID == uuid.Nil && len(cards) > 0 {
		deckID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = model.Session{
		DeckID:    deckID,
		Cards:     cards,
		Current:   current,
		LastTopic: payload.LastTopic,
		Level:     payload.Level.OrDefault(),
	}
	logger.Info("Restored saved session", "cards", len(cards), "current", current, "last_topic", payload.LastTopic)
	return nil
}

// LoadDeck は新しいデッキを生成して丸ごと差し替える。
// 失敗時は既存のデッキに触れない。待っている間に別の LoadDeck/Reset があれば結果を捨てる。
func (s *DeckStore) LoadDeck(ctx context.Context, req *model.LoadDeckRequest) (*model.DeckState, error) {
	topic := strings.TrimSpace(req.Topic)
	level := req.Level.OrDefault()
	logger := middleware.GetLogger(ctx).With("topic", topic, "count", req.Count, "level", level)

	s.mu.Lock()
	if topic == "" {
		err := model.NewAppError("VALIDATION_ERROR", "Enter a topic first.", "topic", model.ErrEmptyTopic)
		s.session.Error = model.UserMessage(err)
		state := s.session.View()
		s.mu.Unlock()
		logger.Warn("Rejected deck load with blank topic")
		return state, err
	}
	s.loadSeq++
	ticket := s.loadSeq
	s.session.Loading = true
	s.session.Error = ""
	s.mu.Unlock()

	cards, genErr := s.generator.GenerateCards(ctx, &model.GenerateRequest{
		Topic:  topic,
		N:      req.Count,
		Level:  level,
		Format: s.format,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.loadSeq {
		// Loading と Error は新しい操作のものなので触らない。結果は呼び出し元にだけ返す
		logger.Warn("Discarding deck load superseded by a newer request", "error", genErr)
		return s.session.View(), model.NewAppError("SUPERSEDED", "A newer deck request replaced this one.", "", model.ErrSuperseded)
	}
	s.session.Loading = false

	if genErr != nil {
		s.session.Error = model.UserMessage(genErr)
		logger.Error("Failed to load deck, keeping previous deck", "error", genErr)
		return s.session.View(), genErr
	}

	deck := make([]model.Card, len(cards))
	for i, c := range cards {
		c.ID = i + 1
		c.Box = model.Box1
		deck[i] = c
	}
	s.session = model.Session{
		DeckID:    uuid.New(),
		Cards:     deck,
		Current:   0,
		LastTopic: topic,
		Level:     level,
	}
	s.persistLocked(ctx)

	logger.Info("Loaded new deck", "deck_id", s.session.DeckID, "cards", len(deck))
	return s.session.View(), nil
}

// MarkCurrent は表示中のカードを採点し、次のカードへ進める
func (s *DeckStore) MarkCurrent(ctx context.Context, isCorrect bool) (*model.DeckState, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.session.Cards) == 0 {
		err := emptyDeckError()
		s.session.Error = model.UserMessage(err)
		return s.session.View(), err
	}

	idx := s.session.Current
	card := &s.session.Cards[idx]
	before := card.Box
	if isCorrect {
		card.Box = card.Box.OnCorrect()
	} else {
		card.Box = card.Box.OnIncorrect()
	}
	s.session.Current = NextCardIndex(s.session.Cards, idx)
	s.persistLocked(ctx)

	logger.Debug("Marked card",
		"card_id", card.ID,
		"is_correct", isCorrect,
		"box_before", before,
		"box_after", card.Box,
		"next_index", s.session.Current,
	)
	return s.session.View(), nil
}

// RegenerateCurrent は表示中のカードを作り直す。id は保持し、箱は Box1 に戻す。
// 待っている間にデッキが差し替わった場合は結果を捨てる。
func (s *DeckStore) RegenerateCurrent(ctx context.Context) (*model.DeckState, error) {
	s.mu.Lock()
	if len(s.session.Cards) == 0 {
		err := emptyDeckError()
		s.session.Error = model.UserMessage(err)
		state := s.session.View()
		s.mu.Unlock()
		return state, err
	}
	targetIdx := s.session.Current
	target := s.session.Cards[targetIdx]
	deckID := s.session.DeckID
	req := &model.RegenerateRequest{
		Topic:  firstNonBlank(s.session.LastTopic, target.Tag, model.DefaultTag),
		Level:  s.session.Level,
		Format: s.format,
		Tag:    firstNonBlank(target.Tag, s.session.LastTopic, model.DefaultTag),
	}
	s.mu.Unlock()

	logger := middleware.GetLogger(ctx).With("card_id", target.ID, "deck_id", deckID)

	content, genErr := s.generator.RegenerateCard(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.DeckID != deckID {
		// 差し替え後のデッキには関係ないので Error は付けない
		logger.Warn("Discarding regenerated card, deck was replaced", "error", genErr)
		return s.session.View(), model.NewAppError("SUPERSEDED", "The deck changed while regenerating.", "", model.ErrSuperseded)
	}
	if genErr != nil {
		s.session.Error = model.UserMessage(genErr)
		logger.Error("Failed to regenerate card, keeping it unchanged", "error", genErr)
		return s.session.View(), genErr
	}

	idx := targetIdx
	if idx >= len(s.session.Cards) || s.session.Cards[idx].ID != target.ID {
		idx = indexOfCard(s.session.Cards, target.ID)
	}
	if idx < 0 {
		logger.Warn("Regenerated card no longer in deck")
		return s.session.View(), model.NewAppError("SUPERSEDED", "The card was removed while regenerating.", "", model.ErrSuperseded)
	}
	content = content.Truncated()
	card := &s.session.Cards[idx]
	card.Q = content.Q
	card.A = content.A
	card.Hint = content.Hint
	card.Tag = content.Tag
	card.Box = card.Box.OnRegenerate()
	s.persistLocked(ctx)

	logger.Info("Regenerated card")
	return s.session.View(), nil
}

// Reset はデッキを空にする。直前のトピックと難易度は残す
func (s *DeckStore) Reset(ctx context.Context) *model.DeckState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSeq++
	s.session.DeckID = uuid.Nil
	s.session.Cards = []model.Card{}
	s.session.Current = 0
	s.session.Error = ""
	s.session.Loading = false
	s.persistLocked(ctx)

	middleware.GetLogger(ctx).Info("Deck reset")
	return s.session.View()
}

// persistLocked は現在のセッションを保存する。mu を保持して呼ぶこと。
// 保存の失敗はログに残すだけで、メモリ上の変更は取り消さない。
func (s *DeckStore) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveSnapshot(context.WithoutCancel(ctx), s.session.Snapshot()); err != nil {
		middleware.GetLogger(ctx).Error("Failed to persist session snapshot", "error", err)
	}
}

func emptyDeckError() error {
	return model.NewAppError("EMPTY_DECK", "There are no cards yet. Generate a deck first.", "", model.ErrEmptyDeck)
}

func indexOfCard(cards []model.Card, id int) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// hasUniqueIDs は全カードが正のIDを持ち、重複が無いかどうか
func hasUniqueIDs(cards []model.Card) bool {
	seen := make(map[int]struct{}, len(cards))
	for _, c := range cards {
		if c.ID <= 0 {
			return false
		}
		if _, dup := seen[c.ID]; dup {
			return false
		}
		seen[c.ID] = struct{}{}
	}
	return true
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsSuperseded は結果が新しい操作に置き換えられて捨てられたかどうか
func IsSuperseded(err error) bool {
	return errors.Is(err, model.ErrSuperseded)
}
