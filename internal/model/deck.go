// internal/model/deck.go
package model

import "github.com/google/uuid"

// Session は学習中のデッキと表示中のカード位置を表します
type Session struct {
	DeckID    uuid.UUID // ロードごとに採番。再生成中にデッキが差し替わったかの判定に使う
	Cards     []Card
	Current   int // Cards が空でなければ常に有効なインデックス
	LastTopic string
	Level     Level
	Error     string // 直近の失敗メッセージ (表示用)
	Loading   bool
}

// NewSession は起動直後の空のセッションを返す
func NewSession() Session {
	return Session{Level: DefaultLevel}
}

// CurrentCard は表示中のカードを返す。デッキが空なら nil
func (s *Session) CurrentCard() *Card {
	if len(s.Cards) == 0 || s.Current < 0 || s.Current >= len(s.Cards) {
		return nil
	}
	c := s.Cards[s.Current]
	return &c
}

// BoxCounts は箱ごとの枚数 (index 0 が Box1)
func (s *Session) BoxCounts() [5]int {
	var counts [5]int
	for _, c := range s.Cards {
		counts[c.Box.Normalize()-1]++
	}
	return counts
}

// View はセッションのコピーを読み取り用の形で返す
func (s *Session) View() *DeckState {
	cards := make([]Card, len(s.Cards))
	copy(cards, s.Cards)
	return &DeckState{
		DeckID:      s.DeckID,
		Cards:       cards,
		Current:     s.Current,
		CurrentCard: s.CurrentCard(),
		LastTopic:   s.LastTopic,
		Level:       s.Level,
		BoxCounts:   s.BoxCounts(),
		Loading:     s.Loading,
		Error:       s.Error,
	}
}

// Snapshot は永続化する項目だけを取り出す
func (s *Session) Snapshot() *SnapshotPayload {
	cards := make([]Card, len(s.Cards))
	copy(cards, s.Cards)
	p := &SnapshotPayload{
		Cards:     cards,
		Current:   s.Current,
		LastTopic: s.LastTopic,
		Level:     s.Level,
	}
	if s.DeckID != uuid.Nil {
		p.DeckID = s.DeckID.String()
	}
	return p
}

// DeckState はデッキAPIのレスポンスDTO
type DeckState struct {
	DeckID      uuid.UUID `json:"deck_id"`
	Cards       []Card    `json:"cards"`
	Current     int       `json:"current"`
	CurrentCard *Card     `json:"current_card,omitempty"`
	LastTopic   string    `json:"last_topic"`
	Level       Level     `json:"level"`
	BoxCounts   [5]int    `json:"box_counts"`
	Loading     bool      `json:"loading"`
	Error       string    `json:"error,omitempty"`
}
