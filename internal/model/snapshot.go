// internal/model/snapshot.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

// Snapshot は固定キーで保存されるセッションのスナップショット (1レコード)
type Snapshot struct {
	Key       string         `gorm:"type:varchar(100);primaryKey"`
	Data      datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Snapshot) TableName() string {
	return "deck_snapshots"
}

// SnapshotPayload は Snapshot.Data に入るJSONの形
// {cards, current, lastTopic, level} に加えて deckId を書き出す
type SnapshotPayload struct {
	Cards     []Card `json:"cards"`
	Current   int    `json:"current"`
	LastTopic string `json:"lastTopic"`
	Level     Level  `json:"level"`
	DeckID    string `json:"deckId,omitempty"`
}

// ParsedDeckID は deckId を解釈する。無い・壊れている場合は uuid.Nil
func (p *SnapshotPayload) ParsedDeckID() uuid.UUID {
	id, err := uuid.Parse(p.DeckID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// DecodeSnapshot は保存済みJSONを寛容に読み込む。
// JSONでない・オブジェクトでない・cards が配列でない場合は「保存なし」(ok=false)。
// 未知のフィールドは無視し、欠けた項目はデフォルト値 (current=0, lastTopic="", level="beginner") にする。
func DecodeSnapshot(data []byte) (*SnapshotPayload, bool) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil, false
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, false
	}

	cardsRes := root.Get("cards")
	if !cardsRes.IsArray() {
		return nil, false
	}
	// 要素ごとに読み、型の違うフィールドがあってもデッキ全体は捨てない
	cards := []Card{}
	cardsRes.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			cards = append(cards, decodeCard(item))
		}
		return true
	})

	p := &SnapshotPayload{
		Cards: cards,
		Level: DefaultLevel,
	}
	// current は整数のときだけ採用
	if cur := root.Get("current"); cur.Type == gjson.Number && cur.Num == float64(cur.Int()) {
		p.Current = int(cur.Int())
	}
	if topic := root.Get("lastTopic"); topic.Type == gjson.String {
		p.LastTopic = topic.Str
	}
	if level := root.Get("level"); level.Type == gjson.String && level.Str != "" {
		p.Level = Level(level.Str)
	}
	if id := root.Get("deckId"); id.Type == gjson.String {
		p.DeckID = id.Str
	}
	return p, true
}

// decodeCard は保存済みのカード1枚を読む。
// 数値の id/box は文字列でも受け付け、読めなければ 0 (Restore で正規化される)。
func decodeCard(item gjson.Result) Card {
	return Card{
		ID:   int(item.Get("id").Int()),
		Q:    scalarString(item.Get("q")),
		A:    scalarString(item.Get("a")),
		Hint: scalarString(item.Get("hint")),
		Tag:  scalarString(item.Get("tag")),
		Box:  Box(item.Get("box").Int()),
	}
}

// scalarString は文字列・数値・真偽値をそのまま文字列にする。null やオブジェクトは ""
func scalarString(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String()
	}
	return ""
}
