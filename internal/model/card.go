// internal/model/card.go
package model

import (
	"strings"
	"unicode/utf8"
)

// Box はLeitner方式の箱番号 (1=ほぼ覚えていない, 5=よく覚えている)
type Box int

const (
	Box1 Box = iota + 1 // 1
	Box2                // 2
	Box3                // 3
	Box4                // 4
	Box5                // 5
)

const (
	MinBox = Box1
	MaxBox = Box5
)

func (b Box) IsValid() bool {
	return b >= MinBox && b <= MaxBox
}

// Normalize は範囲外の値をBox1として扱う
func (b Box) Normalize() Box {
	if !b.IsValid() {
		return Box1
	}
	return b
}

// OnCorrect は正解時の遷移。1つ上の箱へ (Box5で頭打ち)
func (b Box) OnCorrect() Box {
	b = b.Normalize()
	if b == MaxBox {
		return MaxBox
	}
	return b + 1
}

// OnIncorrect は不正解時の遷移。必ずBox1へ戻る
func (b Box) OnIncorrect() Box {
	return Box1
}

// OnRegenerate は再生成時の遷移。内容が変わるので未習得扱いに戻す
func (b Box) OnRegenerate() Box {
	return Box1
}

// フィールドごとの最大文字数 (rune数)
const (
	MaxQuestionLen = 160
	MaxAnswerLen   = 400
	MaxHintLen     = 120
	MaxTagLen      = 40
)

const DefaultTag = "general"

// Card はデッキ内の1枚のフラッシュカード
type Card struct {
	ID   int    `json:"id"`
	Q    string `json:"q"`
	A    string `json:"a"`
	Hint string `json:"hint"`
	Tag  string `json:"tag"`
	Box  Box    `json:"box"`
}

// CardContent は生成サービスが返すカードの中身 (IDと箱は持たない)
type CardContent struct {
	Q    string `json:"q"`
	A    string `json:"a"`
	Hint string `json:"hint"`
	Tag  string `json:"tag"`
}

// Content はカードの中身だけを取り出す
func (c Card) Content() CardContent {
	return CardContent{Q: c.Q, A: c.A, Hint: c.Hint, Tag: c.Tag}
}

// Truncated は各フィールドを最大文字数に切り詰めたコピーを返す
func (c CardContent) Truncated() CardContent {
	return CardContent{
		Q:    Truncate(c.Q, MaxQuestionLen),
		A:    Truncate(c.A, MaxAnswerLen),
		Hint: Truncate(c.Hint, MaxHintLen),
		Tag:  Truncate(c.Tag, MaxTagLen),
	}
}

// Truncate は s を先頭から limit 文字 (rune) に切り詰める
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// Level は出題の難易度
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

const DefaultLevel = LevelBeginner

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// OrDefault は空文字ならデフォルトの難易度を返す
func (l Level) OrDefault() Level {
	if l == "" {
		return DefaultLevel
	}
	return l
}

// ClampCount は要求枚数を [lo, hi] に収める
func ClampCount(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
