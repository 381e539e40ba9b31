// internal/llm/sanitize.go
package llm

import (
	"fmt"
	"strings"

	"ai_flashcards/internal/model"

	"github.com/tidwall/gjson"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// parseLenient は raw をJSONとして解釈する。
// そのままでは壊れている場合はコードフェンスを取り除いてもう一度試す。
func parseLenient(raw string) (gjson.Result, error) {
	if gjson.Valid(raw) {
		return gjson.Parse(raw), nil
	}
	cleaned := strings.TrimSpace(fenceReplacer.Replace(raw))
	if gjson.Valid(cleaned) {
		return gjson.Parse(cleaned), nil
	}
	return gjson.Result{}, fmt.Errorf("%w: %q", model.ErrParse, model.Truncate(raw, 80))
}

// stringField は JS の String(v ?? "") 相当。null/欠落は空文字、数値などはそのままの表記
func stringField(obj gjson.Result, key string) string {
	v := obj.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// contentFrom は1件分のオブジェクトからカードの中身を取り出し、長さを切り詰める
func contentFrom(obj gjson.Result, fallbackTag string) model.CardContent {
	tag := fallbackTag
	if t := obj.Get("tag"); t.Exists() && t.Type != gjson.Null {
		tag = t.String()
	}
	return model.CardContent{
		Q:    stringField(obj, "q"),
		A:    stringField(obj, "a"),
		Hint: stringField(obj, "hint"),
		Tag:  tag,
	}.Truncated()
}

// ParseCardList はデッキ生成の応答本文をカード一覧に変換する。
// 先頭 n 件だけを使い、id は 1 からの連番、箱は常に Box1。
func ParseCardList(raw string, n int) ([]model.Card, error) {
	root, err := parseLenient(raw)
	if err != nil {
		return nil, err
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: model did not return an array", model.ErrUpstream)
	}

	items := root.Array()
	if n >= 0 && len(items) > n {
		items = items[:n]
	}

	cards := make([]model.Card, 0, len(items))
	for i, item := range items {
		c := contentFrom(item, model.DefaultTag)
		cards = append(cards, model.Card{
			ID:   i + 1,
			Q:    c.Q,
			A:    c.A,
			Hint: c.Hint,
			Tag:  c.Tag,
			Box:  model.Box1,
		})
	}
	return cards, nil
}

// ParseSingleCard は再生成の応答本文を1枚分の中身に変換する。tag が無ければ fallbackTag
func ParseSingleCard(raw, fallbackTag string) (model.CardContent, error) {
	root, err := parseLenient(raw)
	if err != nil {
		return model.CardContent{}, err
	}
	if !root.IsObject() {
		return model.CardContent{}, fmt.Errorf("%w: model did not return an object", model.ErrUpstream)
	}
	return contentFrom(root, fallbackTag), nil
}
