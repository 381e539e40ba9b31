// internal/model/generate.go
package model

// GenerateRequest はカード一括生成APIのリクエストDTO
type GenerateRequest struct {
	Topic  string `json:"topic" validate:"required,max=200"`
	N      int    `json:"n" validate:"omitempty,min=1,max=100"`
	Level  Level  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Format string `json:"format" validate:"omitempty,max=20"`
}

// GenerateResponse はカード一括生成APIのレスポンスDTO
type GenerateResponse struct {
	Cards []Card `json:"cards"`
}

// RegenerateRequest は1枚だけ作り直すAPIのリクエストDTO
// topic と tag のどちらかは必須 (サービス層で確認)
type RegenerateRequest struct {
	Topic  string `json:"topic" validate:"max=200"`
	Level  Level  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Format string `json:"format" validate:"omitempty,max=20"`
	Tag    string `json:"tag" validate:"max=100"`
}

// RegenerateResponse は1枚再生成APIのレスポンスDTO
type RegenerateResponse struct {
	Card CardContent `json:"card"`
}

// LoadDeckRequest は新しいデッキを読み込むリクエストDTO
// count は呼び出し側 (ハンドラ) で [min_cards, max_cards] に丸める
type LoadDeckRequest struct {
	Topic string `json:"topic" validate:"required,max=200"`
	Count int    `json:"count"`
	Level Level  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// MarkRequest は表示中カードの採点結果
type MarkRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}
