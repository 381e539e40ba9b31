// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")

	// デッキ操作のエラー
	ErrEmptyTopic  = errors.New("topic is empty")                      // 上流を呼ぶ前に弾く
	ErrEmptyDeck   = errors.New("deck is empty")                       // カードが無いのに採点・再生成しようとした
	ErrUpstream    = errors.New("upstream generation failed")          // 到達不可・失敗ステータス・形の不一致
	ErrParse       = errors.New("upstream returned unparseable JSON")  // コードフェンス除去後もJSONでない
	ErrSuperseded  = errors.New("request superseded by a newer change") // 待っている間にデッキが差し替わった
	ErrUnavailable = errors.New("generation service not configured")
)

// ErrorDetail はクライアントに返すエラー内容
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError は番兵エラーにクライアント向けの詳細を付けたもの。
// errors.Is は Err を辿って判定できる。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// UserMessage は画面に表示する一行のエラーメッセージを返す
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Detail.Message != "" {
		return appErr.Detail.Message
	}
	return err.Error()
}
