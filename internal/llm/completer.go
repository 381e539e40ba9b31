// internal/llm/completer.go
package llm

import "context"

// ChatRequest は1往復分のチャット補完リクエスト
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
	// Fallback は応答に choices が1件も無かったときに返す本文
	Fallback string
}

// Completer はチャット補完APIを呼び出して、最初の choice の本文を返す
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
