// internal/llm/prompt.go
package llm

import "fmt"

const deckSystemPrompt = `You are an expert tutor. Generate concise flashcards.
Return STRICT JSON: an array of objects with keys: q, a, hint, tag.
- q: question (max 18 words)
- a: answer (1–2 sentences)
- hint: short nudge
- tag: subtopic
Audience level: %s. Format: %s.`

const deckUserPrompt = `Topic: %s
Cards: %d
Constraints:
- Avoid fluff, be accurate.
- Use varied subtopics.
- Prefer concrete examples.
- Never include code fences or commentary, ONLY raw JSON array.`

const regenerateSystemPrompt = `You are an expert tutor. Regenerate ONE concise flashcard as a JSON object with keys: q, a, hint, tag.
- q: question (max 18 words)
- a: answer (1–2 sentences)
- hint: short nudge
- tag: subtopic (may reuse provided tag)
Audience level: %s. Format: %s.`

const regenerateUserPrompt = `Topic: %s
Regenerate ONE card for subtopic/tag: %s.
Constraints:
- Avoid fluff, be accurate.
- Prefer a different angle than before.
- Return ONLY a single JSON object, no code fences.`

// DeckPrompt はデッキ一括生成用のプロンプトを組み立てる
func DeckPrompt(topic string, n int, level, format string, temperature float32) ChatRequest {
	return ChatRequest{
		System:      fmt.Sprintf(deckSystemPrompt, level, format),
		User:        fmt.Sprintf(deckUserPrompt, topic, n),
		Temperature: temperature,
		Fallback:    "[]",
	}
}

// RegeneratePrompt は1枚再生成用のプロンプトを組み立てる
func RegeneratePrompt(topic, tag, level, format string, temperature float32) ChatRequest {
	return ChatRequest{
		System:      fmt.Sprintf(regenerateSystemPrompt, level, format),
		User:        fmt.Sprintf(regenerateUserPrompt, topic, tag),
		Temperature: temperature,
		Fallback:    "{}",
	}
}
