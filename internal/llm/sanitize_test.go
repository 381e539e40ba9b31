package llm

import (
	"strings"
	"testing"

	"ai_flashcards/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		n       int
		want    []model.Card
		wantErr error
	}{
		{
			name: "正常系: 素のJSON配列",
			raw:  `[{"q":"Q1","a":"A1","hint":"H1","tag":"T1"},{"q":"Q2","a":"A2","hint":"H2","tag":"T2"}]`,
			n:    10,
			want: []model.Card{
				{ID: 1, Q: "Q1", A: "A1", Hint: "H1", Tag: "T1", Box: model.Box1},
				{ID: 2, Q: "Q2", A: "A2", Hint: "H2", Tag: "T2", Box: model.Box1},
			},
		},
		{
			name: "正常系: コードフェンス付き",
			raw:  "```json\n[{\"q\":\"Q1\",\"a\":\"A1\",\"hint\":\"H1\",\"tag\":\"T1\"}]\n```",
			n:    10,
			want: []model.Card{{ID: 1, Q: "Q1", A: "A1", Hint: "H1", Tag: "T1", Box: model.Box1}},
		},
		{
			name: "正常系: n件を超える分は捨てる",
			raw:  `[{"q":"1"},{"q":"2"},{"q":"3"}]`,
			n:    2,
			want: []model.Card{
				{ID: 1, Q: "1", Tag: model.DefaultTag, Box: model.Box1},
				{ID: 2, Q: "2", Tag: model.DefaultTag, Box: model.Box1},
			},
		},
		{
			name: "正常系: 上流のboxやidは無視される",
			raw:  `[{"id":99,"q":"Q","a":"A","hint":"H","tag":"T","box":4}]`,
			n:    10,
			want: []model.Card{{ID: 1, Q: "Q", A: "A", Hint: "H", Tag: "T", Box: model.Box1}},
		},
		{
			name: "正常系: null と数値は文字列化",
			raw:  `[{"q":42,"a":null,"hint":true,"tag":null}]`,
			n:    10,
			want: []model.Card{{ID: 1, Q: "42", A: "", Hint: "true", Tag: model.DefaultTag, Box: model.Box1}},
		},
		{
			name: "正常系: 空配列",
			raw:  `[]`,
			n:    10,
			want: []model.Card{},
		},
		{name: "異常系: JSONでない", raw: "Sorry, I can't help with that.", n: 10, wantErr: model.ErrParse},
		{name: "異常系: オブジェクトが返った", raw: `{"cards":[]}`, n: 10, wantErr: model.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCardList(tt.raw, tt.n)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCardList_Truncates(t *testing.T) {
	raw := `[{"q":"` + strings.Repeat("q", 300) + `","a":"` + strings.Repeat("a", 900) +
		`","hint":"` + strings.Repeat("h", 200) + `","tag":"` + strings.Repeat("t", 90) + `"}]`

	got, err := ParseCardList(raw, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Q, model.MaxQuestionLen)
	assert.Len(t, got[0].A, model.MaxAnswerLen)
	assert.Len(t, got[0].Hint, model.MaxHintLen)
	assert.Len(t, got[0].Tag, model.MaxTagLen)
}

func TestParseSingleCard(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		fallbackTag string
		want        model.CardContent
		wantErr     error
	}{
		{
			name:        "正常系: オブジェクト",
			raw:         `{"q":"Q","a":"A","hint":"H","tag":"T"}`,
			fallbackTag: "x",
			want:        model.CardContent{Q: "Q", A: "A", Hint: "H", Tag: "T"},
		},
		{
			name:        "正常系: tag が無ければ要求したタグ",
			raw:         "```\n{\"q\":\"Q\",\"a\":\"A\"}\n```",
			fallbackTag: "closures",
			want:        model.CardContent{Q: "Q", A: "A", Tag: "closures"},
		},
		{name: "異常系: 配列が返った", raw: `[{"q":"Q"}]`, fallbackTag: "x", wantErr: model.ErrUpstream},
		{name: "異常系: null", raw: `null`, fallbackTag: "x", wantErr: model.ErrUpstream},
		{name: "異常系: 壊れたJSON", raw: `{"q": "Q",`, fallbackTag: "x", wantErr: model.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSingleCard(tt.raw, tt.fallbackTag)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
