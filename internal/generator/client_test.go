package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/readinglab/passage-service/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPassageJSON = `{
	"title": "A Morning at the Market",
	"content": "Every Saturday, Mina visits the market near her house. She buys fresh fruit and talks with the sellers.",
	"translation": "매주 토요일, 미나는 집 근처 시장을 방문합니다.",
	"keyVocabulary": ["market", "fresh", "seller"],
	"grammarPoints": ["simple present tense"],
	"questions": [
		{
			"question": "When does Mina visit the market?",
			"options": ["Every Sunday", "Every Saturday", "Every day", "Once a month"],
			"correctAnswer": 1,
			"explanation": "The passage says she visits every Saturday."
		},
		{
			"question": "What does Mina buy?",
			"options": ["Fresh fruit", "Bread", "Fish", "Flowers"],
			"correctAnswer": 0,
			"explanation": "She buys fresh fruit."
		},
		{
			"question": "Where is the market?",
			"options": ["Far away", "Near her house", "In another city", "At school"],
			"correctAnswer": 1,
			"explanation": "The market is near her house."
		}
	]
}`

func newTestClient(provider llm.Provider) *Client {
	selector := NewBriefSelector(rand.New(rand.NewSource(1)))
	return NewClient(provider, selector, slog.New(slog.DiscardHandler))
}

func TestGenerateWithBrief(t *testing.T) {
	brief := Brief{
		Topic:         "daily life and routines",
		Style:         "narrative storytelling",
		Perspective:   "third person objective",
		QuestionFocus: "main idea and details",
		Tone:          "balanced informative tone",
	}

	t.Run("prose around the JSON is tolerated", func(t *testing.T) {
		mock := &llm.MockProvider{
			Text: "Here is your passage:\n" + validPassageJSON + "\nHope it helps!",
		}
		client := newTestClient(mock)

		passage, err := client.GenerateWithBrief(context.Background(), 3, brief)
		require.NoError(t, err)
		assert.Equal(t, "A Morning at the Market", passage.Title)
		assert.Equal(t, 3, passage.DifficultyLevel)
		assert.Len(t, passage.Questions, 3)
		assert.Equal(t, 1, passage.Questions[0].CorrectAnswer)

		require.NotNil(t, passage.GenerationMetadata)
		metadata := passage.GenerationMetadata.Data()
		assert.Equal(t, brief.Topic, metadata.Topic)
		assert.Equal(t, brief.Tone, metadata.Tone)
		assert.Equal(t, 3, metadata.DifficultyLevel)
	})

	t.Run("prompt reflects the difficulty profile", func(t *testing.T) {
		mock := &llm.MockProvider{Text: validPassageJSON}
		client := newTestClient(mock)

		_, err := client.GenerateWithBrief(context.Background(), 3, brief)
		require.NoError(t, err)

		require.Len(t, mock.Requests, 1)
		req := mock.Requests[0]
		assert.Contains(t, req.Prompt, "100-150")
		assert.Contains(t, req.Prompt, "Create 3 multiple choice questions")
		assert.Contains(t, req.Prompt, brief.Topic)
		assert.NotEmpty(t, req.System)
	})

	t.Run("invalid level", func(t *testing.T) {
		client := newTestClient(&llm.MockProvider{Text: validPassageJSON})

		_, err := client.GenerateWithBrief(context.Background(), 0, brief)
		assert.ErrorIs(t, err, ErrInvalidLevel)

		_, err = client.GenerateWithBrief(context.Background(), 17, brief)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("no JSON object in response", func(t *testing.T) {
		client := newTestClient(&llm.MockProvider{Text: "I cannot produce a passage right now."})

		_, err := client.GenerateWithBrief(context.Background(), 2, brief)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("truncated JSON", func(t *testing.T) {
		client := newTestClient(&llm.MockProvider{Text: `{"title": "cut off`})

		_, err := client.GenerateWithBrief(context.Background(), 2, brief)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("schema violations are rejected", func(t *testing.T) {
		cases := map[string]string{
			"missing questions": `{"title":"t","content":"c","translation":"x","keyVocabulary":[],"grammarPoints":[],"questions":[]}`,
			"three options": `{"title":"t","content":"c","translation":"x","keyVocabulary":[],"grammarPoints":[],
				"questions":[{"question":"q","options":["a","b","c"],"correctAnswer":0}]}`,
			"answer out of range": `{"title":"t","content":"c","translation":"x","keyVocabulary":[],"grammarPoints":[],
				"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswer":4}]}`,
			"missing title": `{"content":"c","translation":"x","keyVocabulary":[],"grammarPoints":[],
				"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswer":0}]}`,
		}

		for name, text := range cases {
			t.Run(name, func(t *testing.T) {
				client := newTestClient(&llm.MockProvider{Text: text})
				_, err := client.GenerateWithBrief(context.Background(), 2, brief)
				assert.ErrorIs(t, err, ErrInvalidPassageShape)
			})
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		mock := &llm.MockProvider{
			GenerateFunc: func(ctx context.Context, req llm.Request) (*llm.Response, error) {
				return nil, fmt.Errorf("upstream unavailable")
			},
		}
		client := newTestClient(mock)

		_, err := client.GenerateWithBrief(context.Background(), 2, brief)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestGenerateUsesClockForTone(t *testing.T) {
	mock := &llm.MockProvider{Text: validPassageJSON}
	client := newTestClient(mock).WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	})

	passage, err := client.Generate(context.Background(), 1)
	require.NoError(t, err)

	metadata := passage.GenerationMetadata.Data()
	assert.Equal(t, tones[10%3], metadata.Tone)
}
