package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/readinglab/passage-service/internal/llm"
	"github.com/readinglab/passage-service/internal/models"
	"gorm.io/datatypes"
)

const defaultMaxTokens = 2000

// Client generates reading passages through an llm.Provider. It performs a
// single call per Generate invocation; retry loops and rate-limit pacing are
// the caller's responsibility.
type Client struct {
	provider llm.Provider
	selector *BriefSelector
	logger   *slog.Logger

	maxTokens int
	now       func() time.Time
}

func NewClient(provider llm.Provider, selector *BriefSelector, logger *slog.Logger) *Client {
	return &Client{
		provider:  provider,
		selector:  selector,
		logger:    logger,
		maxTokens: defaultMaxTokens,
		now:       time.Now,
	}
}

// WithClock overrides the time source used for the tone axis. Test hook.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Generate samples a fresh brief and produces one passage for the level.
func (c *Client) Generate(ctx context.Context, level int) (*models.ReadingPassage, error) {
	brief := c.selector.Pick(c.now().Hour())
	return c.GenerateWithBrief(ctx, level, brief)
}

// GenerateWithBrief produces one passage for the level using the supplied
// brief. The response must contain a JSON object conforming to the passage
// schema; anything else is rejected rather than repaired.
func (c *Client) GenerateWithBrief(ctx context.Context, level int, brief Brief) (*models.ReadingPassage, error) {
	profile, err := ResolveProfile(level)
	if err != nil {
		return nil, err
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(level, profile, brief),
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		c.logger.Error("generation call failed", "difficulty_level", level, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	raw, err := extractJSONObject(resp.Text)
	if err != nil {
		c.logger.Warn("generation response contained no JSON object",
			"difficulty_level", level, "model", resp.Model)
		return nil, err
	}

	if err := validatePassageJSON(raw); err != nil {
		c.logger.Warn("generated passage rejected by schema",
			"difficulty_level", level, "model", resp.Model, "error", err)
		return nil, err
	}

	passage, err := decodePassage(raw, level, brief)
	if err != nil {
		return nil, err
	}

	c.logger.Info("passage generated",
		"difficulty_level", level,
		"title", passage.Title,
		"questions", len(passage.Questions),
		"topic", brief.Topic,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	return passage, nil
}

// extractJSONObject locates and returns the first top-level JSON object in
// free-form model text.
func extractJSONObject(text string) (json.RawMessage, error) {
	idx := strings.IndexByte(text, '{')
	if idx < 0 {
		return nil, ErrMalformedResponse
	}

	dec := json.NewDecoder(strings.NewReader(text[idx:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return raw, nil
}

// passagePayload mirrors the JSON shape requested in the prompt.
type passagePayload struct {
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Translation   string            `json:"translation"`
	KeyVocabulary []string          `json:"keyVocabulary"`
	GrammarPoints []string          `json:"grammarPoints"`
	Questions     []models.Question `json:"questions"`
}

func decodePassage(raw json.RawMessage, level int, brief Brief) (*models.ReadingPassage, error) {
	var payload passagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassageShape, err)
	}

	// The schema already enforces shape; re-check the index invariant here
	// so the scoring path can rely on it even if the schema evolves.
	for i, q := range payload.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d answer index %d out of range",
				ErrInvalidPassageShape, i, q.CorrectAnswer)
		}
	}

	metadata := datatypes.NewJSONType(models.GenerationMetadata{
		Topic:           brief.Topic,
		Style:           brief.Style,
		Perspective:     brief.Perspective,
		QuestionFocus:   brief.QuestionFocus,
		Tone:            brief.Tone,
		DifficultyLevel: level,
	})

	return &models.ReadingPassage{
		Title:              payload.Title,
		Content:            payload.Content,
		DifficultyLevel:    level,
		Translation:        payload.Translation,
		KeyVocabulary:      payload.KeyVocabulary,
		GrammarPoints:      payload.GrammarPoints,
		Questions:          payload.Questions,
		GenerationMetadata: &metadata,
	}, nil
}
