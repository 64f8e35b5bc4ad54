package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/readinglab/passage-service/internal/cache"
	"github.com/readinglab/passage-service/internal/events"
	"github.com/readinglab/passage-service/internal/generator"
	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/repositories"
)

const (
	latestPassageCacheTTL = 10 * time.Minute
	latestPassageCacheKey = "passages:latest:%d"
)

// PassageService owns passage generation and retrieval.
type PassageService interface {
	// Generate produces a fresh passage and persists it. A persistence
	// failure is logged and the generated passage still returned; the
	// learner's request does not fail on a storage outage.
	Generate(ctx context.Context, level int) (*models.ReadingPassage, error)

	// GetOrGenerate serves the most recent stored passage for a level,
	// generating one when the store has none. Store errors on this read path
	// degrade to fresh generation instead of failing the request.
	GetOrGenerate(ctx context.Context, level int) (*models.ReadingPassage, error)

	GetByID(ctx context.Context, id uint) (*models.ReadingPassage, error)
	List(ctx context.Context, level int, limit int) ([]*models.ReadingPassage, error)
}

type passageService struct {
	repo      repositories.Repository
	generator *generator.Client
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewPassageService(
	repo repositories.Repository,
	gen *generator.Client,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) PassageService {
	return &passageService{
		repo:      repo,
		generator: gen,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *passageService) Generate(ctx context.Context, level int) (*models.ReadingPassage, error) {
	passage, err := s.generator.Generate(ctx, level)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Passage().Create(ctx, passage); err != nil {
		// The learner still gets the passage; only durability is lost.
		s.logger.Warn("failed to persist generated passage",
			"difficulty_level", level, "title", passage.Title, "error", err)
		return passage, nil
	}

	s.invalidateLatest(ctx, level)
	s.publishGenerated(ctx, passage)

	return passage, nil
}

func (s *passageService) GetOrGenerate(ctx context.Context, level int) (*models.ReadingPassage, error) {
	if _, err := generator.ResolveProfile(level); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(latestPassageCacheKey, level)
	if s.cache != nil {
		var cached models.ReadingPassage
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("passage cache read failed", "key", cacheKey, "error", err)
		}
	}

	passages, err := s.repo.Passage().List(ctx, repositories.PassageFilters{
		DifficultyLevel: &level,
		Limit:           1,
	})
	if err != nil {
		s.logger.Warn("passage store read failed, generating instead",
			"difficulty_level", level, "error", err)
		return s.Generate(ctx, level)
	}

	if len(passages) == 0 {
		return s.Generate(ctx, level)
	}

	passage := passages[0]
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, passage, latestPassageCacheTTL); err != nil {
			s.logger.Warn("passage cache write failed", "key", cacheKey, "error", err)
		}
	}
	return passage, nil
}

func (s *passageService) GetByID(ctx context.Context, id uint) (*models.ReadingPassage, error) {
	passage, err := s.repo.Passage().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPassageNotFound
		}
		return nil, fmt.Errorf("failed to get passage: %w", err)
	}
	return passage, nil
}

func (s *passageService) List(ctx context.Context, level int, limit int) ([]*models.ReadingPassage, error) {
	if _, err := generator.ResolveProfile(level); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Passage().List(ctx, repositories.PassageFilters{
		DifficultyLevel: &level,
		Limit:           limit,
	})
}

func (s *passageService) invalidateLatest(ctx context.Context, level int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf(latestPassageCacheKey, level)); err != nil {
		s.logger.Warn("failed to invalidate passage cache", "difficulty_level", level, "error", err)
	}
}

func (s *passageService) publishGenerated(ctx context.Context, passage *models.ReadingPassage) {
	if s.publisher == nil {
		return
	}

	payload := events.PassageGeneratedPayload{
		PassageID:       passage.ID,
		Title:           passage.Title,
		DifficultyLevel: passage.DifficultyLevel,
		QuestionCount:   len(passage.Questions),
	}
	if passage.GenerationMetadata != nil {
		payload.Topic = passage.GenerationMetadata.Data().Topic
	}

	if err := s.publisher.Publish(ctx, events.NewPassageGeneratedEvent(payload)); err != nil {
		s.logger.Warn("failed to publish passage.generated event",
			"passage_id", passage.ID, "error", err)
	}
}
