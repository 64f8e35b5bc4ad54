package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/readinglab/passage-service/internal/cache"
	"github.com/readinglab/passage-service/internal/events"
	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/repositories"
	"github.com/readinglab/passage-service/internal/scoring"
)

const (
	pendingResultTTL = 24 * time.Hour
	pendingResultKey = "pending_result:%s"
)

// PendingResult holds a scored multi-passage run waiting for a user
// identity. It lives server-side under an opaque token instead of in
// browser storage; claiming it persists the per-passage results.
type PendingResult struct {
	PassageIDs []uint                  `json:"passage_ids"`
	Results    []scoring.PassageResult `json:"results"`
	Aggregate  scoring.AggregateScore  `json:"aggregate"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ResultService scores answer sequences and records test results.
type ResultService interface {
	ScorePassage(questions []models.Question, answers []int) (scoring.PassageScore, error)
	ScoreAggregate(results []scoring.PassageResult) (scoring.AggregateScore, error)

	// Record scores and persists one result for an authenticated user. The
	// stored difficulty level is the passage's own level, not a value
	// derived from the score.
	Record(ctx context.Context, userID string, passage *models.ReadingPassage, answers []int) (*models.TestResult, error)

	// SavePending stores a scored run under a fresh token with a 24h TTL.
	SavePending(ctx context.Context, passageIDs []uint, results []scoring.PassageResult) (string, *PendingResult, error)

	// ClaimPending persists the pending run's per-passage results for the
	// user and deletes the token.
	ClaimPending(ctx context.Context, token string, userID string) ([]*models.TestResult, error)

	GetByUser(ctx context.Context, userID string, filters repositories.ResultFilters) ([]*models.TestResult, error)
}

type resultService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewResultService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *resultService) ScorePassage(questions []models.Question, answers []int) (scoring.PassageScore, error) {
	return scoring.ScorePassage(questions, answers)
}

func (s *resultService) ScoreAggregate(results []scoring.PassageResult) (scoring.AggregateScore, error) {
	return scoring.ScoreAggregate(results)
}

func (s *resultService) Record(ctx context.Context, userID string, passage *models.ReadingPassage, answers []int) (*models.TestResult, error) {
	score, err := scoring.ScorePassage(passage.Questions, answers)
	if err != nil {
		return nil, err
	}

	result := &models.TestResult{
		UserID:          userID,
		PassageID:       passage.ID,
		Score:           score.Score,
		Answers:         answers,
		DifficultyLevel: passage.DifficultyLevel,
		CompletedAt:     time.Now(),
	}

	if err := s.repo.Result().Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save test result: %w", err)
	}

	s.publishRecorded(ctx, result)

	s.logger.Info("test result recorded",
		"user_id", userID,
		"passage_id", passage.ID,
		"score", score.Score,
		"correct", score.CorrectCount,
		"total", score.TotalQuestions)

	return result, nil
}

func (s *resultService) SavePending(ctx context.Context, passageIDs []uint, results []scoring.PassageResult) (string, *PendingResult, error) {
	if len(passageIDs) != len(results) {
		return "", nil, fmt.Errorf("%w: %d passage ids for %d results",
			scoring.ErrAnswerCountMismatch, len(passageIDs), len(results))
	}

	aggregate, err := scoring.ScoreAggregate(results)
	if err != nil {
		return "", nil, err
	}

	pending := &PendingResult{
		PassageIDs: passageIDs,
		Results:    results,
		Aggregate:  aggregate,
		CreatedAt:  time.Now(),
	}

	token := uuid.NewString()
	key := fmt.Sprintf(pendingResultKey, token)
	if err := s.cache.Set(ctx, key, pending, pendingResultTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store pending result: %w", err)
	}

	s.logger.Info("pending result stored",
		"token", token,
		"passages", len(results),
		"overall_score", aggregate.OverallScore)

	return token, pending, nil
}

func (s *resultService) ClaimPending(ctx context.Context, token string, userID string) ([]*models.TestResult, error) {
	key := fmt.Sprintf(pendingResultKey, token)

	var pending PendingResult
	if err := s.cache.Get(ctx, key, &pending); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrPendingNotFound
		}
		return nil, fmt.Errorf("failed to load pending result: %w", err)
	}

	saved := make([]*models.TestResult, 0, len(pending.Results))
	for i, pr := range pending.Results {
		score, err := scoring.ScorePassage(pr.Questions, pr.Answers)
		if err != nil {
			return nil, fmt.Errorf("pending passage %d: %w", i, err)
		}

		result := &models.TestResult{
			UserID:          userID,
			PassageID:       pending.PassageIDs[i],
			Score:           score.Score,
			Answers:         pr.Answers,
			DifficultyLevel: pr.DifficultyLevel,
			CompletedAt:     pending.CreatedAt,
		}
		if err := s.repo.Result().Create(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to save result for passage %d: %w", pending.PassageIDs[i], err)
		}

		s.publishRecorded(ctx, result)
		saved = append(saved, result)
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete claimed pending result", "token", token, "error", err)
	}

	s.logger.Info("pending result claimed", "token", token, "user_id", userID, "results", len(saved))
	return saved, nil
}

func (s *resultService) GetByUser(ctx context.Context, userID string, filters repositories.ResultFilters) ([]*models.TestResult, error) {
	return s.repo.Result().GetByUser(ctx, userID, filters)
}

func (s *resultService) publishRecorded(ctx context.Context, result *models.TestResult) {
	if s.publisher == nil {
		return
	}
	event := events.NewResultRecordedEvent(events.ResultRecordedPayload{
		ResultID:        result.ID,
		UserID:          result.UserID,
		PassageID:       result.PassageID,
		Score:           result.Score,
		DifficultyLevel: result.DifficultyLevel,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish result.recorded event",
			"result_id", result.ID, "error", err)
	}
}
