package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readinglab/passage-service/internal/repositories"
)

const (
	// DefaultKeepPerLevel is how many passages the retention sweep keeps per
	// difficulty level, newest first.
	DefaultKeepPerLevel = 50

	// DefaultFreshnessWindow and DefaultFreshnessThreshold gate generation:
	// a level with at least the threshold of passages created inside the
	// window is skipped.
	DefaultFreshnessWindow    = 24 * time.Hour
	DefaultFreshnessThreshold = 3

	// defaultInterCallDelay paces successive generation calls to respect the
	// external service's rate limits. Not a concurrency-control mechanism.
	defaultInterCallDelay = 2 * time.Second

	// batchLevels is the range of difficulty levels the scheduled cycle
	// covers, lowest first.
	batchLevels = 5
)

// GenerationReport summarizes one generation cycle. Errors are collected per
// level so the cycle can report partial success.
type GenerationReport struct {
	Timestamp time.Time `json:"timestamp"`
	Results   []string  `json:"results"`
	Errors    []string  `json:"errors,omitempty"`
}

// BatchService runs the scheduled generation and retention work.
type BatchService interface {
	// RunGenerationCycle attempts one generation per difficulty level
	// (1..5, sequential, lowest first), skipping fresh levels, then prunes
	// each level's pool. A failing level never aborts the rest.
	RunGenerationCycle(ctx context.Context) *GenerationReport

	// RetainRecent deletes passages ranked beyond keep for a level, ordered
	// by creation time descending. Returns the number deleted.
	RetainRecent(ctx context.Context, level int, keep int) (int64, error)

	// HasRecentEnough reports whether the level already has threshold or
	// more passages created within the window.
	HasRecentEnough(ctx context.Context, level int, within time.Duration, threshold int) (bool, error)
}

type batchService struct {
	repo     repositories.Repository
	passages PassageService
	logger   *slog.Logger

	delay     time.Duration
	window    time.Duration
	threshold int
	keep      int
}

func NewBatchService(repo repositories.Repository, passages PassageService, logger *slog.Logger) BatchService {
	return &batchService{
		repo:      repo,
		passages:  passages,
		logger:    logger,
		delay:     defaultInterCallDelay,
		window:    DefaultFreshnessWindow,
		threshold: DefaultFreshnessThreshold,
		keep:      DefaultKeepPerLevel,
	}
}

// NewBatchServiceWithDelay builds a batch service with a custom inter-call
// delay. Tests pass zero to run the cycle without pacing.
func NewBatchServiceWithDelay(repo repositories.Repository, passages PassageService, logger *slog.Logger, delay time.Duration) BatchService {
	s := NewBatchService(repo, passages, logger).(*batchService)
	s.delay = delay
	return s
}

func (s *batchService) RunGenerationCycle(ctx context.Context) *GenerationReport {
	report := &GenerationReport{Timestamp: time.Now().UTC()}

	for level := 1; level <= batchLevels; level++ {
		fresh, err := s.HasRecentEnough(ctx, level, s.window, s.threshold)
		if err != nil {
			s.logger.Error("freshness check failed", "difficulty_level", level, "error", err)
			report.Errors = append(report.Errors,
				fmt.Sprintf("difficulty %d: freshness check failed: %v", level, err))
			continue
		}
		if fresh {
			report.Results = append(report.Results,
				fmt.Sprintf("difficulty %d: already has enough recent passages", level))
			continue
		}

		passage, err := s.passages.Generate(ctx, level)
		if err != nil {
			s.logger.Error("generation failed", "difficulty_level", level, "error", err)
			report.Errors = append(report.Errors,
				fmt.Sprintf("difficulty %d: generation failed: %v", level, err))
		} else {
			report.Results = append(report.Results,
				fmt.Sprintf("difficulty %d: generated passage %q (id %d)", level, passage.Title, passage.ID))
		}

		if s.delay > 0 && level < batchLevels {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				report.Errors = append(report.Errors, fmt.Sprintf("cycle interrupted: %v", ctx.Err()))
				return report
			}
		}
	}

	for level := 1; level <= batchLevels; level++ {
		deleted, err := s.RetainRecent(ctx, level, s.keep)
		if err != nil {
			s.logger.Error("retention sweep failed", "difficulty_level", level, "error", err)
			report.Errors = append(report.Errors,
				fmt.Sprintf("difficulty %d: retention failed: %v", level, err))
			continue
		}
		if deleted > 0 {
			report.Results = append(report.Results,
				fmt.Sprintf("difficulty %d: cleaned %d old passages", level, deleted))
		}
	}

	s.logger.Info("generation cycle finished",
		"results", len(report.Results), "errors", len(report.Errors))
	return report
}

func (s *batchService) RetainRecent(ctx context.Context, level int, keep int) (int64, error) {
	if keep <= 0 {
		keep = DefaultKeepPerLevel
	}

	ids, err := s.repo.Passage().ListBeyondRank(ctx, level, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to rank passages for level %d: %w", level, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	deleted, err := s.repo.Passage().DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to prune passages for level %d: %w", level, err)
	}
	return deleted, nil
}

func (s *batchService) HasRecentEnough(ctx context.Context, level int, within time.Duration, threshold int) (bool, error) {
	if within <= 0 {
		within = DefaultFreshnessWindow
	}
	if threshold <= 0 {
		threshold = DefaultFreshnessThreshold
	}

	count, err := s.repo.Passage().CountCreatedSince(ctx, level, time.Now().Add(-within))
	if err != nil {
		return false, fmt.Errorf("failed to count recent passages for level %d: %w", level, err)
	}
	return count >= int64(threshold), nil
}
