package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/readinglab/passage-service/internal/services"
)

// Scheduler runs the daily passage-generation cycle.
type Scheduler struct {
	scheduler *gocron.Scheduler
	batch     services.BatchService
	logger    *slog.Logger
	at        string
}

// New creates a scheduler that runs the generation cycle daily at the given
// local time, "HH:MM".
func New(batch services.BatchService, at string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		batch:     batch,
		logger:    logger,
		at:        at,
	}
}

// Start registers the daily job and begins running it asynchronously.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Do(s.runCycle)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("generation scheduler started", "at", s.at)
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	report := s.batch.RunGenerationCycle(ctx)
	s.logger.Info("scheduled generation cycle done",
		"results", len(report.Results),
		"errors", len(report.Errors))
}
