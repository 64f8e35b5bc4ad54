package repositories

import (
	"context"
	"time"

	"github.com/readinglab/passage-service/internal/models"
)

// PassageFilters narrows passage listings.
type PassageFilters struct {
	DifficultyLevel *int       `json:"difficulty_level"`
	CreatedAfter    *time.Time `json:"created_after"`
	Limit           int        `json:"limit"`
	Offset          int        `json:"offset"`
	SortOrder       string     `json:"sort_order"` // "asc", "desc"; default newest first
}

// ResultFilters narrows test-result listings.
type ResultFilters struct {
	DifficultyLevel *int       `json:"difficulty_level"`
	DateFrom        *time.Time `json:"date_from"`
	DateTo          *time.Time `json:"date_to"`
	Limit           int        `json:"limit"`
	Offset          int        `json:"offset"`
}

// PassageRepository is the persistence boundary for generated passages.
// The pipeline treats the store as a row store with insert, select, filter
// and delete; retention and freshness queries are first-class because the
// batch job depends on them.
type PassageRepository interface {
	Create(ctx context.Context, passage *models.ReadingPassage) error
	GetByID(ctx context.Context, id uint) (*models.ReadingPassage, error)
	List(ctx context.Context, filters PassageFilters) ([]*models.ReadingPassage, error)

	// CountCreatedSince counts passages for one level created at or after
	// the given instant. Drives the freshness gate.
	CountCreatedSince(ctx context.Context, level int, since time.Time) (int64, error)

	// ListBeyondRank returns the ids of passages for one level ranked past
	// `keep` when ordered by creation time descending (newest first).
	ListBeyondRank(ctx context.Context, level int, keep int) ([]uint, error)

	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
}

// ResultRepository stores test results. Results are insert-only.
type ResultRepository interface {
	Create(ctx context.Context, result *models.TestResult) error
	GetByUser(ctx context.Context, userID string, filters ResultFilters) ([]*models.TestResult, error)
}

// Repository bundles the per-entity repositories behind one dependency.
type Repository interface {
	Passage() PassageRepository
	Result() ResultRepository
}
