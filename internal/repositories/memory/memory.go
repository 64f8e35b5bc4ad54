// Package memory provides in-memory repository implementations. They back
// unit tests and local development without a database; behavior mirrors the
// postgres implementations, including retention ranking semantics.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/repositories"
)

type PassageRepository struct {
	mu       sync.RWMutex
	nextID   uint
	passages map[uint]*models.ReadingPassage
}

func NewPassageRepository() *PassageRepository {
	return &PassageRepository{
		nextID:   1,
		passages: make(map[uint]*models.ReadingPassage),
	}
}

func (r *PassageRepository) Create(_ context.Context, passage *models.ReadingPassage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	passage.ID = r.nextID
	r.nextID++
	if passage.CreatedAt.IsZero() {
		passage.CreatedAt = time.Now()
	}

	stored := *passage
	r.passages[passage.ID] = &stored
	return nil
}

func (r *PassageRepository) GetByID(_ context.Context, id uint) (*models.ReadingPassage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.passages[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *PassageRepository) List(_ context.Context, filters repositories.PassageFilters) ([]*models.ReadingPassage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.ReadingPassage, 0)
	for _, p := range r.passages {
		if filters.DifficultyLevel != nil && p.DifficultyLevel != *filters.DifficultyLevel {
			continue
		}
		if filters.CreatedAfter != nil && p.CreatedAt.Before(*filters.CreatedAfter) {
			continue
		}
		out := *p
		matched = append(matched, &out)
	}

	asc := filters.SortOrder == "asc"
	sortByCreation(matched, asc)

	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filters.Offset:]
	}
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, nil
}

func (r *PassageRepository) CountCreatedSince(_ context.Context, level int, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.passages {
		if p.DifficultyLevel == level && !p.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *PassageRepository) ListBeyondRank(_ context.Context, level int, keep int) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.ReadingPassage, 0)
	for _, p := range r.passages {
		if p.DifficultyLevel == level {
			matched = append(matched, p)
		}
	}
	sortByCreation(matched, false)

	if keep >= len(matched) {
		return nil, nil
	}
	ids := make([]uint, 0, len(matched)-keep)
	for _, p := range matched[keep:] {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *PassageRepository) DeleteByIDs(_ context.Context, ids []uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := r.passages[id]; ok {
			delete(r.passages, id)
			deleted++
		}
	}
	return deleted, nil
}

// sortByCreation orders newest-first by default, breaking creation-time ties
// by id so insertion order stays deterministic.
func sortByCreation(passages []*models.ReadingPassage, asc bool) {
	sort.Slice(passages, func(i, j int) bool {
		a, b := passages[i], passages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}

type ResultRepository struct {
	mu      sync.RWMutex
	nextID  uint
	results []*models.TestResult
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{nextID: 1}
}

func (r *ResultRepository) Create(_ context.Context, result *models.TestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result.ID = r.nextID
	r.nextID++
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	stored := *result
	r.results = append(r.results, &stored)
	return nil
}

func (r *ResultRepository) GetByUser(_ context.Context, userID string, filters repositories.ResultFilters) ([]*models.TestResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.TestResult, 0)
	for _, res := range r.results {
		if res.UserID != userID {
			continue
		}
		if filters.DifficultyLevel != nil && res.DifficultyLevel != *filters.DifficultyLevel {
			continue
		}
		if filters.DateFrom != nil && res.CompletedAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && res.CompletedAt.After(*filters.DateTo) {
			continue
		}
		out := *res
		matched = append(matched, &out)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CompletedAt.After(matched[j].CompletedAt)
	})

	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, nil
}

// Manager bundles the in-memory repositories behind repositories.Repository.
type Manager struct {
	passage *PassageRepository
	result  *ResultRepository
}

func NewManager() *Manager {
	return &Manager{
		passage: NewPassageRepository(),
		result:  NewResultRepository(),
	}
}

func (m *Manager) Passage() repositories.PassageRepository { return m.passage }
func (m *Manager) Result() repositories.ResultRepository   { return m.result }
