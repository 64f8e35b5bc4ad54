package postgres

import (
	"context"
	"fmt"

	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.TestResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create test result: %w", err)
	}
	return nil
}

func (r *ResultPostgreSQL) GetByUser(ctx context.Context, userID string, filters repositories.ResultFilters) ([]*models.TestResult, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TestResult{}).
		Where("user_id = ?", userID)

	if filters.DifficultyLevel != nil {
		query = query.Where("difficulty_level = ?", *filters.DifficultyLevel)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}

	query = query.Order("completed_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var results []*models.TestResult
	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}
	return results, nil
}

// Manager bundles the postgres-backed repositories.
type Manager struct {
	passage repositories.PassageRepository
	result  repositories.ResultRepository
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		passage: NewPassagePostgreSQL(db),
		result:  NewResultPostgreSQL(db),
	}
}

func (m *Manager) Passage() repositories.PassageRepository { return m.passage }
func (m *Manager) Result() repositories.ResultRepository   { return m.result }
