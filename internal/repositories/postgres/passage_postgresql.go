package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/repositories"
	"gorm.io/gorm"
)

// listBeyondRankScanLimit caps a single retention sweep, mirroring the
// range the cron job has always fetched per level.
const listBeyondRankScanLimit = 1000

type PassagePostgreSQL struct {
	db *gorm.DB
}

func NewPassagePostgreSQL(db *gorm.DB) repositories.PassageRepository {
	return &PassagePostgreSQL{db: db}
}

func (r *PassagePostgreSQL) Create(ctx context.Context, passage *models.ReadingPassage) error {
	if err := r.db.WithContext(ctx).Create(passage).Error; err != nil {
		return fmt.Errorf("failed to create passage: %w", err)
	}
	return nil
}

func (r *PassagePostgreSQL) GetByID(ctx context.Context, id uint) (*models.ReadingPassage, error) {
	var passage models.ReadingPassage
	err := r.db.WithContext(ctx).First(&passage, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &passage, nil
}

func (r *PassagePostgreSQL) List(ctx context.Context, filters repositories.PassageFilters) ([]*models.ReadingPassage, error) {
	query := r.db.WithContext(ctx).Model(&models.ReadingPassage{})

	if filters.DifficultyLevel != nil {
		query = query.Where("difficulty_level = ?", *filters.DifficultyLevel)
	}
	if filters.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filters.CreatedAfter)
	}

	order := "created_at DESC"
	if filters.SortOrder == "asc" {
		order = "created_at ASC"
	}
	query = query.Order(order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var passages []*models.ReadingPassage
	if err := query.Find(&passages).Error; err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}
	return passages, nil
}

func (r *PassagePostgreSQL) CountCreatedSince(ctx context.Context, level int, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReadingPassage{}).
		Where("difficulty_level = ? AND created_at >= ?", level, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent passages: %w", err)
	}
	return count, nil
}

func (r *PassagePostgreSQL) ListBeyondRank(ctx context.Context, level int, keep int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ReadingPassage{}).
		Where("difficulty_level = ?", level).
		Order("created_at DESC").
		Offset(keep).
		Limit(listBeyondRankScanLimit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list passages beyond rank %d: %w", keep, err)
	}
	return ids, nil
}

func (r *PassagePostgreSQL) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.ReadingPassage{}, ids)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete passages: %w", res.Error)
	}
	return res.RowsAffected, nil
}
