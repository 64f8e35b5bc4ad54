package memory

import (
	"context"
	"testing"
	"time"

	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPassages(t *testing.T, repo *PassageRepository, level int, n int, base time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		p := &models.ReadingPassage{
			Title:           "passage",
			Content:         "content",
			DifficultyLevel: level,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func TestPassageRepositoryCreateAndGet(t *testing.T) {
	repo := NewPassageRepository()
	ctx := context.Background()

	questions := []models.Question{
		{
			Question:      "What color is the sky?",
			Options:       []string{"Red", "Blue", "Green", "Yellow"},
			CorrectAnswer: 1,
			Explanation:   "하늘은 파란색입니다.",
		},
	}
	p := &models.ReadingPassage{
		Title:           "Sky",
		Content:         "The sky is blue.",
		DifficultyLevel: 2,
		Questions:       questions,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sky", got.Title)

	// Questions round-trip with the answer index intact.
	require.Len(t, got.Questions, 1)
	assert.Equal(t, questions[0].Question, got.Questions[0].Question)
	assert.Equal(t, questions[0].Options, got.Questions[0].Options)
	assert.Equal(t, 1, got.Questions[0].CorrectAnswer)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPassageRepositoryList(t *testing.T) {
	repo := NewPassageRepository()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	seedPassages(t, repo, 1, 3, base)
	seedPassages(t, repo, 2, 2, base)

	level := 1
	got, err := repo.List(ctx, repositories.PassageFilters{DifficultyLevel: &level})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
	assert.True(t, got[1].CreatedAt.After(got[2].CreatedAt))

	got, err = repo.List(ctx, repositories.PassageFilters{DifficultyLevel: &level, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	after := base.Add(90 * time.Second)
	got, err = repo.List(ctx, repositories.PassageFilters{DifficultyLevel: &level, CreatedAfter: &after})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPassageRepositoryRetention(t *testing.T) {
	repo := NewPassageRepository()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	seedPassages(t, repo, 3, 60, base)
	seedPassages(t, repo, 4, 10, base)

	ids, err := repo.ListBeyondRank(ctx, 3, 50)
	require.NoError(t, err)
	require.Len(t, ids, 10)

	deleted, err := repo.DeleteByIDs(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(10), deleted)

	level := 3
	remaining, err := repo.List(ctx, repositories.PassageFilters{DifficultyLevel: &level})
	require.NoError(t, err)
	require.Len(t, remaining, 50)

	// The survivors are the 50 most recent: the 10 oldest creation times
	// are gone.
	cutoff := base.Add(10 * time.Minute)
	for _, p := range remaining {
		assert.False(t, p.CreatedAt.Before(cutoff))
	}

	// The other level is untouched.
	other := 4
	untouched, err := repo.List(ctx, repositories.PassageFilters{DifficultyLevel: &other})
	require.NoError(t, err)
	assert.Len(t, untouched, 10)
}

func TestPassageRepositoryListBeyondRankUnderKeep(t *testing.T) {
	repo := NewPassageRepository()
	seedPassages(t, repo, 1, 5, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	ids, err := repo.ListBeyondRank(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPassageRepositoryCountCreatedSince(t *testing.T) {
	repo := NewPassageRepository()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	seedPassages(t, repo, 2, 5, base)

	count, err := repo.CountCreatedSince(ctx, 2, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountCreatedSince(ctx, 2, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = repo.CountCreatedSince(ctx, 7, base)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestResultRepository(t *testing.T) {
	repo := NewResultRepository()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.TestResult{
			UserID:          "user-1",
			PassageID:       uint(i + 1),
			Score:           60 + 10*i,
			Answers:         []int{0, 1, 2},
			DifficultyLevel: i + 1,
			CompletedAt:     base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.TestResult{
		UserID:      "user-2",
		PassageID:   9,
		Score:       100,
		CompletedAt: base,
	}))

	got, err := repo.GetByUser(ctx, "user-1", repositories.ResultFilters{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Newest first.
	assert.Equal(t, uint(3), got[0].PassageID)

	level := 2
	got, err = repo.GetByUser(ctx, "user-1", repositories.ResultFilters{DifficultyLevel: &level})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 70, got[0].Score)

	from := base.Add(30 * time.Minute)
	got, err = repo.GetByUser(ctx, "user-1", repositories.ResultFilters{DateFrom: &from})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.GetByUser(ctx, "nobody", repositories.ResultFilters{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
