package scoring

import (
	"math/rand"
	"testing"

	"github.com/readinglab/passage-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionsWithKeys(keys ...int) []models.Question {
	qs := make([]models.Question, len(keys))
	for i, k := range keys {
		qs[i] = models.Question{
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: k,
		}
	}
	return qs
}

func TestScorePassage(t *testing.T) {
	t.Run("all correct", func(t *testing.T) {
		score, err := ScorePassage(questionsWithKeys(0, 1, 2), []int{0, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, 100, score.Score)
		assert.Equal(t, 3, score.CorrectCount)
		assert.Equal(t, 3, score.TotalQuestions)
	})

	t.Run("all wrong", func(t *testing.T) {
		score, err := ScorePassage(questionsWithKeys(0, 0, 0), []int{1, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, 0, score.Score)
		assert.Equal(t, 0, score.CorrectCount)
	})

	t.Run("positional pairing", func(t *testing.T) {
		// Answers match the key multiset but only two line up by position.
		score, err := ScorePassage(questionsWithKeys(1, 2, 0), []int{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 2, score.CorrectCount)
		assert.Equal(t, 67, score.Score)
	})

	t.Run("rounding is half-up", func(t *testing.T) {
		// 1/3 -> 33, 2/3 -> 67, 1/6 -> 17
		score, err := ScorePassage(questionsWithKeys(0, 1, 2), []int{0, 3, 3})
		require.NoError(t, err)
		assert.Equal(t, 33, score.Score)

		score, err = ScorePassage(questionsWithKeys(0, 1, 2, 3, 0, 1), []int{0, 3, 3, 1, 2, 2})
		require.NoError(t, err)
		assert.Equal(t, 17, score.Score)
	})

	t.Run("count mismatch", func(t *testing.T) {
		_, err := ScorePassage(questionsWithKeys(0, 1), []int{0})
		assert.ErrorIs(t, err, ErrAnswerCountMismatch)

		_, err = ScorePassage(questionsWithKeys(0), []int{0, 1})
		assert.ErrorIs(t, err, ErrAnswerCountMismatch)
	})

	t.Run("empty questions", func(t *testing.T) {
		_, err := ScorePassage(nil, nil)
		assert.ErrorIs(t, err, ErrNoQuestions)
	})
}

func TestScoreAggregate(t *testing.T) {
	t.Run("combined sequence", func(t *testing.T) {
		// Five passages of two questions, nine answered correctly: 9/10 = 90,
		// which recommends the top level.
		results := make([]PassageResult, 5)
		for i := range results {
			results[i] = PassageResult{
				DifficultyLevel: i + 1,
				Questions:       questionsWithKeys(0, 1),
				Answers:         []int{0, 1},
			}
		}
		results[4].Answers = []int{0, 3}

		agg, err := ScoreAggregate(results)
		require.NoError(t, err)
		assert.Equal(t, 90, agg.OverallScore)
		assert.Equal(t, 9, agg.TotalCorrect)
		assert.Equal(t, 10, agg.TotalQuestions)
		assert.Equal(t, 5, agg.RecommendedLevel)
	})

	t.Run("empty passages are skipped", func(t *testing.T) {
		agg, err := ScoreAggregate([]PassageResult{
			{Questions: nil, Answers: nil},
			{Questions: questionsWithKeys(0, 1), Answers: []int{0, 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 100, agg.OverallScore)
		assert.Equal(t, 2, agg.TotalQuestions)
	})

	t.Run("no questions at all", func(t *testing.T) {
		_, err := ScoreAggregate([]PassageResult{{Questions: nil, Answers: nil}})
		assert.ErrorIs(t, err, ErrNoQuestions)

		_, err = ScoreAggregate(nil)
		assert.ErrorIs(t, err, ErrNoQuestions)
	})

	t.Run("mismatch in one passage fails the run", func(t *testing.T) {
		_, err := ScoreAggregate([]PassageResult{
			{Questions: questionsWithKeys(0, 1), Answers: []int{0}},
		})
		assert.ErrorIs(t, err, ErrAnswerCountMismatch)
	})

	t.Run("score stays in range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 50; trial++ {
			n := 1 + rng.Intn(8)
			keys := make([]int, n)
			answers := make([]int, n)
			for i := range keys {
				keys[i] = rng.Intn(4)
				answers[i] = rng.Intn(4)
			}
			agg, err := ScoreAggregate([]PassageResult{{
				Questions: questionsWithKeys(keys...),
				Answers:   answers,
			}})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, agg.OverallScore, 0)
			assert.LessOrEqual(t, agg.OverallScore, 100)
		}
	})
}

func TestScorePassageLockstepPermutation(t *testing.T) {
	// Permuting questions and answers together must not change the outcome.
	keys := []int{1, 3, 0, 2, 1}
	answers := []int{1, 0, 0, 2, 3}

	base, err := ScorePassage(questionsWithKeys(keys...), answers)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		perm := rng.Perm(len(keys))
		permKeys := make([]int, len(keys))
		permAnswers := make([]int, len(answers))
		for i, p := range perm {
			permKeys[i] = keys[p]
			permAnswers[i] = answers[p]
		}

		score, err := ScorePassage(questionsWithKeys(permKeys...), permAnswers)
		require.NoError(t, err)
		assert.Equal(t, base, score)
	}
}

func TestRecommendLevel(t *testing.T) {
	tests := []struct {
		score int
		level int
	}{
		{100, 5}, {90, 5}, {89, 4}, {80, 4}, {79, 3},
		{70, 3}, {69, 2}, {60, 2}, {59, 1}, {0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, RecommendLevel(tt.score), "score %d", tt.score)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "beginner", LevelName(1))
	assert.Equal(t, "advanced", LevelName(5))
	assert.Equal(t, "", LevelName(0))
	assert.Equal(t, "", LevelName(6))
}
