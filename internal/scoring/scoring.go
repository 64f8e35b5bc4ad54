// Package scoring computes per-passage and aggregate quiz scores and derives
// level recommendations. Everything here is pure computation.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/readinglab/passage-service/internal/models"
)

var (
	// ErrAnswerCountMismatch is returned when the answer sequence does not
	// line up one-to-one with the question sequence.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")

	// ErrNoQuestions is returned when an aggregate run contains zero
	// questions; the overall score is undefined in that case.
	ErrNoQuestions = errors.New("no questions to score")
)

// PassageScore is the outcome of scoring one passage.
type PassageScore struct {
	Score          int `json:"score"`
	CorrectCount   int `json:"correct_count"`
	TotalQuestions int `json:"total_questions"`
}

// PassageResult pairs a passage's questions with a learner's answers for
// aggregate scoring.
type PassageResult struct {
	DifficultyLevel int               `json:"difficulty_level"`
	Questions       []models.Question `json:"questions"`
	Answers         []int             `json:"answers"`
}

// AggregateScore is the outcome of a multi-passage run. The overall score
// treats all questions as one combined sequence; passages carry no weighting.
type AggregateScore struct {
	OverallScore     int `json:"overall_score"`
	TotalCorrect     int `json:"total_correct"`
	TotalQuestions   int `json:"total_questions"`
	RecommendedLevel int `json:"recommended_level"`
}

// ScorePassage scores one answer sequence against one question sequence.
// Answers pair with questions by position, so permuting only one side
// changes the result.
func ScorePassage(questions []models.Question, answers []int) (PassageScore, error) {
	if len(answers) != len(questions) {
		return PassageScore{}, fmt.Errorf("%w: %d answers for %d questions",
			ErrAnswerCountMismatch, len(answers), len(questions))
	}
	if len(questions) == 0 {
		return PassageScore{}, ErrNoQuestions
	}

	correct := 0
	for i, q := range questions {
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	return PassageScore{
		Score:          roundPercent(correct, len(questions)),
		CorrectCount:   correct,
		TotalQuestions: len(questions),
	}, nil
}

// ScoreAggregate scores a multi-passage run and derives the recommended
// level from the overall percentage.
func ScoreAggregate(results []PassageResult) (AggregateScore, error) {
	totalCorrect := 0
	totalQuestions := 0

	for i, r := range results {
		s, err := ScorePassage(r.Questions, r.Answers)
		if err != nil {
			if errors.Is(err, ErrNoQuestions) {
				continue
			}
			return AggregateScore{}, fmt.Errorf("passage %d: %w", i, err)
		}
		totalCorrect += s.CorrectCount
		totalQuestions += s.TotalQuestions
	}

	if totalQuestions == 0 {
		return AggregateScore{}, ErrNoQuestions
	}

	overall := roundPercent(totalCorrect, totalQuestions)
	return AggregateScore{
		OverallScore:     overall,
		TotalCorrect:     totalCorrect,
		TotalQuestions:   totalQuestions,
		RecommendedLevel: RecommendLevel(overall),
	}, nil
}

// RecommendLevel maps an overall score in [0,100] to a proficiency level.
// Thresholds are evaluated highest-first; total over its domain.
func RecommendLevel(score int) int {
	switch {
	case score >= 90:
		return 5
	case score >= 80:
		return 4
	case score >= 70:
		return 3
	case score >= 60:
		return 2
	default:
		return 1
	}
}

var levelNames = map[int]string{
	1: "beginner",
	2: "elementary",
	3: "intermediate",
	4: "upper-intermediate",
	5: "advanced",
}

// LevelName returns the English label for a recommended level, or an empty
// string for unknown levels.
func LevelName(level int) string {
	return levelNames[level]
}

// roundPercent computes round(100 * correct / total) with half-up rounding.
func roundPercent(correct, total int) int {
	return int(math.Round(100 * float64(correct) / float64(total)))
}
