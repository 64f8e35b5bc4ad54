package generator

import "fmt"

const (
	// MinLevel and MaxLevel bound the extended difficulty domain. The basic
	// consumer-facing mode uses only 1-5; band boundaries are shared.
	MinLevel = 1
	MaxLevel = 16

	// BasicMaxLevel is the highest level exposed by the basic-mode API.
	BasicMaxLevel = 5
)

// DifficultyProfile holds the generation parameters derived from a
// difficulty level.
type DifficultyProfile struct {
	WordRange     string
	Complexity    string
	QuestionCount int
}

// ResolveProfile maps a difficulty level to its generation parameters.
// Pure; returns ErrInvalidLevel outside [MinLevel, MaxLevel].
func ResolveProfile(level int) (DifficultyProfile, error) {
	if level < MinLevel || level > MaxLevel {
		return DifficultyProfile{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	switch {
	case level <= 4:
		return DifficultyProfile{
			WordRange:     "100-150",
			Complexity:    "simple sentences, present tense, basic vocabulary",
			QuestionCount: 3,
		}, nil
	case level <= 8:
		return DifficultyProfile{
			WordRange:     "150-250",
			Complexity:    "compound sentences, past/future tenses, common vocabulary",
			QuestionCount: 4,
		}, nil
	case level <= 12:
		return DifficultyProfile{
			WordRange:     "250-350",
			Complexity:    "complex sentences, various tenses, intermediate vocabulary",
			QuestionCount: 5,
		}, nil
	default:
		return DifficultyProfile{
			WordRange:     "350-500",
			Complexity:    "sophisticated structures, advanced vocabulary, nuanced expressions",
			QuestionCount: 6,
		}, nil
	}
}
