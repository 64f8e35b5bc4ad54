package generator

import "math/rand"

// Brief is one sampled generation brief. Varying these axes across calls
// keeps successive passages from converging on formulaic output.
type Brief struct {
	Topic         string
	Style         string
	Perspective   string
	QuestionFocus string
	Tone          string
}

var topics = []string{
	"daily life and routines", "science and technology", "culture and traditions",
	"history and historical events", "environment and nature", "health and wellness",
	"education and learning", "sports and recreation", "travel and exploration",
	"food and cooking", "arts and creativity", "business and economics",
	"psychology and behavior", "social issues", "future predictions",
	"innovation and inventions", "relationships and communication", "hobbies and interests",
}

var styles = []string{
	"narrative storytelling", "informative article", "descriptive essay",
	"analytical discussion", "comparative analysis", "cause and effect explanation",
	"problem-solution format", "chronological account", "interview-style content",
	"scientific report", "personal reflection", "argumentative piece",
}

var perspectives = []string{
	"third person objective", "first person experience", "expert commentary",
	"student perspective", "historical viewpoint", "cross-cultural comparison",
	"scientific observation", "personal journey", "social commentary",
}

var questionFocuses = []string{
	"main idea and details", "inference and interpretation", "vocabulary in context",
	"cause and effect", "comparison and contrast", "author's purpose and tone",
	"sequence and chronology", "fact vs opinion", "supporting evidence",
}

var tones = []string{
	"formal academic tone",
	"conversational and engaging tone",
	"balanced informative tone",
}

// BriefSelector samples generation briefs from the fixed enumerations.
// Randomness is injected so callers and tests control the source; the tone
// axis is derived from the caller-supplied hour rather than ambient time.
type BriefSelector struct {
	rng *rand.Rand
}

func NewBriefSelector(rng *rand.Rand) *BriefSelector {
	return &BriefSelector{rng: rng}
}

// Pick draws one value per axis. hour is the local hour of day (0-23); the
// tone rotates on a three-hour cycle so passages generated in the same slot
// share a register.
func (s *BriefSelector) Pick(hour int) Brief {
	return Brief{
		Topic:         topics[s.rng.Intn(len(topics))],
		Style:         styles[s.rng.Intn(len(styles))],
		Perspective:   perspectives[s.rng.Intn(len(perspectives))],
		QuestionFocus: questionFocuses[s.rng.Intn(len(questionFocuses))],
		Tone:          tones[((hour%3)+3)%3],
	}
}
