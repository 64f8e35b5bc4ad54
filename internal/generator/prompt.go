package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an English reading-comprehension author for Korean learners.
You write original passages with complete Korean translations, vocabulary notes,
grammar notes and multiple-choice questions. You always reply with a single JSON
object and nothing else around it.`

// difficultyNames labels each extended level the way the product describes
// it to learners.
var difficultyNames = map[int]string{
	1:  "absolute beginner (입문)",
	2:  "early beginner (초보)",
	3:  "beginner (초급)",
	4:  "high beginner (상급 초급)",
	5:  "low elementary (하급 초중급)",
	6:  "elementary (초중급)",
	7:  "high elementary (상급 초중급)",
	8:  "low intermediate (하급 중급)",
	9:  "intermediate (중급)",
	10: "high intermediate (상급 중급)",
	11: "low upper-intermediate (하급 중고급)",
	12: "upper-intermediate (중고급)",
	13: "high upper-intermediate (상급 중고급)",
	14: "low advanced (하급 고급)",
	15: "advanced (고급)",
	16: "proficient/native-like (최고급)",
}

// buildPrompt composes the generation instruction from the resolved profile
// and the sampled brief.
func buildPrompt(level int, profile DifficultyProfile, brief Brief) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a unique English reading comprehension passage for %s level Korean learners.\n\n", difficultyNames[level])

	b.WriteString("CONTENT SPECIFICATIONS:\n")
	fmt.Fprintf(&b, "- Topic: %s\n", brief.Topic)
	fmt.Fprintf(&b, "- Writing style: %s\n", brief.Style)
	fmt.Fprintf(&b, "- Perspective: %s\n", brief.Perspective)
	fmt.Fprintf(&b, "- Tone: %s\n", brief.Tone)
	fmt.Fprintf(&b, "- Length: %s words\n", profile.WordRange)
	fmt.Fprintf(&b, "- Language complexity: %s\n\n", profile.Complexity)

	b.WriteString("STRUCTURAL REQUIREMENTS:\n")
	b.WriteString("- Create an engaging, creative title (avoid generic titles)\n")
	b.WriteString("- Write original content - DO NOT use common textbook examples\n")
	b.WriteString("- Provide complete Korean translation of the entire passage\n")
	fmt.Fprintf(&b, "- List 6-10 key vocabulary words with Korean meanings (level %d appropriate)\n", level)
	b.WriteString("- Identify 4-6 important grammar points used in the passage with Korean explanations\n")
	fmt.Fprintf(&b, "- Create %d multiple choice questions focusing on: %s\n\n", profile.QuestionCount, brief.QuestionFocus)

	b.WriteString("ANTI-PATTERN INSTRUCTIONS:\n")
	b.WriteString("- Vary sentence structures and lengths significantly\n")
	b.WriteString("- Use diverse vocabulary and avoid repetitive phrases\n")
	b.WriteString("- Create unique scenarios and examples\n")
	b.WriteString("- Mix question types (literal, inferential, analytical)\n")
	b.WriteString("- Ensure cultural relevance and engagement for Korean learners\n\n")

	b.WriteString("IMPORTANT: Be creative and original. Avoid formulaic structures.\n\n")

	b.WriteString(`Format your response as valid JSON:
{
  "title": "creative and engaging title",
  "content": "unique reading passage text",
  "translation": "완전한 한국어 번역",
  "keyVocabulary": ["word1: 한국어 뜻", "word2: 한국어 뜻"],
  "grammarPoints": ["문법 포인트 1 (한국어 설명)", "문법 포인트 2 (한국어 설명)"],
  "questions": [
    {
      "question": "question text in English",
      "options": ["A. option1", "B. option2", "C. option3", "D. option4"],
      "correctAnswer": 0,
      "explanation": "detailed Korean explanation for the correct answer"
    }
  ]
}`)

	return b.String()
}
