package quiz

import (
	"fmt"
	"strings"
)

// difficultyLabel maps the difficulty category to the label embedded in prompts.
func difficultyLabel(difficulty int) string {
	switch difficulty {
	case 1:
		return "easy"
	case 2:
		return "medium"
	case 3:
		return "hard"
	}
	return "medium"
}

const outputRules = `RULES:
1. Respond ONLY with JSON
2. Do not add any other explanation
3. Do not write any text outside the JSON
4. The response must be completely valid JSON

RESPONSE FORMAT:
{
  "questions": [
    {
      "question": "Question text",
      "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
      "correct_answer": "A) Option 1",
      "explanation": "Explanation",
      "hint": "Hint text"
    }
  ]
}`

// BuildPrompt renders the instruction sent to the generation service. It is a
// pure string construction: same inputs, same prompt.
func BuildPrompt(contents []string, difficulty, count int, kind Kind) string {
	contentText := strings.Join(contents, "\n\n")
	label := difficultyLabel(difficulty)

	if kind == KindNote {
		return fmt.Sprintf(`You are a quiz creation expert. Create %d multiple-choice questions based on the note contents below.

NOTE CONTENTS:
%s

Difficulty level: %d (%s)
Create questions about the topics covered in these notes. For each question provide:
- The question text (based on the information in the notes)
- 4 options (A, B, C, D)
- The correct answer
- A short explanation of why it is correct
- A hint that helps the student find the correct answer

%s`, count, contentText, difficulty, label, outputRules)
	}

	return fmt.Sprintf(`You are a quiz creation expert. Create %d multiple-choice questions similar to the existing questions below.

EXISTING QUESTIONS:
%s

Difficulty level: %d (%s)

Create %d new questions in the same style, on the same subject area and at the same difficulty level. For each question provide:
- The question text (in the style of the existing questions)
- 4 options (A, B, C, D)
- The correct answer
- A short explanation
- A hint that helps the student find the correct answer

%s`, count, contentText, difficulty, label, count, outputRules)
}

// culturalPrompt is static: cultural questions are generated without locating
// any stored content.
const culturalPrompt = `I want between 4 and 10 open-ended general-knowledge questions. Spread the questions evenly across different subjects instead of keeping them all on one topic, and prefer questions that broaden the reader's horizon.
For each question provide:
- The question text
- The correct answer

RULES:
1. Respond ONLY with JSON
2. Do not add any other explanation
3. Do not write any text outside the JSON
4. The response must be completely valid JSON

RESPONSE FORMAT:
{
  "questions": [
    {
      "question": "Open-ended question text",
      "answer": "The answer to the question, explained together with its reasoning"
    }
  ]
}`
