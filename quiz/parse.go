package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a markdown code fence the generation service sometimes
// wraps its output in, despite being told not to. Safe on input without
// fences, and applying it twice gives the same result as applying it once.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseQuiz turns the raw generation output into a QuizResponse. It never
// fails: when the output is malformed or does not match the contract it
// synthesizes exactly count placeholder questions instead, so an off-contract
// AI response never turns into a hard failure for the whole request.
func ParseQuiz(raw string, count, difficulty int, kind Kind) *QuizResponse {
	cleaned := stripFences(raw)

	var decoded struct {
		Questions []struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correct_answer"`
			Explanation   string   `json:"explanation"`
			Hint          string   `json:"hint"`
		} `json:"questions"`
	}

	questions := make([]QuizQuestion, 0, count)
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil || len(decoded.Questions) == 0 {
		questions = fallbackQuestions(count, kind)
	} else {
		for _, q := range decoded.Questions {
			options := q.Options
			if options == nil {
				options = []string{}
			}
			questions = append(questions, QuizQuestion{
				Question:      q.Question,
				Options:       options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Hint:          q.Hint,
			})
		}
	}

	return &QuizResponse{
		Questions:  questions,
		TotalTime:  count * MinutesPerQuestion,
		Difficulty: difficulty,
		Type:       kind,
	}
}

const fallbackExplanation = "The AI response could not be parsed; this is a fallback question."

func fallbackQuestions(count int, kind Kind) []QuizQuestion {
	questions := make([]QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		var text string
		if kind == KindNote {
			text = fmt.Sprintf("Question %d about the topics covered in these notes", i+1)
		} else {
			text = fmt.Sprintf("Question %d in the style of the existing questions", i+1)
		}
		questions = append(questions, QuizQuestion{
			Question: text,
			Options: []string{
				"A) First option",
				"B) Second option",
				"C) Third option",
				"D) Fourth option",
			},
			CorrectAnswer: "A) First option",
			Explanation:   fallbackExplanation,
			Hint:          "No hint is available for this question.",
		})
	}
	return questions
}

const culturalFallbackCount = 5

// ParseCultural is the open-ended sibling of ParseQuiz with the same recovery
// policy; the fallback set has a fixed size since no count is requested.
func ParseCultural(raw string) *CulturalResponse {
	cleaned := stripFences(raw)

	var decoded struct {
		Questions []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"questions"`
	}

	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil || len(decoded.Questions) == 0 {
		questions := make([]CulturalQuestion, 0, culturalFallbackCount)
		for i := 0; i < culturalFallbackCount; i++ {
			questions = append(questions, CulturalQuestion{
				Question: fmt.Sprintf("General knowledge question %d", i+1),
				Answer:   "No answer is available for this question.",
			})
		}
		return &CulturalResponse{Questions: questions}
	}

	questions := make([]CulturalQuestion, 0, len(decoded.Questions))
	for _, q := range decoded.Questions {
		questions = append(questions, CulturalQuestion{Question: q.Question, Answer: q.Answer})
	}
	return &CulturalResponse{Questions: questions}
}
