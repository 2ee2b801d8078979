package quiz

import "testing"

const wellFormedQuiz = `{
  "questions": [
    {"question": "What does the mitochondria produce?", "options": ["A) ATP", "B) DNA", "C) RNA", "D) Lipids"], "correct_answer": "A) ATP", "explanation": "ATP is produced in the mitochondria.", "hint": "Think energy."},
    {"question": "What does the nucleus contain?", "options": ["A) ATP", "B) DNA", "C) Chlorophyll", "D) Cellulose"], "correct_answer": "B) DNA", "explanation": "The nucleus contains DNA.", "hint": "Genetic material."},
    {"question": "Which organelle is the powerhouse of the cell?", "options": ["A) Mitochondria", "B) Ribosome", "C) Golgi", "D) Lysosome"], "correct_answer": "A) Mitochondria"}
  ]
}`

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"questions": []}`, `{"questions": []}`},
		{"json fence", "```json\n{\"questions\": []}\n```", `{"questions": []}`},
		{"bare fence", "```\n{\"questions\": []}\n```", `{"questions": []}`},
		{"opening fence only", "```json\n{\"questions\": []}", `{"questions": []}`},
		{"surrounding whitespace", "  \n{\"questions\": []}\n  ", `{"questions": []}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripFences(tt.input)
			if got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Stripping must be idempotent.
			if again := stripFences(got); again != got {
				t.Errorf("stripFences not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParseQuizWellFormed(t *testing.T) {
	resp := ParseQuiz(wellFormedQuiz, 3, 2, KindNote)

	if len(resp.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(resp.Questions))
	}
	if resp.TotalTime != 6 {
		t.Errorf("expected total_time 6, got %d", resp.TotalTime)
	}
	if resp.Difficulty != 2 {
		t.Errorf("expected difficulty 2, got %d", resp.Difficulty)
	}
	if resp.Type != KindNote {
		t.Errorf("expected type %q, got %q", KindNote, resp.Type)
	}
	if resp.Questions[0].CorrectAnswer != "A) ATP" {
		t.Errorf("unexpected correct answer %q", resp.Questions[0].CorrectAnswer)
	}
	// Missing optional fields default to empty instead of failing the batch.
	if resp.Questions[2].Explanation != "" || resp.Questions[2].Hint != "" {
		t.Errorf("expected empty optional fields, got %+v", resp.Questions[2])
	}
}

func TestParseQuizFenced(t *testing.T) {
	resp := ParseQuiz("```json\n"+wellFormedQuiz+"\n```", 3, 1, KindQuestion)
	if len(resp.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(resp.Questions))
	}
	if resp.Questions[0].Explanation == fallbackExplanation {
		t.Error("fenced but well-formed output must not fall back")
	}
}

func TestParseQuizFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain text", "Sorry, I can't help with that."},
		{"truncated json", `{"questions": [{"question": "Wh`},
		{"empty response", ""},
		{"valid json without questions", `{"foo": 1}`},
		{"valid json empty questions", `{"questions": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ParseQuiz(tt.raw, 4, 3, KindQuestion)
			if len(resp.Questions) != 4 {
				t.Fatalf("expected exactly 4 fallback questions, got %d", len(resp.Questions))
			}
			if resp.TotalTime != 8 {
				t.Errorf("expected total_time 8, got %d", resp.TotalTime)
			}
			for i, q := range resp.Questions {
				if q.Question == "" || q.CorrectAnswer == "" || q.Explanation == "" || q.Hint == "" {
					t.Errorf("fallback question %d is partially populated: %+v", i, q)
				}
				if len(q.Options) != 4 {
					t.Errorf("fallback question %d has %d options, want 4", i, len(q.Options))
				}
				if q.Explanation != fallbackExplanation {
					t.Errorf("fallback question %d has explanation %q", i, q.Explanation)
				}
			}
		})
	}
}

func TestParseQuizTotalTimeFollowsRequestedCount(t *testing.T) {
	// total_time tracks the requested count even when the service
	// over- or under-produces.
	resp := ParseQuiz(wellFormedQuiz, 5, 2, KindNote)
	if resp.TotalTime != 10 {
		t.Errorf("expected total_time 10, got %d", resp.TotalTime)
	}
	if len(resp.Questions) != 3 {
		t.Errorf("expected the 3 produced questions to pass through, got %d", len(resp.Questions))
	}
}

func TestParseCultural(t *testing.T) {
	resp := ParseCultural(`{"questions": [{"question": "Who painted the Mona Lisa?", "answer": "Leonardo da Vinci, during the Italian Renaissance."}]}`)
	if len(resp.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(resp.Questions))
	}
	if resp.Questions[0].Answer == "" {
		t.Error("expected answer to be populated")
	}
}

func TestParseCulturalFallback(t *testing.T) {
	resp := ParseCultural("not json at all")
	if len(resp.Questions) != culturalFallbackCount {
		t.Fatalf("expected %d fallback questions, got %d", culturalFallbackCount, len(resp.Questions))
	}
	for i, q := range resp.Questions {
		if q.Question == "" || q.Answer == "" {
			t.Errorf("fallback question %d is partially populated: %+v", i, q)
		}
	}
}
