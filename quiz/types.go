package quiz

// Kind selects which prompt template and content source feed the pipeline.
type Kind string

const (
	KindNote     Kind = "note"
	KindQuestion Kind = "question"
)

// MinutesPerQuestion is the time budget used for the total_time estimate.
const MinutesPerQuestion = 2

// Request describes one quiz-generation run.
type Request struct {
	Kind       Kind
	LessonID   string
	TermID     string
	Difficulty int
	Count      int
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Hint          string   `json:"hint,omitempty"`
}

type QuizResponse struct {
	Questions  []QuizQuestion `json:"questions"`
	TotalTime  int            `json:"total_time"`
	Difficulty int            `json:"difficulty"`
	Type       Kind           `json:"type"`
}

// CulturalQuestion is an open-ended general-knowledge Q&A pair.
type CulturalQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type CulturalResponse struct {
	Questions []CulturalQuestion `json:"questions"`
}
