package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeStore keys lessons by (kind, lesson id, user id) and terms by
// (kind, term id, lesson id), mirroring the ownership-chain filters of the
// real store.
type fakeStore struct {
	lessons   map[string]bool
	terms     map[string]bool
	notes     map[string][]string
	questions map[string][]string
}

func (s *fakeStore) FindLesson(ctx context.Context, kind Kind, lessonID, userID string) error {
	if !s.lessons[string(kind)+"/"+lessonID+"/"+userID] {
		return ErrNotFound
	}
	return nil
}

func (s *fakeStore) FindTerm(ctx context.Context, kind Kind, termID, lessonID string) error {
	if !s.terms[string(kind)+"/"+termID+"/"+lessonID] {
		return ErrNotFound
	}
	return nil
}

func (s *fakeStore) NoteContents(ctx context.Context, termID string) ([]string, error) {
	return s.notes[termID], nil
}

func (s *fakeStore) QuestionImages(ctx context.Context, termID string) ([]string, error) {
	return s.questions[termID], nil
}

// stubGenerator records every prompt it is asked to complete.
type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func biologyStore() *fakeStore {
	return &fakeStore{
		lessons: map[string]bool{"note/biology/alice": true},
		terms:   map[string]bool{"note/cells/biology": true},
		notes: map[string][]string{
			"cells": {"Mitochondria produce ATP.", "The nucleus contains DNA."},
		},
	}
}

func noteRequest() Request {
	return Request{Kind: KindNote, LessonID: "biology", TermID: "cells", Difficulty: 2, Count: 3}
}

func TestCreateQuizFromNotes(t *testing.T) {
	gen := &stubGenerator{response: wellFormedQuiz}
	p := &Pipeline{Store: biologyStore(), Client: gen}

	resp, err := p.CreateQuiz(context.Background(), "alice", noteRequest())
	if err != nil {
		t.Fatalf("CreateQuiz returned error: %v", err)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected exactly one generation call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Mitochondria produce ATP.") || !strings.Contains(prompt, "The nucleus contains DNA.") {
		t.Error("prompt does not embed both note texts")
	}
	if !strings.Contains(prompt, "medium") {
		t.Error("prompt does not carry the difficulty label")
	}

	if len(resp.Questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(resp.Questions))
	}
	if resp.TotalTime != 6 {
		t.Errorf("expected total_time 6, got %d", resp.TotalTime)
	}
	if resp.Type != KindNote {
		t.Errorf("expected type note, got %q", resp.Type)
	}
}

func TestCreateQuizFallsBackOnPlainText(t *testing.T) {
	gen := &stubGenerator{response: "I am unable to produce JSON today."}
	p := &Pipeline{Store: biologyStore(), Client: gen}

	resp, err := p.CreateQuiz(context.Background(), "alice", noteRequest())
	if err != nil {
		t.Fatalf("CreateQuiz returned error: %v", err)
	}
	if len(resp.Questions) != 3 {
		t.Fatalf("expected 3 fallback questions, got %d", len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if q.Explanation != fallbackExplanation {
			t.Errorf("expected fallback explanation, got %q", q.Explanation)
		}
	}
	if resp.TotalTime != 6 {
		t.Errorf("expected total_time 6, got %d", resp.TotalTime)
	}
}

func TestCreateQuizOwnershipIsolation(t *testing.T) {
	// Bob must not reach Alice's lesson even though the id matches.
	gen := &stubGenerator{response: wellFormedQuiz}
	p := &Pipeline{Store: biologyStore(), Client: gen}

	_, err := p.CreateQuiz(context.Background(), "bob", noteRequest())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generation must not be called for foreign content, got %d calls", len(gen.prompts))
	}
}

func TestCreateQuizTermOutsideLesson(t *testing.T) {
	store := biologyStore()
	store.terms = map[string]bool{"note/cells/chemistry": true}
	p := &Pipeline{Store: store, Client: &stubGenerator{response: wellFormedQuiz}}

	_, err := p.CreateQuiz(context.Background(), "alice", noteRequest())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for term outside the lesson, got %v", err)
	}
}

func TestCreateQuizEmptyContent(t *testing.T) {
	store := biologyStore()
	store.notes = map[string][]string{}
	gen := &stubGenerator{response: wellFormedQuiz}
	p := &Pipeline{Store: store, Client: gen}

	_, err := p.CreateQuiz(context.Background(), "alice", noteRequest())
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generation must not be called for an empty term, got %d calls", len(gen.prompts))
	}
}

func TestCreateQuizInvalidArguments(t *testing.T) {
	p := &Pipeline{Store: biologyStore(), Client: &stubGenerator{response: wellFormedQuiz}}

	tests := []struct {
		name       string
		difficulty int
		count      int
	}{
		{"difficulty too low", 0, 3},
		{"difficulty too high", 4, 3},
		{"zero count", 2, 0},
		{"negative count", 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := noteRequest()
			req.Difficulty = tt.difficulty
			req.Count = tt.count
			_, err := p.CreateQuiz(context.Background(), "alice", req)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestCreateQuizFromQuestionImages(t *testing.T) {
	store := &fakeStore{
		lessons: map[string]bool{"question/math/alice": true},
		terms:   map[string]bool{"question/algebra/math": true},
		questions: map[string][]string{
			"algebra": {"/uploads/q1.png", "/uploads/q2.png"},
		},
	}
	engine := &fakeEngine{
		texts: map[string]string{
			"/uploads/q1.png": "Solve x + 2 = 5.",
		},
		errs: map[string]error{
			"/uploads/q2.png": errors.New("decode failed"),
		},
	}
	gen := &stubGenerator{response: wellFormedQuiz}
	p := &Pipeline{Store: store, Files: &fakeFiles{}, Engine: engine, Client: gen}

	req := Request{Kind: KindQuestion, LessonID: "math", TermID: "algebra", Difficulty: 1, Count: 2}
	resp, err := p.CreateQuiz(context.Background(), "alice", req)
	if err != nil {
		t.Fatalf("CreateQuiz returned error: %v", err)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gen.prompts))
	}
	// The readable image feeds real text, the corrupt one its sentinel; the
	// batch still reaches the prompt as a whole.
	if !strings.Contains(gen.prompts[0], "Solve x + 2 = 5.") {
		t.Error("prompt does not contain extracted text")
	}
	if !strings.Contains(gen.prompts[0], extractErrorPrefix) {
		t.Error("prompt does not contain the per-image failure sentinel")
	}
	if resp.Type != KindQuestion {
		t.Errorf("expected type question, got %q", resp.Type)
	}
}

type downEngine struct{ fakeEngine }

func (e *downEngine) Available() error { return ErrEngineUnavailable }

func TestCreateQuizEngineUnavailable(t *testing.T) {
	store := &fakeStore{
		lessons:   map[string]bool{"question/math/alice": true},
		terms:     map[string]bool{"question/algebra/math": true},
		questions: map[string][]string{"algebra": {"/uploads/q1.png"}},
	}
	gen := &stubGenerator{response: wellFormedQuiz}
	p := &Pipeline{Store: store, Files: &fakeFiles{}, Engine: &downEngine{}, Client: gen}

	req := Request{Kind: KindQuestion, LessonID: "math", TermID: "algebra", Difficulty: 1, Count: 2}
	_, err := p.CreateQuiz(context.Background(), "alice", req)
	if !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generation must not be called when the engine is down, got %d calls", len(gen.prompts))
	}
}

func TestCreateQuizGenerationFailurePropagates(t *testing.T) {
	for _, sentinel := range []error{ErrConfigMissing, ErrServiceUnreachable, ErrServiceError} {
		p := &Pipeline{Store: biologyStore(), Client: &stubGenerator{err: sentinel}}
		_, err := p.CreateQuiz(context.Background(), "alice", noteRequest())
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v to propagate, got %v", sentinel, err)
		}
	}
}

func TestCulturalQuestions(t *testing.T) {
	gen := &stubGenerator{response: `{"questions": [{"question": "Q", "answer": "A"}]}`}
	p := &Pipeline{Client: gen}

	resp, err := p.CulturalQuestions(context.Background())
	if err != nil {
		t.Fatalf("CulturalQuestions returned error: %v", err)
	}
	if len(resp.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(resp.Questions))
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "general-knowledge") {
		t.Error("expected the static cultural prompt to be sent")
	}
}
