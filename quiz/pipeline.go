package quiz

import (
	"context"
	"log"
)

// ContentStore resolves a user's study artifacts. Every lookup filters by the
// full ownership chain (user -> lesson -> term -> artifact), never by id alone.
type ContentStore interface {
	// FindLesson returns ErrNotFound when the lesson does not exist or does
	// not belong to the user.
	FindLesson(ctx context.Context, kind Kind, lessonID, userID string) error
	// FindTerm returns ErrNotFound when the term does not exist or does not
	// belong to the lesson.
	FindTerm(ctx context.Context, kind Kind, termID, lessonID string) error
	NoteContents(ctx context.Context, termID string) ([]string, error)
	QuestionImages(ctx context.Context, termID string) ([]string, error)
}

// Pipeline generates quizzes from a user's study material. It is stateless
// across requests: every invocation is locate -> extract (question kind only)
// -> prompt -> generate -> parse.
type Pipeline struct {
	Store  ContentStore
	Files  FileStore
	Engine Engine
	Client TextGenerator
}

// CreateQuiz runs the full pipeline for one request.
func (p *Pipeline) CreateQuiz(ctx context.Context, userID string, req Request) (*QuizResponse, error) {
	if req.Difficulty < 1 || req.Difficulty > 3 {
		return nil, ErrInvalidArgument
	}
	if req.Count < 1 {
		return nil, ErrInvalidArgument
	}

	contents, err := p.locate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if req.Kind == KindQuestion {
		if err := p.Engine.Available(); err != nil {
			return nil, ErrEngineUnavailable
		}
		contents = ExtractBatch(ctx, p.Engine, p.Files, contents)
	}

	prompt := BuildPrompt(contents, req.Difficulty, req.Count, req.Kind)

	raw, err := p.Client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	log.Println("Generation response length:", len(raw))

	return ParseQuiz(raw, req.Count, req.Difficulty, req.Kind), nil
}

// locate authorizes the lesson/term chain and returns note texts for the note
// kind, or stored image paths for the question kind.
func (p *Pipeline) locate(ctx context.Context, userID string, req Request) ([]string, error) {
	if err := p.Store.FindLesson(ctx, req.Kind, req.LessonID, userID); err != nil {
		return nil, err
	}
	if err := p.Store.FindTerm(ctx, req.Kind, req.TermID, req.LessonID); err != nil {
		return nil, err
	}

	var contents []string
	var err error
	if req.Kind == KindNote {
		contents, err = p.Store.NoteContents(ctx, req.TermID)
	} else {
		contents, err = p.Store.QuestionImages(ctx, req.TermID)
	}
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, ErrEmptyContent
	}
	return contents, nil
}

// CulturalQuestions generates open-ended general-knowledge questions from the
// static prompt; no stored content is involved.
func (p *Pipeline) CulturalQuestions(ctx context.Context) (*CulturalResponse, error) {
	raw, err := p.Client.Generate(ctx, culturalPrompt)
	if err != nil {
		return nil, err
	}
	return ParseCultural(raw), nil
}
