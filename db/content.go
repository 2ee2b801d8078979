package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SLTNKCGZ/Hackathon-2025/quiz"
)

// Content resolves study artifacts for the quiz pipeline. Every lookup
// filters by the ownership chain (user -> lesson -> term -> artifact), never
// by id alone, so content can not leak across users.
type Content struct{}

const contentQueryTimeout = 10 * time.Second

func (Content) FindLesson(ctx context.Context, kind quiz.Kind, lessonID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, contentQueryTimeout)
	defer cancel()

	lessonObjID, err := primitive.ObjectIDFromHex(lessonID)
	if err != nil {
		return quiz.ErrNotFound
	}

	err = DB.Collection("lessons").FindOne(ctx, bson.M{
		"_id":     lessonObjID,
		"kind":    string(kind),
		"user_id": userID,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return quiz.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error finding lesson: %v", err)
	}
	return nil
}

func (Content) FindTerm(ctx context.Context, kind quiz.Kind, termID, lessonID string) error {
	ctx, cancel := context.WithTimeout(ctx, contentQueryTimeout)
	defer cancel()

	termObjID, err := primitive.ObjectIDFromHex(termID)
	if err != nil {
		return quiz.ErrNotFound
	}

	err = DB.Collection("terms").FindOne(ctx, bson.M{
		"_id":       termObjID,
		"kind":      string(kind),
		"lesson_id": lessonID,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return quiz.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error finding term: %v", err)
	}
	return nil
}

func (Content) NoteContents(ctx context.Context, termID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, contentQueryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := DB.Collection("notes").Find(ctx, bson.M{"term_id": termID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding notes: %v", err)
	}
	defer cursor.Close(ctx)

	var contents []string
	for cursor.Next(ctx) {
		var note struct {
			Content string `bson:"content"`
		}
		if err := cursor.Decode(&note); err != nil {
			return nil, fmt.Errorf("error decoding note: %v", err)
		}
		contents = append(contents, note.Content)
	}
	return contents, cursor.Err()
}

func (Content) QuestionImages(ctx context.Context, termID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, contentQueryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := DB.Collection("questions").Find(ctx, bson.M{"term_id": termID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding questions: %v", err)
	}
	defer cursor.Close(ctx)

	var paths []string
	for cursor.Next(ctx) {
		var question struct {
			ImagePath string `bson:"image_path"`
		}
		if err := cursor.Decode(&question); err != nil {
			return nil, fmt.Errorf("error decoding question: %v", err)
		}
		paths = append(paths, question.ImagePath)
	}
	return paths, cursor.Err()
}
