package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SLTNKCGZ/Hackathon-2025/db"
	"github.com/SLTNKCGZ/Hackathon-2025/models"
)

func GetNoteTerms(c *gin.Context) {
	getTerms(c, KindNote)
}

func GetQuestionTerms(c *gin.Context) {
	getTerms(c, KindQuestion)
}

func getTerms(c *gin.Context, kind string) {
	log.Println("GetTerms", kind)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, c.Param("lesson_id"), kind, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	cursor, err := db.DB.Collection(CollectionNameTerms).Find(ctx, bson.M{
		"kind":      kind,
		"lesson_id": lesson.ID.Hex(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	terms := []models.Term{}
	if err := cursor.All(ctx, &terms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, terms)
}

func GetNoteTerm(c *gin.Context) {
	getTerm(c, KindNote)
}

func GetQuestionTerm(c *gin.Context) {
	getTerm(c, KindQuestion)
}

func getTerm(c *gin.Context, kind string) {
	log.Println("GetTerm", kind)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	term, _, err := findOwnedTerm(ctx, c.Param("term_id"), kind, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	c.JSON(http.StatusOK, term)
}

func CreateNoteTerm(c *gin.Context) {
	createTerm(c, KindNote)
}

func CreateQuestionTerm(c *gin.Context) {
	createTerm(c, KindQuestion)
}

func createTerm(c *gin.Context, kind string) {
	log.Println("CreateTerm", kind)

	var req models.TermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, c.Param("lesson_id"), kind, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	// One term per title within a lesson.
	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"title":     req.Title,
		"kind":      kind,
		"lesson_id": lesson.ID.Hex(),
	}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Term already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	term := models.Term{
		ID:       primitive.NewObjectID(),
		Title:    req.Title,
		Kind:     kind,
		LessonID: lesson.ID.Hex(),
	}

	if _, err := db.DB.Collection(CollectionNameTerms).InsertOne(ctx, term); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, term)
}

func UpdateNoteTerm(c *gin.Context) {
	updateTerm(c, KindNote)
}

func UpdateQuestionTerm(c *gin.Context) {
	updateTerm(c, KindQuestion)
}

func updateTerm(c *gin.Context, kind string) {
	log.Println("UpdateTerm", kind)

	var req models.TermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	term, _, err := findOwnedTerm(ctx, c.Param("term_id"), kind, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	update := bson.M{"$set": bson.M{"title": req.Title}}
	if _, err := db.DB.Collection(CollectionNameTerms).UpdateOne(ctx, bson.M{"_id": term.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Term updated"})
}

func DeleteNoteTerm(c *gin.Context) {
	deleteTerm(c, KindNote)
}

func DeleteQuestionTerm(c *gin.Context) {
	deleteTerm(c, KindQuestion)
}

func deleteTerm(c *gin.Context, kind string) {
	log.Println("DeleteTerm", kind)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	term, _, err := findOwnedTerm(ctx, c.Param("term_id"), kind, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	if err := deleteTermArtifacts(ctx, term); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := db.DB.Collection(CollectionNameTerms).DeleteOne(ctx, bson.M{"_id": term.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Term deleted"})
}

// findOwnedTerm resolves a term and its lesson through the ownership chain
// (term -> lesson -> user).
func findOwnedTerm(ctx context.Context, termID, kind, userID string) (models.Term, models.Lesson, error) {
	var term models.Term
	var lesson models.Lesson

	objID, err := primitive.ObjectIDFromHex(termID)
	if err != nil {
		return term, lesson, mongo.ErrNoDocuments
	}

	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"_id":  objID,
		"kind": kind,
	}).Decode(&term)
	if err != nil {
		return term, lesson, err
	}

	lesson, err = findOwnedLesson(ctx, term.LessonID, kind, userID)
	return term, lesson, err
}

// deleteTermArtifacts removes the notes or questions under a term, including
// stored question images.
func deleteTermArtifacts(ctx context.Context, term models.Term) error {
	termID := term.ID.Hex()

	if term.Kind == KindNote {
		_, err := db.DB.Collection(CollectionNameNotes).DeleteMany(ctx, bson.M{"term_id": termID})
		return err
	}

	cursor, err := db.DB.Collection(CollectionNameQuestions).Find(ctx, bson.M{"term_id": termID})
	if err != nil {
		return err
	}
	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return err
	}
	for _, question := range questions {
		if err := Store.Remove(question.ImagePath); err != nil {
			log.Println("Error removing image:", question.ImagePath, err)
		}
	}

	_, err = db.DB.Collection(CollectionNameQuestions).DeleteMany(ctx, bson.M{"term_id": termID})
	return err
}
