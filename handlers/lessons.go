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

const CollectionNameLessons = "lessons"
const CollectionNameTerms = "terms"
const CollectionNameNotes = "notes"
const CollectionNameQuestions = "questions"

const KindNote = "note"
const KindQuestion = "question"

func GetNoteLessons(c *gin.Context) {
	getLessons(c, KindNote)
}

func GetQuestionLessons(c *gin.Context) {
	getLessons(c, KindQuestion)
}

func getLessons(c *gin.Context, kind string) {
	log.Println("GetLessons", kind)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.DB.Collection(CollectionNameLessons).Find(ctx, bson.M{
		"kind":    kind,
		"user_id": c.GetString("userID"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lessons := []models.Lesson{}
	if err := cursor.All(ctx, &lessons); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lessons)
}

func CreateNoteLesson(c *gin.Context) {
	createLesson(c, KindNote)
}

func CreateQuestionLesson(c *gin.Context) {
	createLesson(c, KindQuestion)
}

func createLesson(c *gin.Context, kind string) {
	log.Println("CreateLesson", kind)

	var req models.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userID := c.GetString("userID")

	// One lesson per title within a kind and user.
	err := db.DB.Collection(CollectionNameLessons).FindOne(ctx, bson.M{
		"title":   req.Title,
		"kind":    kind,
		"user_id": userID,
	}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lesson := models.Lesson{
		ID:     primitive.NewObjectID(),
		Title:  req.Title,
		Kind:   kind,
		UserID: userID,
	}

	if _, err := db.DB.Collection(CollectionNameLessons).InsertOne(ctx, lesson); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func UpdateNoteLesson(c *gin.Context) {
	updateLesson(c, KindNote)
}

func UpdateQuestionLesson(c *gin.Context) {
	updateLesson(c, KindQuestion)
}

func updateLesson(c *gin.Context, kind string) {
	log.Println("UpdateLesson", kind)

	var req models.LessonRequest
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

	update := bson.M{"$set": bson.M{"title": req.Title}}
	if _, err := db.DB.Collection(CollectionNameLessons).UpdateOne(ctx, bson.M{"_id": lesson.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated"})
}

func DeleteNoteLesson(c *gin.Context) {
	deleteLesson(c, KindNote)
}

func DeleteQuestionLesson(c *gin.Context) {
	deleteLesson(c, KindQuestion)
}

func deleteLesson(c *gin.Context, kind string) {
	log.Println("DeleteLesson", kind)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, c.Param("lesson_id"), kind, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if err := deleteLessonTree(ctx, lesson); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}

// findOwnedLesson resolves a lesson by id, kind and owner. A lesson that
// exists but belongs to someone else is indistinguishable from a missing one.
func findOwnedLesson(ctx context.Context, lessonID, kind, userID string) (models.Lesson, error) {
	var lesson models.Lesson

	objID, err := primitive.ObjectIDFromHex(lessonID)
	if err != nil {
		return lesson, mongo.ErrNoDocuments
	}

	err = db.DB.Collection(CollectionNameLessons).FindOne(ctx, bson.M{
		"_id":     objID,
		"kind":    kind,
		"user_id": userID,
	}).Decode(&lesson)
	return lesson, err
}

// deleteLessonTree removes a lesson with its terms and their artifacts.
func deleteLessonTree(ctx context.Context, lesson models.Lesson) error {
	cursor, err := db.DB.Collection(CollectionNameTerms).Find(ctx, bson.M{"lesson_id": lesson.ID.Hex()})
	if err != nil {
		return err
	}
	var terms []models.Term
	if err := cursor.All(ctx, &terms); err != nil {
		return err
	}

	for _, term := range terms {
		if err := deleteTermArtifacts(ctx, term); err != nil {
			return err
		}
	}

	if _, err := db.DB.Collection(CollectionNameTerms).DeleteMany(ctx, bson.M{"lesson_id": lesson.ID.Hex()}); err != nil {
		return err
	}
	_, err = db.DB.Collection(CollectionNameLessons).DeleteOne(ctx, bson.M{"_id": lesson.ID})
	return err
}
