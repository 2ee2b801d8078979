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

type createNoteRequest struct {
	Content  string `form:"content" json:"content" binding:"required"`
	LessonID string `form:"lesson_id" json:"lesson_id" binding:"required"`
	TermID   string `form:"term_id" json:"term_id" binding:"required"`
}

func CreateNote(c *gin.Context) {
	log.Println("CreateNote")

	var req createNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, req.LessonID, KindNote, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"_id":       mustObjectID(req.TermID),
		"kind":      KindNote,
		"lesson_id": lesson.ID.Hex(),
	}).Err()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	note := models.Note{
		ID:      primitive.NewObjectID(),
		Content: req.Content,
		TermID:  req.TermID,
	}

	if _, err := db.DB.Collection(CollectionNameNotes).InsertOne(ctx, note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func GetNotes(c *gin.Context) {
	log.Println("GetNotes")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, c.Param("lesson_id"), KindNote, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	termID := c.Param("term_id")
	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"_id":       mustObjectID(termID),
		"kind":      KindNote,
		"lesson_id": lesson.ID.Hex(),
	}).Err()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	cursor, err := db.DB.Collection(CollectionNameNotes).Find(ctx, bson.M{"term_id": termID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	notes := []models.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, notes)
}

func UpdateNote(c *gin.Context) {
	log.Println("UpdateNote")

	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	note, err := findOwnedNote(ctx, c.Param("note_id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	update := bson.M{"$set": bson.M{"content": req.Content}}
	if _, err := db.DB.Collection(CollectionNameNotes).UpdateOne(ctx, bson.M{"_id": note.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note updated"})
}

func DeleteNote(c *gin.Context) {
	log.Println("DeleteNote")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	note, err := findOwnedNote(ctx, c.Param("note_id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	if _, err := db.DB.Collection(CollectionNameNotes).DeleteOne(ctx, bson.M{"_id": note.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

func GetNoteStatistics(c *gin.Context) {
	log.Println("GetNoteStatistics")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lessonCount, termIDs, err := userTermIDs(ctx, KindNote, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total, err := db.DB.Collection(CollectionNameNotes).CountDocuments(ctx, bson.M{
		"term_id": bson.M{"$in": termIDs},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_notes":   total,
		"total_lessons": lessonCount,
		"total_terms":   len(termIDs),
	})
}

// findOwnedNote resolves a note through the chain note -> term -> lesson -> user.
func findOwnedNote(ctx context.Context, noteID, userID string) (models.Note, error) {
	var note models.Note

	objID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return note, mongo.ErrNoDocuments
	}

	if err := db.DB.Collection(CollectionNameNotes).FindOne(ctx, bson.M{"_id": objID}).Decode(&note); err != nil {
		return note, err
	}

	if _, _, err := findOwnedTerm(ctx, note.TermID, KindNote, userID); err != nil {
		return note, mongo.ErrNoDocuments
	}
	return note, nil
}

// userTermIDs collects the ids of every term of the given kind the user owns,
// along with the lesson count.
func userTermIDs(ctx context.Context, kind, userID string) (int, []string, error) {
	cursor, err := db.DB.Collection(CollectionNameLessons).Find(ctx, bson.M{
		"kind":    kind,
		"user_id": userID,
	})
	if err != nil {
		return 0, nil, err
	}
	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return 0, nil, err
	}

	lessonIDs := make([]string, 0, len(lessons))
	for _, lesson := range lessons {
		lessonIDs = append(lessonIDs, lesson.ID.Hex())
	}

	cursor, err = db.DB.Collection(CollectionNameTerms).Find(ctx, bson.M{
		"kind":      kind,
		"lesson_id": bson.M{"$in": lessonIDs},
	})
	if err != nil {
		return 0, nil, err
	}
	var terms []models.Term
	if err := cursor.All(ctx, &terms); err != nil {
		return 0, nil, err
	}

	termIDs := make([]string, 0, len(terms))
	for _, term := range terms {
		termIDs = append(termIDs, term.ID.Hex())
	}
	return len(lessons), termIDs, nil
}

// mustObjectID parses an id, returning the zero ObjectID for bad input so the
// following lookup misses instead of erroring.
func mustObjectID(id string) primitive.ObjectID {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objID
}
