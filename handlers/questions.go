package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SLTNKCGZ/Hackathon-2025/db"
	"github.com/SLTNKCGZ/Hackathon-2025/models"
)

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type createQuestionRequest struct {
	Difficulty int    `form:"difficulty_category" binding:"required"`
	Note       string `form:"note"`
	LessonID   string `form:"lesson_id" binding:"required"`
	TermID     string `form:"term_id" binding:"required"`
}

func CreateQuestion(c *gin.Context) {
	log.Println("CreateQuestion")

	var req createQuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Difficulty must be 1 (easy), 2 (medium) or 3 (hard)"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, req.LessonID, KindQuestion, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"_id":       mustObjectID(req.TermID),
		"kind":      KindQuestion,
		"lesson_id": lesson.ID.Hex(),
	}).Err()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	imagePath, err := saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := models.Question{
		ID:         primitive.NewObjectID(),
		ImagePath:  imagePath,
		Note:       req.Note,
		Difficulty: req.Difficulty,
		TermID:     req.TermID,
	}

	if _, err := db.DB.Collection(CollectionNameQuestions).InsertOne(ctx, question); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// saveUploadedImage validates the "image" form file and stores it under a
// generated name, returning the public path.
func saveUploadedImage(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", fmt.Errorf("image file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("error opening upload: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("error reading upload: %v", err)
	}

	return Store.Save(uuid.New().String()+ext, data, contentType)
}

func GetQuestionsByTerm(c *gin.Context) {
	log.Println("GetQuestionsByTerm")

	difficulty, err := strconv.Atoi(c.Param("difficulty_id"))
	if err != nil || difficulty < 1 || difficulty > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Difficulty must be 1, 2 or 3"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, c.Param("lesson_id"), KindQuestion, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	termID := c.Param("term_id")
	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"_id":       mustObjectID(termID),
		"kind":      KindQuestion,
		"lesson_id": lesson.ID.Hex(),
	}).Err()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	cursor, err := db.DB.Collection(CollectionNameQuestions).Find(ctx, bson.M{
		"term_id":             termID,
		"difficulty_category": difficulty,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, questions)
}

func UpdateQuestion(c *gin.Context) {
	log.Println("UpdateQuestion")

	var req models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	question, err := findOwnedQuestion(ctx, c.Param("question_id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	set := bson.M{}
	if req.Note != "" {
		set["note"] = req.Note
	}
	if req.Difficulty != 0 {
		if req.Difficulty < 1 || req.Difficulty > 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Difficulty must be 1, 2 or 3"})
			return
		}
		set["difficulty_category"] = req.Difficulty
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if _, err := db.DB.Collection(CollectionNameQuestions).UpdateOne(ctx, bson.M{"_id": question.ID}, bson.M{"$set": set}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question updated"})
}

func DeleteQuestion(c *gin.Context) {
	log.Println("DeleteQuestion")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	question, err := findOwnedQuestion(ctx, c.Param("question_id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if err := Store.Remove(question.ImagePath); err != nil {
		log.Println("Error removing image:", question.ImagePath, err)
	}

	if _, err := db.DB.Collection(CollectionNameQuestions).DeleteOne(ctx, bson.M{"_id": question.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

func GetQuestionStatistics(c *gin.Context) {
	log.Println("GetQuestionStatistics")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lessonCount, termIDs, err := userTermIDs(ctx, KindQuestion, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	counts := map[string]int64{}
	for difficulty, label := range map[int]string{1: "easy", 2: "medium", 3: "hard"} {
		n, err := db.DB.Collection(CollectionNameQuestions).CountDocuments(ctx, bson.M{
			"term_id":             bson.M{"$in": termIDs},
			"difficulty_category": difficulty,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		counts[label] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"total_questions": counts["easy"] + counts["medium"] + counts["hard"],
		"by_difficulty":   counts,
		"total_lessons":   lessonCount,
		"total_terms":     len(termIDs),
	})
}

type importPDFRequest struct {
	Difficulty int    `form:"difficulty_category" binding:"required"`
	LessonID   string `form:"lesson_id" binding:"required"`
	TermID     string `form:"term_id" binding:"required"`
}

// ImportQuestionPDF turns an uploaded PDF of photographed questions into one
// stored question per page.
func ImportQuestionPDF(c *gin.Context) {
	log.Println("ImportQuestionPDF")

	var req importPDFRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Difficulty must be 1 (easy), 2 (medium) or 3 (hard)"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	lesson, err := findOwnedLesson(ctx, req.LessonID, KindQuestion, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	err = db.DB.Collection(CollectionNameTerms).FindOne(ctx, bson.M{
		"_id":       mustObjectID(req.TermID),
		"kind":      KindQuestion,
		"lesson_id": lesson.ID.Hex(),
	}).Err()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Term not found"})
		return
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF file is required"})
		return
	}
	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a PDF"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tmpDir, err := os.MkdirTemp("", "fitz")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "document.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error opening PDF"})
		return
	}
	defer doc.Close()

	created := []models.Question{}
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error rendering page %d", n+1)})
			return
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		imagePath, err := Store.Save(uuid.New().String()+".png", buf.Bytes(), "image/png")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		question := models.Question{
			ID:         primitive.NewObjectID(),
			ImagePath:  imagePath,
			Note:       fmt.Sprintf("Imported from %s, page %d", fileHeader.Filename, n+1),
			Difficulty: req.Difficulty,
			TermID:     req.TermID,
		}
		if _, err := db.DB.Collection(CollectionNameQuestions).InsertOne(ctx, question); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		created = append(created, question)
	}

	log.Println("Imported", len(created), "questions from PDF")

	c.JSON(http.StatusCreated, gin.H{"imported": len(created), "questions": created})
}

// CheckOCR reports whether the text extraction engine is usable.
func CheckOCR(c *gin.Context) {
	log.Println("CheckOCR")

	if err := Pipeline.Engine.Available(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":          "error",
			"tesseract_found": false,
			"error":           err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"tesseract_found": true,
		"version":         Pipeline.Engine.Version(),
	})
}

// findOwnedQuestion resolves a question through the chain
// question -> term -> lesson -> user.
func findOwnedQuestion(ctx context.Context, questionID, userID string) (models.Question, error) {
	var question models.Question

	objID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return question, mongo.ErrNoDocuments
	}

	if err := db.DB.Collection(CollectionNameQuestions).FindOne(ctx, bson.M{"_id": objID}).Decode(&question); err != nil {
		return question, err
	}

	if _, _, err := findOwnedTerm(ctx, question.TermID, KindQuestion, userID); err != nil {
		return question, mongo.ErrNoDocuments
	}
	return question, nil
}
