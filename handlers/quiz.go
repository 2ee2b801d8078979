package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SLTNKCGZ/Hackathon-2025/quiz"
	"github.com/SLTNKCGZ/Hackathon-2025/storage"
)

// Pipeline and Store are wired in main before the routes are registered.
var Pipeline *quiz.Pipeline
var Store storage.Store

func CreateNoteQuiz(c *gin.Context) {
	createQuiz(c, quiz.KindNote)
}

func CreateQuestionQuiz(c *gin.Context) {
	createQuiz(c, quiz.KindQuestion)
}

func createQuiz(c *gin.Context, kind quiz.Kind) {
	log.Println("CreateQuiz", kind)

	difficulty, err := strconv.Atoi(c.Param("difficulty"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Difficulty must be a number"})
		return
	}
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Count must be a number"})
		return
	}

	req := quiz.Request{
		Kind:       kind,
		LessonID:   c.Param("lesson_id"),
		TermID:     c.Param("term_id"),
		Difficulty: difficulty,
		Count:      count,
	}

	response, err := Pipeline.CreateQuiz(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		quizError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func GetCulturalInformations(c *gin.Context) {
	log.Println("GetCulturalInformations")

	response, err := Pipeline.CulturalQuestions(c.Request.Context())
	if err != nil {
		quizError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// quizError maps pipeline sentinels to HTTP status codes.
func quizError(c *gin.Context, err error) {
	log.Println("Quiz error:", err)

	switch {
	case errors.Is(err, quiz.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson or term not found"})
	case errors.Is(err, quiz.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No content to generate a quiz from"})
	case errors.Is(err, quiz.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
