package handlers

import "github.com/gin-gonic/gin"

func SetUpRoutes(r *gin.Engine) {

	// Auth
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/create", Register)
		authRoutes.POST("/login", Login)
		authRoutes.POST("/forgot-password-send-code", ForgotPasswordSendCode)
		authRoutes.POST("/forgot-password-verify-code", ForgotPasswordVerifyCode)
		authRoutes.POST("/forgot-password-verify", ForgotPasswordReset)

		authRoutes.GET("/me", AuthRequired(), GetCurrentUser)
		authRoutes.PUT("/update", AuthRequired(), UpdateUser)
		authRoutes.DELETE("/delete", AuthRequired(), DeleteUser)
	}

	// Lessons
	lessonRoutes := r.Group("/lesson", AuthRequired())
	{
		lessonRoutes.GET("/NoteLessons", GetNoteLessons)
		lessonRoutes.GET("/QuestionLessons", GetQuestionLessons)
		lessonRoutes.POST("/NoteLesson/create", CreateNoteLesson)
		lessonRoutes.POST("/QuestionLesson/create", CreateQuestionLesson)
		lessonRoutes.PUT("/NoteLesson/update/:lesson_id", UpdateNoteLesson)
		lessonRoutes.PUT("/QuestionLesson/update/:lesson_id", UpdateQuestionLesson)
		lessonRoutes.DELETE("/NoteLesson/delete/:lesson_id", DeleteNoteLesson)
		lessonRoutes.DELETE("/QuestionLesson/delete/:lesson_id", DeleteQuestionLesson)
	}

	// Terms
	termRoutes := r.Group("/term", AuthRequired())
	{
		termRoutes.GET("/NoteTerms/:lesson_id", GetNoteTerms)
		termRoutes.GET("/QuestionTerms/:lesson_id", GetQuestionTerms)
		termRoutes.GET("/NoteTerm/:term_id", GetNoteTerm)
		termRoutes.GET("/QuestionTerm/:term_id", GetQuestionTerm)
		termRoutes.POST("/NoteTerm/create/:lesson_id", CreateNoteTerm)
		termRoutes.POST("/QuestionTerm/create/:lesson_id", CreateQuestionTerm)
		termRoutes.PUT("/NoteTerm/update/:term_id", UpdateNoteTerm)
		termRoutes.PUT("/QuestionTerm/update/:term_id", UpdateQuestionTerm)
		termRoutes.DELETE("/NoteTerm/delete/:term_id", DeleteNoteTerm)
		termRoutes.DELETE("/QuestionTerm/delete/:term_id", DeleteQuestionTerm)
	}

	// Notes
	noteRoutes := r.Group("/notes", AuthRequired())
	{
		noteRoutes.POST("/create", CreateNote)
		noteRoutes.GET("/statistics", GetNoteStatistics)
		noteRoutes.GET("/:lesson_id/:term_id", GetNotes)
		noteRoutes.PUT("/:note_id", UpdateNote)
		noteRoutes.DELETE("/:note_id", DeleteNote)
	}

	// Questions
	questionRoutes := r.Group("/question", AuthRequired())
	{
		questionRoutes.POST("/create", CreateQuestion)
		questionRoutes.POST("/import-pdf", ImportQuestionPDF)
		questionRoutes.GET("/statistics", GetQuestionStatistics)
		questionRoutes.GET("/:lesson_id/:difficulty_id/:term_id", GetQuestionsByTerm)
		questionRoutes.PUT("/:question_id", UpdateQuestion)
		questionRoutes.DELETE("/:question_id", DeleteQuestion)
	}

	// Quiz generation
	apiRoutes := r.Group("/api", AuthRequired())
	{
		apiRoutes.GET("/createNoteQuiz/:lesson_id/:term_id/:difficulty/:count", CreateNoteQuiz)
		apiRoutes.GET("/createQuestionQuiz/:lesson_id/:term_id/:difficulty/:count", CreateQuestionQuiz)
		apiRoutes.GET("/getCulturalInformations", GetCulturalInformations)
		apiRoutes.GET("/check-ocr", CheckOCR)
	}
}
