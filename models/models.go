package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	FirstName      string             `bson:"first_name" json:"firstName"`
	LastName       string             `bson:"last_name" json:"lastName"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
}

// Lesson is a course the user studies. Kind separates the note tree from the
// question tree ("note" or "question"), so the same title can exist in both.
type Lesson struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Title  string             `bson:"title" json:"lesson_title"`
	Kind   string             `bson:"kind" json:"kind"`
	UserID string             `bson:"user_id" json:"user_id"`
}

// Term is a named sub-topic within a lesson. Notes and questions attach to terms.
type Term struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Title    string             `bson:"title" json:"term_title"`
	Kind     string             `bson:"kind" json:"kind"`
	LessonID string             `bson:"lesson_id" json:"lesson_id"`
}

type Note struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Content string             `bson:"content" json:"content"`
	TermID  string             `bson:"term_id" json:"term_id"`
}

// Question is a photographed exam question attached to a term, with an
// optional user note and a difficulty category (1=easy, 2=medium, 3=hard).
type Question struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ImagePath  string             `bson:"image_path" json:"image_path"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"`
	Difficulty int                `bson:"difficulty_category" json:"difficulty_category"`
	TermID     string             `bson:"term_id" json:"term_id"`
}

type UserRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LessonRequest struct {
	Title string `json:"lesson_title" binding:"required"`
}

type TermRequest struct {
	Title string `json:"term_title" binding:"required"`
}

type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateQuestionRequest struct {
	Note       string `json:"note"`
	Difficulty int    `json:"difficulty_category"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
