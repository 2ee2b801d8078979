package handlers

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"

	"github.com/SLTNKCGZ/Hackathon-2025/db"
	"github.com/SLTNKCGZ/Hackathon-2025/models"
	"github.com/SLTNKCGZ/Hackathon-2025/utils"
)

const resetCodeTTL = 10 * time.Minute

// resetCodeStore keeps pending password reset codes keyed by email. Entries
// expire after the configured TTL; a code must be verified before the
// password can be reset, and resetting consumes the entry.
type resetCodeStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]resetCodeEntry
}

type resetCodeEntry struct {
	code     string
	expires  time.Time
	verified bool
}

func newResetCodeStore(ttl time.Duration) *resetCodeStore {
	return &resetCodeStore{ttl: ttl, entries: make(map[string]resetCodeEntry)}
}

func (s *resetCodeStore) Set(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = resetCodeEntry{code: code, expires: time.Now().Add(s.ttl)}
}

// Verify checks the code and marks the entry verified. Expired entries are
// dropped.
func (s *resetCodeStore) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return false
	}
	if time.Now().After(entry.expires) {
		delete(s.entries, email)
		return false
	}
	if entry.code != code {
		return false
	}
	entry.verified = true
	s.entries[email] = entry
	return true
}

// Consume removes the entry if it was verified and is still valid.
func (s *resetCodeStore) Consume(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok || !entry.verified || time.Now().After(entry.expires) {
		delete(s.entries, email)
		return false
	}
	delete(s.entries, email)
	return true
}

var resetCodes = newResetCodeStore(resetCodeTTL)

func ForgotPasswordSendCode(c *gin.Context) {
	log.Println("ForgotPasswordSendCode")

	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.DB.Collection(CollectionNameUsers).FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	resetCodes.Set(req.Email, code)

	if err := sendResetCodeEmail(req.Email, code); err != nil {
		log.Println("Error sending reset email:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent"})
}

func ForgotPasswordVerifyCode(c *gin.Context) {
	log.Println("ForgotPasswordVerifyCode")

	var req models.VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !resetCodes.Verify(req.Email, req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

func ForgotPasswordReset(c *gin.Context) {
	log.Println("ForgotPasswordReset")

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !resetCodes.Consume(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code not verified or expired"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.DB.Collection(CollectionNameUsers).UpdateOne(ctx,
		bson.M{"email": req.Email},
		bson.M{"$set": bson.M{"hashed_password": string(hashed)}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func sendResetCodeEmail(to, code string) error {
	if utils.SMTP_EMAIL == "" || utils.SMTP_PASSWORD == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}

	port, err := strconv.Atoi(utils.SMTP_PORT)
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", utils.SMTP_EMAIL)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset code")
	m.SetBody("text/plain", fmt.Sprintf("Your password reset code is: %s\nIt expires in %d minutes.", code, int(resetCodeTTL.Minutes())))

	d := gomail.NewDialer(utils.SMTP_SERVER, port, utils.SMTP_EMAIL, utils.SMTP_PASSWORD)
	return d.DialAndSend(m)
}
