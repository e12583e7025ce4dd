package handler

import (
	"net/http"
	"strings"
	"time"

	"roundly/internal/middleware"
	"roundly/internal/models"
	"roundly/internal/repository"

	"github.com/gin-gonic/gin"
)

// ContactHandler persists public contact form submissions. Each email
// address may submit once per throttle window.
type ContactHandler struct {
	repo     *repository.ContactRepository
	throttle *middleware.InMemoryRateLimiter
}

func NewContactHandler(repo *repository.ContactRepository, window time.Duration) *ContactHandler {
	return &ContactHandler{
		repo:     repo,
		throttle: middleware.NewInMemoryRateLimiter(1, window),
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=128"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=255"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.throttle.Allow(email) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "please wait before submitting again"})
		return
	}
	sub := &models.ContactSubmission{
		Name:    req.Name,
		Email:   email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.repo.Create(sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "received"})
}
