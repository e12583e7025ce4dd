package handler

import (
	"net/http"
	"strconv"
	"time"

	"roundly/internal/middleware"
	"roundly/internal/models"
	"roundly/internal/repository"
	"roundly/internal/roundup"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	repo     *repository.GoalRepository
	notifier *roundup.Notifier
}

func NewGoalHandler(repo *repository.GoalRepository, notifier *roundup.Notifier) *GoalHandler {
	return &GoalHandler{repo: repo, notifier: notifier}
}

type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=128"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	TargetDate   string  `json:"target_date"` // optional ISO date
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g := &models.Goal{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
	}
	if req.TargetDate != "" {
		d, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date format (use YYYY-MM-DD)"})
			return
		}
		g.TargetDate = &d
	}
	if err := h.repo.Create(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	_ = h.notifier.GoalCreated(userID, g.Name, g.TargetAmount)
	c.JSON(http.StatusCreated, gin.H{"goal": g})
}

func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.repo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": list})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
