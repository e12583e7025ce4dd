package handler

import (
	"math"
	"net/http"

	"roundly/internal/domain"
	"roundly/internal/middleware"
	"roundly/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo      *repository.UserRepository
	txRepo        *repository.TransactionRepository
	portfolioRepo *repository.PortfolioRepository
	notifRepo     *repository.NotificationRepository
	goalRepo      *repository.GoalRepository
}

func NewMeHandler(
	userRepo *repository.UserRepository,
	txRepo *repository.TransactionRepository,
	portfolioRepo *repository.PortfolioRepository,
	notifRepo *repository.NotificationRepository,
	goalRepo *repository.GoalRepository,
) *MeHandler {
	return &MeHandler{
		userRepo:      userRepo,
		txRepo:        txRepo,
		portfolioRepo: portfolioRepo,
		notifRepo:     notifRepo,
		goalRepo:      goalRepo,
	}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type UpdateSettingsRequest struct {
	Name          string   `json:"name"`
	RoundUpAmount *float64 `json:"round_up_amount"`
}

// UpdateSettings changes the profile name and round-up step. The step must
// be one of the allowed amounts.
func (h *MeHandler) UpdateSettings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.RoundUpAmount != nil {
		valid := false
		for _, a := range domain.RoundUpAmounts {
			if *req.RoundUpAmount == a {
				valid = true
				break
			}
		}
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round_up_amount"})
			return
		}
		u.RoundUpAmount = *req.RoundUpAmount
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// GetDashboard aggregates the signed-in user's dashboard summary: status
// counts, portfolio value, unread notifications, goals.
func (h *MeHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	counts, err := h.txRepo.CountByStatus(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard query failed"})
		return
	}
	portfolio, err := h.portfolioRepo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard query failed"})
		return
	}
	var totalValue float64
	for _, p := range portfolio {
		totalValue += p.TotalValue
	}
	unread, _ := h.notifRepo.CountUnread(userID)
	goals, _ := h.goalRepo.ListByUserID(userID)
	c.JSON(http.StatusOK, gin.H{
		"transaction_counts":   counts,
		"portfolio":            portfolio,
		"total_value":          math.Round(totalValue*100) / 100,
		"unread_notifications": unread,
		"goals":                goals,
	})
}
