package handler

import (
	"net/http"
	"strconv"

	"roundly/internal/merchants"
	"roundly/internal/middleware"
	"roundly/internal/models"
	"roundly/internal/repository"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	repo *repository.TransactionRepository
}

func NewTransactionHandler(repo *repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

type transactionView struct {
	models.Transaction
	LogoURL string `json:"logo_url,omitempty"`
}

// List returns the user's transactions, optionally filtered by status.
// Merchant logos are resolved through the static directory.
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.ListByUserID(userID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	views := make([]transactionView, 0, len(list))
	for _, tx := range list {
		v := transactionView{Transaction: tx}
		if tx.Merchant != nil {
			v.LogoURL = merchants.LogoURL(merchants.DomainFor(*tx.Merchant))
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"transactions": views})
}

// Counts returns per-status transaction counts for the user.
func (h *TransactionHandler) Counts(c *gin.Context) {
	userID := middleware.GetUserID(c)
	counts, err := h.repo.CountByStatus(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
