package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"roundly/internal/middleware"
	"roundly/internal/models"
	"roundly/internal/roundup"
	"roundly/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	svc *service.SyncService
}

func NewSyncHandler(svc *service.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Run triggers one bank sync for the acting user. Unauthenticated requests
// resolve through the configured demo fallback.
func (h *SyncHandler) Run(c *gin.Context) {
	profileID := middleware.GetUserID(c)
	res, err := h.svc.Run(profileID)
	if err != nil {
		if errors.Is(err, roundup.ErrNoAccount) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		log.Printf("[sync] run failed: profile=%d err=%v", profileID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

type IngestTransaction struct {
	Merchant string  `json:"merchant" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category"`
	Date     string  `json:"date"` // optional ISO date, defaults to now
}

type IngestRequest struct {
	Transactions []IngestTransaction `json:"transactions" binding:"required,min=1,max=100,dive"`
}

// Ingest runs the pipeline over caller-supplied transactions instead of the
// synthetic source.
func (h *SyncHandler) Ingest(c *gin.Context) {
	profileID := middleware.GetUserID(c)
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txs := make([]*models.Transaction, 0, len(req.Transactions))
	for _, in := range req.Transactions {
		merchant := in.Merchant
		tx := &models.Transaction{
			Merchant: &merchant,
			Amount:   in.Amount,
			Category: in.Category,
			Date:     time.Now(),
		}
		if in.Date != "" {
			d, err := time.Parse("2006-01-02", in.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format (use YYYY-MM-DD)"})
				return
			}
			tx.Date = d
		}
		txs = append(txs, tx)
	}
	res, err := h.svc.Ingest(profileID, txs)
	if err != nil {
		if errors.Is(err, roundup.ErrNoAccount) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		log.Printf("[sync] ingest failed: profile=%d err=%v", profileID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ingest failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
