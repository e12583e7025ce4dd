package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"roundly/internal/domain"
	"roundly/internal/models"
	"roundly/internal/repository"
	"roundly/internal/service"

	"github.com/gin-gonic/gin"
)

type MappingHandler struct {
	repo       *repository.MappingRepository
	suggestSvc *service.SuggestService
}

func NewMappingHandler(repo *repository.MappingRepository, suggestSvc *service.SuggestService) *MappingHandler {
	return &MappingHandler{repo: repo, suggestSvc: suggestSvc}
}

func (h *MappingHandler) List(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.List(status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": list})
}

type SubmitMappingRequest struct {
	MerchantName string  `json:"merchant_name" binding:"required"`
	Ticker       string  `json:"ticker" binding:"required,min=1,max=12"`
	CompanyName  string  `json:"company_name"`
	Confidence   float64 `json:"confidence" binding:"gte=0,lte=1"`
}

// Submit lets a user propose a merchant-to-ticker mapping. It lands as
// PENDING until an admin approves it.
func (h *MappingHandler) Submit(c *gin.Context) {
	var req SubmitMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := &models.MerchantMapping{
		MerchantName: req.MerchantName,
		Ticker:       strings.ToUpper(req.Ticker),
		Confidence:   req.Confidence,
		Status:       domain.MappingStatusPending,
		CompanyName:  req.CompanyName,
		Source:       domain.MappingSourceUser,
	}
	if err := h.repo.Append(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submit failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mapping": m})
}

// Approve flips a pending mapping to approved (admin only). Failed
// transactions pick it up on the next reprocessing pass.
func (h *MappingHandler) Approve(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	m, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mapping not found"})
		return
	}
	if m.Status == domain.MappingStatusApproved {
		c.JSON(http.StatusOK, gin.H{"mapping": m})
		return
	}
	if err := h.repo.Approve(m.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approve failed"})
		return
	}
	m.Status = domain.MappingStatusApproved
	c.JSON(http.StatusOK, gin.H{"mapping": m})
}

type SuggestRequest struct {
	Merchants []string `json:"merchants" binding:"required,min=1,max=50"`
}

// Suggest asks the LLM for ticker suggestions (admin only). Results are
// stored as PENDING mappings.
func (h *MappingHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	suggestions, err := h.suggestSvc.Suggest(c.Request.Context(), req.Merchants)
	if err != nil {
		log.Printf("[mapping] suggest failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
