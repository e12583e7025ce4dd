package handler

import (
	"math"
	"net/http"

	"roundly/internal/merchants"
	"roundly/internal/middleware"
	"roundly/internal/models"
	"roundly/internal/repository"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	repo *repository.PortfolioRepository
}

func NewPortfolioHandler(repo *repository.PortfolioRepository) *PortfolioHandler {
	return &PortfolioHandler{repo: repo}
}

type portfolioView struct {
	models.Portfolio
	CompanyName string `json:"company_name,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// List returns the user's portfolio rows decorated with company name and
// logo, plus the total earmarked value rounded to cents for display.
func (h *PortfolioHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rows, err := h.repo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	views := make([]portfolioView, 0, len(rows))
	var total float64
	for _, p := range rows {
		v := portfolioView{Portfolio: p}
		if m, ok := merchants.LookupTicker(p.Ticker); ok {
			v.CompanyName = m.Name
			v.LogoURL = merchants.LogoURL(m.Domain)
		}
		total += p.TotalValue
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{
		"portfolio":   views,
		"total_value": math.Round(total*100) / 100,
	})
}
