package handler

import (
	"log"
	"net/http"
	"strconv"

	"roundly/internal/repository"
	"roundly/internal/roundup"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator dashboard: platform stats, failed
// transaction reprocessing, system settings and the user list.
type AdminHandler struct {
	admin       *repository.AdminRepository
	users       *repository.UserRepository
	settings    *repository.SettingRepository
	reprocessor *roundup.Reprocessor
}

func NewAdminHandler(admin *repository.AdminRepository, users *repository.UserRepository, settings *repository.SettingRepository, reprocessor *roundup.Reprocessor) *AdminHandler {
	return &AdminHandler{admin: admin, users: users, settings: settings, reprocessor: reprocessor}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) Activity(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	signups, err := h.admin.SignupsPerDay(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activity failed"})
		return
	}
	syncs, err := h.admin.SyncsPerDay(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activity failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signups": signups, "syncs": syncs})
}

// Reprocess re-runs mapping over every failed transaction. Safe to call
// repeatedly: a pass with no failed rows is a no-op.
func (h *AdminHandler) Reprocess(c *gin.Context) {
	res, err := h.reprocessor.Run()
	if err != nil {
		log.Printf("reprocess run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reprocess failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	users, err := h.users.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settings failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settings.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
