package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"roundly/internal/middleware"
	"roundly/internal/repository"
	"roundly/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20

type UploadHandler struct {
	cloud cloudinary.Client
	users *repository.UserRepository
}

func NewUploadHandler(cloud cloudinary.Client, users *repository.UserRepository) *UploadHandler {
	return &UploadHandler{cloud: cloud, users: users}
}

// UploadAvatar uploads a profile image and stores its delivery URL on the
// caller's account.
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if file.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	folder := "roundly/avatars/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "avatar_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account lookup failed"})
		return
	}
	user.AvatarURL = url
	if err := h.users.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
