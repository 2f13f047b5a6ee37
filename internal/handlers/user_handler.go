package handlers

import (
	"errors"
	"net/http"
	"taskhabit-api/internal/database"
	"taskhabit-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserResponse is the safe user payload (no password hash)
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GetMe returns the authenticated user's profile
// GET /api/me
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
