package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListPhotos 获取用户照片，按顺序返回
func ListPhotos(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var photos []models.Photo
	if err := database.DB.Where("user_id = ?", id).Order("sort_order ASC").Find(&photos).Error; err != nil {
		utils.L().Error("failed to list photos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// AddPhoto 上传照片，只允许操作自己的相册
func AddPhoto(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if uint(id) != userID.(uint) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		URL   string `json:"url"`
		Order int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 未提供URL时生成占位图地址
	if req.URL == "" {
		req.URL = fmt.Sprintf("https://cdn.heartlink.app/photos/%s.jpg", uuid.New().String())
	}

	photo := models.Photo{
		UserID:    uint(id),
		URL:       req.URL,
		Order:     req.Order,
		IsPrimary: req.Order == 0,
	}
	if err := database.DB.Create(&photo).Error; err != nil {
		utils.L().Error("failed to add photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"photo":   photo,
		"message": "Photo uploaded successfully",
	})
}

// ReorderPhotos 批量调整照片顺序
func ReorderPhotos(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if uint(id) != userID.(uint) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		Photos []struct {
			ID    uint `json:"id" binding:"required"`
			Order int  `json:"order"`
		} `json:"photos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, p := range req.Photos {
			result := tx.Model(&models.Photo{}).
				Where("id = ? AND user_id = ?", p.ID, id).
				Updates(map[string]interface{}{"sort_order": p.Order, "is_primary": p.Order == 0})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		utils.L().Error("failed to reorder photos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo order updated successfully"})
}
