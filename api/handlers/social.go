package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListConnections 获取自己的有效社交绑定
func ListConnections(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var connections []models.SocialConnection
	err := database.DB.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&connections).Error
	if err != nil {
		utils.L().Error("failed to list connections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": connections})
}

// UpsertConnection 绑定或重新绑定平台，每个(用户,平台)最多一条
func UpsertConnection(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req models.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permissions, _ := json.Marshal(req.Permissions)
	now := time.Now()

	var connection models.SocialConnection
	result := database.DB.
		Where("user_id = ? AND platform = ?", userID, req.Platform).
		First(&connection)

	switch {
	case result.Error == nil:
		// 重新绑定：刷新令牌并重新激活
		connection.AccessToken = req.AccessToken
		connection.RefreshToken = req.RefreshToken
		connection.PlatformUserID = req.PlatformUserID
		connection.PlatformUsername = req.PlatformUsername
		connection.ProfileURL = req.ProfileURL
		connection.Permissions = string(permissions)
		connection.IsActive = true
		connection.LastSync = &now

		if err := database.DB.Save(&connection).Error; err != nil {
			utils.L().Error("failed to update connection", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to manage connection"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"connection": connection,
			"message":    "Connection updated successfully",
		})

	case result.Error == gorm.ErrRecordNotFound:
		connection = models.SocialConnection{
			UserID:           userID,
			Platform:         req.Platform,
			AccessToken:      req.AccessToken,
			RefreshToken:     req.RefreshToken,
			PlatformUserID:   req.PlatformUserID,
			PlatformUsername: req.PlatformUsername,
			ProfileURL:       req.ProfileURL,
			Permissions:      string(permissions),
			IsActive:         true,
			LastSync:         &now,
		}
		if err := database.DB.Create(&connection).Error; err != nil {
			utils.L().Error("failed to create connection", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to manage connection"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"connection": connection,
			"message":    "Connection created successfully",
		})

	default:
		utils.L().Error("failed to fetch connection", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to manage connection"})
	}
}

// DeleteConnection 删除自己的绑定记录
func DeleteConnection(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid connection ID"})
		return
	}

	result := database.DB.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SocialConnection{})
	if result.Error != nil {
		utils.L().Error("failed to delete connection", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove connection"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection removed successfully"})
}
