package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetPreferences 获取用户偏好
func GetPreferences(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var prefs models.UserPreferences
	result := database.DB.Where("user_id = ?", id).First(&prefs)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preferences not found"})
			return
		}
		utils.L().Error("failed to fetch preferences", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences 更新或创建用户偏好，只允许操作自己的
func UpdatePreferences(c *gin.Context) {
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

	var req models.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AgeMax < req.AgeMin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ageMax must be greater than or equal to ageMin"})
		return
	}

	countries, _ := json.Marshal(req.Countries)
	interests, _ := json.Marshal(req.Interests)

	var prefs models.UserPreferences
	result := database.DB.Where("user_id = ?", id).First(&prefs)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		utils.L().Error("failed to fetch preferences", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	prefs.UserID = uint(id)
	prefs.AgeMin = req.AgeMin
	prefs.AgeMax = req.AgeMax
	prefs.Distance = req.Distance
	prefs.Countries = string(countries)
	prefs.Interests = string(interests)
	if req.LookingFor != "" {
		prefs.LookingFor = req.LookingFor
	}

	if err := database.DB.Save(&prefs).Error; err != nil {
		utils.L().Error("failed to save preferences", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preferences": prefs,
		"message":     "Preferences updated successfully",
	})
}
