package handlers

import (
	"net/http"
	"strconv"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListUsers 获取候选用户列表
func ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	query := database.DB.Model(&models.User{}).
		Where("verified = ? AND active = ? AND banned = ?", true, true, false)

	if gender := c.Query("gender"); gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}
	if ageMin := c.Query("ageMin"); ageMin != "" {
		if v, err := strconv.Atoi(ageMin); err == nil {
			query = query.Where("age >= ?", v)
		}
	}
	if ageMax := c.Query("ageMax"); ageMax != "" {
		if v, err := strconv.Atoi(ageMax); err == nil {
			query = query.Where("age <= ?", v)
		}
	}

	var users []models.User
	err := query.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Interests").
		Order("last_seen DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		utils.L().Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// GetUser 获取单个用户资料
func GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	result := database.DB.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Interests").
		First(&user, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.L().Error("failed to fetch user", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// UpdateProfile 更新自己的资料
func UpdateProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var update struct {
		Name       string            `json:"name"`
		Age        int               `json:"age"`
		City       string            `json:"city"`
		Country    string            `json:"country"`
		Bio        string            `json:"bio"`
		LookingFor models.LookingFor `json:"lookingFor"`
	}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Age >= 18 {
		user.Age = update.Age
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.Country != "" {
		user.Country = update.Country
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.LookingFor != "" {
		user.LookingFor = update.LookingFor
	}

	if err := database.DB.Save(&user).Error; err != nil {
		utils.L().Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.ToResponse(),
	})
}
