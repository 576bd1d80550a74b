package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register 用户注册
func Register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 检查邮箱是否已注册
	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
		return
	}

	// 哈希密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.L().Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	lookingFor := req.LookingFor
	if lookingFor == "" {
		lookingFor = models.LookingForSerious
	}

	now := time.Now()
	user := models.User{
		Email:      req.Email,
		Password:   string(hashedPassword),
		Name:       req.Name,
		Age:        req.Age,
		Gender:     req.Gender,
		Country:    req.Country,
		City:       req.City,
		Bio:        req.Bio,
		LookingFor: lookingFor,
		Active:     true,
		Online:     true,
		LastSeen:   &now,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		utils.L().Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	// 创建默认偏好
	countries, _ := json.Marshal([]string{req.Country})
	interests, _ := json.Marshal(req.Interests)
	prefs := models.UserPreferences{
		UserID:     user.ID,
		AgeMin:     18,
		AgeMax:     50,
		Distance:   50,
		Countries:  string(countries),
		Interests:  string(interests),
		LookingFor: lookingFor,
	}
	if err := database.DB.Create(&prefs).Error; err != nil {
		utils.L().Error("failed to create default preferences",
			zap.Uint("userId", user.ID), zap.Error(err))
	}

	// 生成JWT令牌
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.L().Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"user":    user.ToResponse(),
		"message": "User registered successfully",
	})
}

// Login 用户登录
func Login(c *gin.Context) {
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	result := database.DB.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		utils.L().Error("login query failed", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.Banned || !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
		return
	}

	// 更新在线状态
	now := time.Now()
	user.Online = true
	user.LastSeen = &now
	database.DB.Save(&user)

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.L().Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// Logout 用户登出
func Logout(c *gin.Context) {
	userID, _ := c.Get("userID")

	now := time.Now()
	database.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"online": false, "last_seen": now})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
