package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/BinLe1988/heartlink/cache"
	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminStatsPayload 管理端统计快照
type AdminStatsPayload struct {
	TotalUsers       int64   `json:"totalUsers"`
	ActiveUsers      int64   `json:"activeUsers"`
	TotalMatches     int64   `json:"totalMatches"`
	TotalMessages    int64   `json:"totalMessages"`
	PremiumUsers     int64   `json:"premiumUsers"`
	ReportedUsers    int64   `json:"reportedUsers"`
	DailyActiveUsers int64   `json:"dailyActiveUsers"`
	MatchSuccessRate float64 `json:"matchSuccessRate"`
}

// AdminStats 聚合统计，快照短暂缓存在Redis里
func AdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	// 先查缓存
	if cached, err := cache.GetStats(ctx); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	db := database.DB
	dayAgo := time.Now().Add(-24 * time.Hour)

	var payload AdminStatsPayload
	db.Model(&models.User{}).Count(&payload.TotalUsers)
	db.Model(&models.User{}).
		Where("active = ? AND last_seen >= ?", true, dayAgo).
		Count(&payload.ActiveUsers)

	var mutualEdges int64
	db.Model(&models.Match{}).Where("mutual = ?", true).Count(&mutualEdges)
	// 互相匹配有两条边，对外按配对数计
	payload.TotalMatches = mutualEdges / 2

	db.Model(&models.Message{}).Count(&payload.TotalMessages)
	db.Model(&models.User{}).Where("premium = ?", true).Count(&payload.PremiumUsers)
	db.Model(&models.User{}).Where("reported = ?", true).Count(&payload.ReportedUsers)
	db.Model(&models.User{}).Where("last_seen >= ?", dayAgo).Count(&payload.DailyActiveUsers)

	var totalLikes int64
	db.Model(&models.Match{}).
		Where("action IN ?", []models.MatchAction{models.ActionLike, models.ActionSuperLike}).
		Count(&totalLikes)
	if totalLikes > 0 {
		rate := float64(mutualEdges) / float64(totalLikes) * 100
		payload.MatchSuccessRate = math.Round(rate*100) / 100
	}

	// 最近注册的用户
	var recent []models.User
	db.Order("created_at DESC").Limit(10).Find(&recent)
	recentResponses := make([]models.UserResponse, 0, len(recent))
	for i := range recent {
		recentResponses = append(recentResponses, recent[i].ToResponse())
	}

	body, err := json.Marshal(gin.H{
		"stats":          payload,
		"recentActivity": recentResponses,
	})
	if err != nil {
		utils.L().Error("failed to marshal stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin statistics"})
		return
	}

	if err := cache.SetStats(ctx, string(body)); err != nil {
		utils.L().Warn("failed to cache stats", zap.Error(err))
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// AdminListUsers 用户管理列表，支持搜索、状态筛选和分页
func AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	// 管理端可以看到软删除的账号
	query := database.DB.Unscoped().Model(&models.User{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR city LIKE ? OR country LIKE ?",
			like, like, like, like)
	}

	switch c.DefaultQuery("status", "all") {
	case "active":
		query = query.Where("active = ?", true)
	case "inactive":
		query = query.Where("active = ?", false)
	case "premium":
		query = query.Where("premium = ?", true)
	case "reported":
		query = query.Where("reported = ?", true)
	case "verified":
		query = query.Where("verified = ?", true)
	case "banned":
		query = query.Where("banned = ?", true)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		utils.L().Error("failed to list admin users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"users": responses,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// AdminUpdateUser 审核和管控动作
func AdminUpdateUser(c *gin.Context) {
	var req struct {
		UserID uint   `json:"userId" binding:"required"`
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Unscoped().First(&user, req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.L().Error("failed to fetch user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	now := time.Now()
	switch req.Action {
	case "verify":
		user.Verified = true
	case "unverify":
		user.Verified = false
	case "activate":
		user.Active = true
	case "deactivate":
		user.Active = false
	case "upgrade_premium":
		user.Premium = true
	case "downgrade_premium":
		user.Premium = false
	case "ban":
		user.Active = false
		user.Banned = true
		user.BannedAt = &now
	case "unban":
		user.Active = true
		user.Banned = false
		user.BannedAt = nil
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	if err := database.DB.Unscoped().Save(&user).Error; err != nil {
		utils.L().Error("failed to update user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user.ToResponse(),
		"message": "User " + req.Action + " successful",
	})
}

// AdminDeleteUser 软删除用户
func AdminDeleteUser(c *gin.Context) {
	var req struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.L().Error("failed to fetch user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("active", false).Error; err != nil {
			return err
		}
		// gorm软删除，只打DeletedAt标记
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.L().Error("failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
