package handlers

import (
	"errors"
	"net/http"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/matchmaking"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateSwipe 执行一次滑动动作
func CreateSwipe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req models.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := matchmaking.Swipe(database.DB, userID.(uint), req.TargetID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, matchmaking.ErrSameUser):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot swipe on yourself"})
		case errors.Is(err, matchmaking.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "One or both users not found"})
		case errors.Is(err, matchmaking.ErrDuplicateAction):
			c.JSON(http.StatusConflict, gin.H{"error": "Match already exists"})
		default:
			utils.L().Error("swipe failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
		}
		return
	}

	message := "Action recorded successfully"
	if result.IsMutualMatch {
		message = "It's a match!"
	}

	c.JSON(http.StatusCreated, gin.H{
		"match":         result.Match,
		"isMutualMatch": result.IsMutualMatch,
		"message":       message,
	})
}

// ListMatches 获取自己的互相匹配列表，带最后一条消息预览
func ListMatches(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var matches []models.Match
	err := database.DB.
		Where("(actor_id = ? OR target_id = ?) AND mutual = ? AND active = ?", userID, userID, true, true).
		Order("matched_at DESC").
		Find(&matches).Error
	if err != nil {
		utils.L().Error("failed to list matches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	items := make([]models.MatchListItem, 0, len(matches))
	seen := make(map[uint]bool)

	for i := range matches {
		match := &matches[i]
		otherID := matchmaking.OtherSide(match, userID)

		// 互相匹配有两条有向边，同一对只展示一次
		if seen[otherID] {
			continue
		}
		seen[otherID] = true

		var other models.User
		err := database.DB.
			Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_order ASC").Limit(1)
			}).
			First(&other, otherID).Error
		if err != nil {
			continue
		}

		// 消息挂在任一方向的边上
		pairIDs := matchmaking.PairEdgeIDs(database.DB, userID, otherID)

		var lastMessage *models.Message
		var msg models.Message
		if err := database.DB.Where("match_id IN ?", pairIDs).
			Order("created_at DESC").First(&msg).Error; err == nil {
			lastMessage = &msg
		}

		var unread int64
		database.DB.Model(&models.Message{}).
			Where("match_id IN ? AND sender_id <> ? AND is_read = ?", pairIDs, userID, false).
			Count(&unread)

		items = append(items, models.MatchListItem{
			ID:          match.ID,
			MatchedAt:   match.MatchedAt,
			OtherUser:   other.ToResponse(),
			LastMessage: lastMessage,
			UnreadCount: unread,
		})
	}

	c.JSON(http.StatusOK, gin.H{"matches": items})
}
