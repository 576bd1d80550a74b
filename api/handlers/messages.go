package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/matchmaking"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SendMessage 发送消息，发送者身份取自会话令牌而不是请求体
func SendMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageText
	}

	// 发送者必须是匹配的参与方，否则按未找到处理
	var match models.Match
	err := database.DB.
		Where("id = ? AND (actor_id = ? OR target_id = ?) AND active = ?",
			req.MatchID, userID, userID, true).
		First(&match).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found or sender not authorized"})
			return
		}
		utils.L().Error("failed to fetch match", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	receiverID := matchmaking.OtherSide(&match, userID)

	message := models.Message{
		MatchID:    req.MatchID,
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    req.Content,
		Type:       msgType,
		MediaURL:   req.MediaURL,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		utils.L().Error("failed to create message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// 给接收方发通知
	sender := c.MustGet("user").(models.User)
	notification := models.Notification{
		UserID:  receiverID,
		Type:    models.NotificationMessage,
		Title:   "New Message",
		Message: "You received a message from " + sender.Name,
		Data:    `{"matchId": ` + strconv.FormatUint(uint64(req.MatchID), 10) + `}`,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		utils.L().Warn("failed to create message notification", zap.Error(err))
	}

	// 刷新匹配活跃时间
	database.DB.Model(&match).Update("updated_at", time.Now())

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"success": "Message sent successfully",
	})
}

// GetConversation 获取会话消息并把对方发来的消息标记为已读
func GetConversation(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	matchID, err := strconv.ParseUint(c.Param("matchId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	// 非参与方一律按未找到处理
	var match models.Match
	err = database.DB.
		Where("id = ? AND (actor_id = ? OR target_id = ?)", matchID, userID, userID).
		First(&match).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		utils.L().Error("failed to fetch match", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	// 一个会话的消息可能挂在两个方向的边上
	otherID := matchmaking.OtherSide(&match, userID)
	pairIDs := matchmaking.PairEdgeIDs(database.DB, userID, otherID)

	// 取最新一页，再反转成时间正序
	var messages []models.Message
	err = database.DB.
		Where("match_id IN ?", pairIDs).
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		utils.L().Error("failed to fetch messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	// 只标记不是自己发的消息
	now := time.Now()
	result := database.DB.Model(&models.Message{}).
		Where("match_id IN ? AND sender_id <> ? AND is_read = ?", pairIDs, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		utils.L().Warn("failed to mark messages read", zap.Error(result.Error))
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"matchId":  matchID,
	})
}

// MarkMessageRead 单条消息已读，只有接收方可以操作
func MarkMessageRead(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.Message
	err = database.DB.Where("id = ? AND receiver_id = ?", id, userID).First(&message).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		utils.L().Error("failed to fetch message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	now := time.Now()
	message.Read = true
	message.ReadAt = &now
	if err := database.DB.Save(&message).Error; err != nil {
		utils.L().Error("failed to mark message read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
