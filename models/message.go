package models

import (
	"time"

	"gorm.io/gorm"
)

// 消息类型
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVideo MessageType = "video"
	MessageAudio MessageType = "audio"
)

// Message 聊天消息，属于一个匹配会话
type Message struct {
	gorm.Model
	MatchID    uint        `gorm:"not null;index" json:"matchId"`
	SenderID   uint        `gorm:"not null;index" json:"senderId"`
	ReceiverID uint        `gorm:"index" json:"receiverId"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	Type       MessageType `gorm:"size:20;not null;default:'text'" json:"type"`
	MediaURL   string      `gorm:"size:255" json:"mediaUrl,omitempty"`
	Read       bool        `gorm:"column:is_read;default:false" json:"read"`
	ReadAt     *time.Time  `json:"readAt"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// SendMessageRequest 发送消息请求，发送者身份取自会话令牌
type SendMessageRequest struct {
	MatchID  uint        `json:"matchId" binding:"required"`
	Content  string      `json:"content" binding:"required"`
	Type     MessageType `json:"type"`
	MediaURL string      `json:"mediaUrl"`
}
