package models

import (
	"gorm.io/gorm"
)

// 通知类型
type NotificationType string

const (
	NotificationMatch   NotificationType = "MATCH"
	NotificationMessage NotificationType = "MESSAGE"
	NotificationLike    NotificationType = "LIKE"
	NotificationSystem  NotificationType = "SYSTEM"
)

// Notification 站内通知
type Notification struct {
	gorm.Model
	UserID  uint             `gorm:"not null;index" json:"userId"`
	Type    NotificationType `gorm:"size:20;not null" json:"type"`
	Title   string           `gorm:"size:100;not null" json:"title"`
	Message string           `gorm:"size:255" json:"message"`
	Data    string           `gorm:"type:text" json:"data"` // JSON负载，比如matchId
	Read    bool             `gorm:"column:is_read;default:false" json:"read"`
}
