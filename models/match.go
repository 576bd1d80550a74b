package models

import (
	"time"

	"gorm.io/gorm"
)

// 滑动动作类型
type MatchAction string

const (
	ActionLike      MatchAction = "like"
	ActionSuperLike MatchAction = "super_like"
	ActionPass      MatchAction = "pass"
)

// IsPositive 点赞类动作才可能促成互相匹配
func (a MatchAction) IsPositive() bool {
	return a == ActionLike || a == ActionSuperLike
}

// Match 有向滑动记录，(ActorID, TargetID)每对只允许一条
type Match struct {
	gorm.Model
	ActorID   uint        `gorm:"not null;uniqueIndex:idx_actor_target,priority:1;index" json:"actorId"`
	TargetID  uint        `gorm:"not null;uniqueIndex:idx_actor_target,priority:2;index" json:"targetId"`
	Action    MatchAction `gorm:"size:20;not null" json:"action"`
	Mutual    bool        `gorm:"default:false;index" json:"mutual"`
	Active    bool        `gorm:"default:true" json:"active"`
	MatchedAt *time.Time  `json:"matchedAt"`

	Actor  *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Target *User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// SwipeRequest 滑动请求
type SwipeRequest struct {
	TargetID uint        `json:"targetId" binding:"required"`
	Action   MatchAction `json:"action" binding:"required,oneof=like super_like pass"`
}

// SwipeResponse 滑动结果
type SwipeResponse struct {
	Match         Match `json:"match"`
	IsMutualMatch bool  `json:"isMutualMatch"`
}

// MatchListItem 匹配列表条目，带对方资料和最后一条消息预览
type MatchListItem struct {
	ID          uint         `json:"id"`
	MatchedAt   *time.Time   `json:"matchedAt"`
	OtherUser   UserResponse `json:"otherUser"`
	LastMessage *Message     `json:"lastMessage"`
	UnreadCount int64        `json:"unreadCount"`
}
