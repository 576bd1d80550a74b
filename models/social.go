package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialConnection 第三方平台绑定，每个(用户,平台)最多一条有效记录
type SocialConnection struct {
	gorm.Model
	UserID           uint       `gorm:"not null;uniqueIndex:idx_user_platform,priority:1" json:"userId"`
	Platform         string     `gorm:"size:30;not null;uniqueIndex:idx_user_platform,priority:2" json:"platform"`
	AccessToken      string     `gorm:"size:512;not null" json:"-"`
	RefreshToken     string     `gorm:"size:512" json:"-"`
	PlatformUserID   string     `gorm:"size:100;not null" json:"platformUserId"`
	PlatformUsername string     `gorm:"size:100;not null" json:"platformUsername"`
	ProfileURL       string     `gorm:"size:255" json:"profileUrl"`
	Permissions      string     `gorm:"type:text" json:"permissions"` // JSON数组
	IsActive         bool       `gorm:"default:true" json:"isActive"`
	LastSync         *time.Time `json:"lastSync"`
}

// ConnectRequest 绑定请求
type ConnectRequest struct {
	Platform         string   `json:"platform" binding:"required"`
	AccessToken      string   `json:"accessToken" binding:"required"`
	RefreshToken     string   `json:"refreshToken"`
	PlatformUserID   string   `json:"platformUserId" binding:"required"`
	PlatformUsername string   `json:"platformUsername" binding:"required"`
	ProfileURL       string   `json:"profileUrl"`
	Permissions      []string `json:"permissions"`
}
