package models

import (
	"gorm.io/gorm"
)

// 投票类型
type VoteType string

const (
	VoteUp   VoteType = "UPVOTE"
	VoteDown VoteType = "DOWNVOTE"
)

// CommunityCategory 社区板块
type CommunityCategory struct {
	gorm.Model
	Name  string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Color string `gorm:"size:20" json:"color"`
}

// CommunityPost 社区帖子
type CommunityPost struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index" json:"userId"`
	CategoryID  uint   `gorm:"not null;index" json:"categoryId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	ImageURL    string `gorm:"size:255" json:"imageUrl,omitempty"`
	VideoURL    string `gorm:"size:255" json:"videoUrl,omitempty"`
	Tags        string `gorm:"type:text" json:"-"` // JSON数组
	IsAnonymous bool   `gorm:"default:false" json:"isAnonymous"`

	User     *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category *CommunityCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Votes    []PostVote         `gorm:"foreignKey:PostID" json:"-"`
	Comments []PostComment      `gorm:"foreignKey:PostID" json:"-"`
}

// PostVote 帖子投票，每个用户对一个帖子只有一条
type PostVote struct {
	gorm.Model
	PostID   uint     `gorm:"not null;uniqueIndex:idx_post_user,priority:1" json:"postId"`
	UserID   uint     `gorm:"not null;uniqueIndex:idx_post_user,priority:2" json:"userId"`
	VoteType VoteType `gorm:"size:10;not null" json:"voteType"`
}

// PostComment 帖子评论
type PostComment struct {
	gorm.Model
	PostID  uint   `gorm:"not null;index" json:"postId"`
	UserID  uint   `gorm:"not null;index" json:"userId"`
	Content string `gorm:"type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	CategoryID  uint     `json:"categoryId" binding:"required"`
	Title       string   `json:"title" binding:"required,max=200"`
	Content     string   `json:"content" binding:"required"`
	ImageURL    string   `json:"imageUrl"`
	VideoURL    string   `json:"videoUrl"`
	Tags        []string `json:"tags"`
	IsAnonymous bool     `json:"isAnonymous"`
}

// VoteRequest 投票请求
type VoteRequest struct {
	VoteType VoteType `json:"voteType" binding:"required,oneof=UPVOTE DOWNVOTE"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostResponse 帖子响应，计数在读取时统计
type PostResponse struct {
	CommunityPost
	Upvotes   int64    `json:"upvotes"`
	Downvotes int64    `json:"downvotes"`
	Comments  int64    `json:"comments"`
	TagList   []string `json:"tags"`
}
