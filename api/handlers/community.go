package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListCategories 获取社区板块列表
func ListCategories(c *gin.Context) {
	var categories []models.CommunityCategory
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.L().Error("failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListPosts 获取帖子列表，计数和排序都在读取时计算
func ListPosts(c *gin.Context) {
	sortBy := c.DefaultQuery("sortBy", "hot")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	query := database.DB.Model(&models.CommunityPost{}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "gender", "country")
		}).
		Preload("Category")

	if categoryID := c.Query("categoryId"); categoryID != "" && categoryID != "all" {
		query = query.Where("category_id = ?", categoryID)
	}

	var posts []models.CommunityPost
	if err := query.Find(&posts).Error; err != nil {
		utils.L().Error("failed to list posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, buildPostResponse(&posts[i]))
	}

	// hot按净得分，top按赞数，new按时间
	switch sortBy {
	case "new":
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].CreatedAt.After(responses[j].CreatedAt)
		})
	case "top":
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].Upvotes > responses[j].Upvotes
		})
	default:
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].Upvotes-responses[i].Downvotes > responses[j].Upvotes-responses[j].Downvotes
		})
	}

	if offset > len(responses) {
		offset = len(responses)
	}
	end := offset + limit
	if end > len(responses) {
		end = len(responses)
	}

	c.JSON(http.StatusOK, gin.H{"posts": responses[offset:end]})
}

// CreatePost 发布帖子
func CreatePost(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.CommunityCategory
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		utils.L().Error("failed to fetch category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	tags, _ := json.Marshal(req.Tags)
	post := models.CommunityPost{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Tags:        string(tags),
		IsAnonymous: req.IsAnonymous,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		utils.L().Error("failed to create post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	post.Category = &category
	c.JSON(http.StatusCreated, gin.H{
		"post":    buildPostResponse(&post),
		"message": "Post created successfully",
	})
}

// VotePost 给帖子投票，同一用户对同一帖子只保留一票
func VotePost(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.CommunityPost
	if err := database.DB.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		utils.L().Error("failed to fetch post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	var vote models.PostVote
	result := database.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote)
	switch {
	case result.Error == nil:
		vote.VoteType = req.VoteType
		err = database.DB.Save(&vote).Error
	case result.Error == gorm.ErrRecordNotFound:
		vote = models.PostVote{PostID: uint(postID), UserID: userID, VoteType: req.VoteType}
		err = database.DB.Create(&vote).Error
	default:
		err = result.Error
	}
	if err != nil {
		utils.L().Error("failed to save vote", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vote":    vote,
		"message": "Vote recorded successfully",
	})
}

// ListComments 获取帖子评论
func ListComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var comments []models.PostComment
	err = database.DB.Where("post_id = ?", postID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		utils.L().Error("failed to list comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment 发表评论
func CreateComment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.CommunityPost
	if err := database.DB.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		utils.L().Error("failed to fetch post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	comment := models.PostComment{
		PostID:  uint(postID),
		UserID:  userID,
		Content: req.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		utils.L().Error("failed to create comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"message": "Comment created successfully",
	})
}

// buildPostResponse 读取时统计票数和评论数
func buildPostResponse(post *models.CommunityPost) models.PostResponse {
	var upvotes, downvotes, comments int64
	database.DB.Model(&models.PostVote{}).
		Where("post_id = ? AND vote_type = ?", post.ID, models.VoteUp).Count(&upvotes)
	database.DB.Model(&models.PostVote{}).
		Where("post_id = ? AND vote_type = ?", post.ID, models.VoteDown).Count(&downvotes)
	database.DB.Model(&models.PostComment{}).
		Where("post_id = ?", post.ID).Count(&comments)

	var tags []string
	if post.Tags != "" {
		_ = json.Unmarshal([]byte(post.Tags), &tags)
	}
	if tags == nil {
		tags = []string{}
	}

	// 匿名帖不暴露作者
	if post.IsAnonymous {
		post.User = nil
	}

	return models.PostResponse{
		CommunityPost: *post,
		Upvotes:       upvotes,
		Downvotes:     downvotes,
		Comments:      comments,
		TagList:       tags,
	}
}
