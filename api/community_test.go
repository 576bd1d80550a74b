package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// createCategory 直接建一个社区板块
func createCategory(t *testing.T, name string) *models.CommunityCategory {
	t.Helper()
	category := models.CommunityCategory{Name: name, Color: "#ff6b81"}
	if err := database.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return &category
}

// createPost 通过接口发帖并返回帖子ID
func createPost(t *testing.T, router *gin.Engine, token string, categoryID uint, title string, anonymous bool) uint {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/community/posts", token, map[string]interface{}{
		"categoryId":  categoryID,
		"title":       title,
		"content":     "content of " + title,
		"tags":        []string{"dating", "advice"},
		"isAnonymous": anonymous,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create post: %d %s", w.Code, w.Body.String())
	}
	post := decodeBody(t, w)["post"].(map[string]interface{})
	return uint(post["ID"].(float64))
}

func TestCreatePostAndList(t *testing.T) {
	router := setupServer(t)
	user := createVerifiedUser(t, "mika")
	category := createCategory(t, "Dating Tips")

	createPost(t, router, tokenFor(t, user), category.ID, "First date ideas", false)

	// 板块不存在时发帖失败
	w := doJSON(t, router, "POST", "/api/community/posts", tokenFor(t, user), map[string]interface{}{
		"categoryId": category.ID + 99,
		"title":      "orphan",
		"content":    "no category",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "GET", "/api/community/categories", tokenFor(t, user), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	categories := decodeBody(t, w)["categories"].([]interface{})
	assert.Len(t, categories, 1)

	w = doJSON(t, router, "GET", "/api/community/posts", tokenFor(t, user), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	posts := decodeBody(t, w)["posts"].([]interface{})
	assert.Len(t, posts, 1)

	post := posts[0].(map[string]interface{})
	assert.Equal(t, "First date ideas", post["title"])
	assert.Equal(t, []interface{}{"dating", "advice"}, post["tags"])
	assert.Equal(t, "mika", post["user"].(map[string]interface{})["name"])
}

func TestAnonymousPostHidesAuthor(t *testing.T) {
	router := setupServer(t)
	user := createVerifiedUser(t, "mika")
	category := createCategory(t, "Confessions")

	createPost(t, router, tokenFor(t, user), category.ID, "Secret crush", true)

	w := doJSON(t, router, "GET", "/api/community/posts", tokenFor(t, user), nil)
	posts := decodeBody(t, w)["posts"].([]interface{})
	assert.Len(t, posts, 1)

	post := posts[0].(map[string]interface{})
	assert.Equal(t, true, post["isAnonymous"])
	_, hasUser := post["user"]
	assert.False(t, hasUser)
}

func TestVoteKeepsSingleRowPerUser(t *testing.T) {
	router := setupServer(t)
	author := createVerifiedUser(t, "author")
	voter := createVerifiedUser(t, "voter")
	category := createCategory(t, "General")

	postID := createPost(t, router, tokenFor(t, author), category.ID, "Vote on me", false)
	votePath := fmt.Sprintf("/api/community/posts/%d/vote", postID)

	w := doJSON(t, router, "POST", votePath, tokenFor(t, voter), map[string]interface{}{
		"voteType": "UPVOTE",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 改投反对票，覆盖之前那票
	w = doJSON(t, router, "POST", votePath, tokenFor(t, voter), map[string]interface{}{
		"voteType": "DOWNVOTE",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var votes []models.PostVote
	database.DB.Where("post_id = ?", postID).Find(&votes)
	assert.Len(t, votes, 1)
	assert.Equal(t, models.VoteDown, votes[0].VoteType)

	// 列表里的计数跟着变
	w = doJSON(t, router, "GET", "/api/community/posts", tokenFor(t, voter), nil)
	post := decodeBody(t, w)["posts"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(0), post["upvotes"])
	assert.Equal(t, float64(1), post["downvotes"])

	// 帖子不存在
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/community/posts/%d/vote", postID+99), tokenFor(t, voter), map[string]interface{}{
		"voteType": "UPVOTE",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostSortOrders(t *testing.T) {
	router := setupServer(t)
	author := createVerifiedUser(t, "author")
	category := createCategory(t, "General")
	token := tokenFor(t, author)

	voters := make([]*models.User, 4)
	for i := range voters {
		voters[i] = createVerifiedUser(t, fmt.Sprintf("voter%d", i))
	}

	// steady: 2赞0踩净得分2；loud: 3赞2踩净得分1；fresh最新但没票
	steady := createPost(t, router, token, category.ID, "steady", false)
	loud := createPost(t, router, token, category.ID, "loud", false)
	createPost(t, router, token, category.ID, "fresh", false)

	vote := func(postID uint, user *models.User, voteType string) {
		w := doJSON(t, router, "POST", fmt.Sprintf("/api/community/posts/%d/vote", postID), tokenFor(t, user), map[string]interface{}{
			"voteType": voteType,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	vote(steady, voters[0], "UPVOTE")
	vote(steady, voters[1], "UPVOTE")

	vote(loud, voters[0], "UPVOTE")
	vote(loud, voters[1], "UPVOTE")
	vote(loud, voters[2], "UPVOTE")
	vote(loud, voters[3], "DOWNVOTE")
	vote(loud, author, "DOWNVOTE")

	titles := func(sortBy string) []string {
		w := doJSON(t, router, "GET", "/api/community/posts?sortBy="+sortBy, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		posts := decodeBody(t, w)["posts"].([]interface{})
		out := make([]string, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.(map[string]interface{})["title"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"steady", "loud", "fresh"}, titles("hot"))
	assert.Equal(t, "loud", titles("top")[0])
	assert.Equal(t, "fresh", titles("new")[0])
}

func TestCommentsFlow(t *testing.T) {
	router := setupServer(t)
	author := createVerifiedUser(t, "author")
	reader := createVerifiedUser(t, "reader")
	category := createCategory(t, "General")

	postID := createPost(t, router, tokenFor(t, author), category.ID, "Discuss", false)
	commentsPath := fmt.Sprintf("/api/community/posts/%d/comments", postID)

	w := doJSON(t, router, "POST", commentsPath, tokenFor(t, reader), map[string]interface{}{
		"content": "Great post!",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", commentsPath, tokenFor(t, author), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	comments := decodeBody(t, w)["comments"].([]interface{})
	assert.Len(t, comments, 1)
	assert.Equal(t, "Great post!", comments[0].(map[string]interface{})["content"])

	// 帖子列表里的评论数
	w = doJSON(t, router, "GET", "/api/community/posts", tokenFor(t, author), nil)
	post := decodeBody(t, w)["posts"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(1), post["comments"])

	// 给不存在的帖子评论
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/community/posts/%d/comments", postID+99), tokenFor(t, reader), map[string]interface{}{
		"content": "lost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
