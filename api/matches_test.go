package api_test

import (
	"net/http"
	"testing"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwipeEndpointMutualFlow(t *testing.T) {
	router := setupServer(t)
	alice := createVerifiedUser(t, "alice")
	bob := createVerifiedUser(t, "bob")

	// A喜欢B
	w := doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, alice), map[string]interface{}{
		"targetId": bob.ID,
		"action":   "like",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["isMutualMatch"])

	// B回赞，撮合成功
	w = doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, bob), map[string]interface{}{
		"targetId": alice.ID,
		"action":   "like",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["isMutualMatch"])
	assert.Equal(t, "It's a match!", body["message"])

	// 重复滑动同一个人报冲突
	w = doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, alice), map[string]interface{}{
		"targetId": bob.ID,
		"action":   "like",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 双方都能在匹配列表里看到对方
	w = doJSON(t, router, "GET", "/api/matches", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	matches := decodeBody(t, w)["matches"].([]interface{})
	assert.Len(t, matches, 1)
	other := matches[0].(map[string]interface{})["otherUser"].(map[string]interface{})
	assert.Equal(t, "bob", other["name"])

	w = doJSON(t, router, "GET", "/api/matches", tokenFor(t, bob), nil)
	matches = decodeBody(t, w)["matches"].([]interface{})
	assert.Len(t, matches, 1)

	// 双方各收到一条MATCH通知
	w = doJSON(t, router, "GET", "/api/notifications", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	nbody := decodeBody(t, w)
	assert.Equal(t, float64(1), nbody["unreadCount"])
	notifications := nbody["notifications"].([]interface{})
	assert.Len(t, notifications, 1)
	assert.Equal(t, "MATCH", notifications[0].(map[string]interface{})["type"])

	// 标记已读
	w = doJSON(t, router, "PUT", "/api/notifications/read", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "GET", "/api/notifications", tokenFor(t, alice), nil)
	assert.Equal(t, float64(0), decodeBody(t, w)["unreadCount"])
}

func TestSwipePassDoesNotMatch(t *testing.T) {
	router := setupServer(t)
	alice := createVerifiedUser(t, "alice")
	bob := createVerifiedUser(t, "bob")

	w := doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, alice), map[string]interface{}{
		"targetId": bob.ID,
		"action":   "like",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, bob), map[string]interface{}{
		"targetId": alice.ID,
		"action":   "pass",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isMutualMatch"])

	w = doJSON(t, router, "GET", "/api/matches", tokenFor(t, alice), nil)
	matches := decodeBody(t, w)["matches"].([]interface{})
	assert.Len(t, matches, 0)
}

func TestSwipeValidation(t *testing.T) {
	router := setupServer(t)
	alice := createVerifiedUser(t, "alice")

	// 不认识的动作
	w := doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, alice), map[string]interface{}{
		"targetId": alice.ID + 1,
		"action":   "wink",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 对自己滑动
	w = doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, alice), map[string]interface{}{
		"targetId": alice.ID,
		"action":   "like",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 目标不存在
	w = doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, alice), map[string]interface{}{
		"targetId": 9999,
		"action":   "like",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchListShowsLastMessage(t *testing.T) {
	router := setupServer(t)
	alice := createVerifiedUser(t, "alice")
	bob := createVerifiedUser(t, "bob")

	mutualMatch(t, router, alice, bob)

	var edge models.Match
	assert.NoError(t, database.DB.
		Where("actor_id = ? AND target_id = ?", alice.ID, bob.ID).
		First(&edge).Error)

	w := doJSON(t, router, "POST", "/api/messages", tokenFor(t, alice), map[string]interface{}{
		"matchId": edge.ID,
		"content": "Hello Bob!",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// B的列表里带着预览和未读数
	w = doJSON(t, router, "GET", "/api/matches", tokenFor(t, bob), nil)
	matches := decodeBody(t, w)["matches"].([]interface{})
	assert.Len(t, matches, 1)
	item := matches[0].(map[string]interface{})
	assert.Equal(t, "Hello Bob!", item["lastMessage"].(map[string]interface{})["content"])
	assert.Equal(t, float64(1), item["unreadCount"])
}

// mutualMatch 通过接口撮合两个用户
func mutualMatch(t *testing.T, router *gin.Engine, a, b *models.User) {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, a), map[string]interface{}{
		"targetId": b.ID,
		"action":   "like",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("first swipe failed: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, "POST", "/api/matches/create", tokenFor(t, b), map[string]interface{}{
		"targetId": a.ID,
		"action":   "like",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("second swipe failed: %d %s", w.Code, w.Body.String())
	}
}
