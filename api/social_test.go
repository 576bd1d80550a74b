package api_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"

	"github.com/stretchr/testify/assert"
)

func connectBody(platform string) map[string]interface{} {
	return map[string]interface{}{
		"platform":         platform,
		"accessToken":      "token-" + platform,
		"refreshToken":     "refresh-" + platform,
		"platformUserId":   "ext-123",
		"platformUsername": "mika_" + platform,
		"profileUrl":       "https://" + platform + ".example.com/mika",
		"permissions":      []string{"read_profile"},
	}
}

func TestSocialConnectUpsert(t *testing.T) {
	router := setupServer(t)
	user := createVerifiedUser(t, "mika")
	token := tokenFor(t, user)

	// 第一次绑定创建记录
	w := doJSON(t, router, "POST", "/api/social/connect", token, connectBody("instagram"))
	assert.Equal(t, http.StatusCreated, w.Code)

	// 同平台再次绑定只刷新，不新增
	body := connectBody("instagram")
	body["accessToken"] = "rotated-token"
	w = doJSON(t, router, "POST", "/api/social/connect", token, body)
	assert.Equal(t, http.StatusOK, w.Code)

	var connections []models.SocialConnection
	database.DB.Where("user_id = ?", user.ID).Find(&connections)
	assert.Len(t, connections, 1)
	assert.Equal(t, "rotated-token", connections[0].AccessToken)
	assert.True(t, connections[0].IsActive)
	assert.NotNil(t, connections[0].LastSync)

	// 不同平台是独立记录
	w = doJSON(t, router, "POST", "/api/social/connect", token, connectBody("tiktok"))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/api/social/connect", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody(t, w)["connections"].([]interface{})
	assert.Len(t, listed, 2)

	// 令牌绝不回显
	assert.False(t, strings.Contains(strings.ToLower(w.Body.String()), "token"))
}

func TestSocialConnectMissingFields(t *testing.T) {
	router := setupServer(t)
	user := createVerifiedUser(t, "mika")

	w := doJSON(t, router, "POST", "/api/social/connect", tokenFor(t, user), map[string]interface{}{
		"platform": "instagram",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSocialDisconnect(t *testing.T) {
	router := setupServer(t)
	user := createVerifiedUser(t, "mika")
	other := createVerifiedUser(t, "rin")
	token := tokenFor(t, user)

	w := doJSON(t, router, "POST", "/api/social/connect", token, connectBody("instagram"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var connection models.SocialConnection
	assert.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&connection).Error)

	// 别人删不掉我的绑定
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/social/connect/%d", connection.ID), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/social/connect/%d", connection.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/social/connect", token, nil)
	assert.Len(t, decodeBody(t, w)["connections"].([]interface{}), 0)

	// 已删除的再删一次
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/social/connect/%d", connection.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
