package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BinLe1988/heartlink/api"
	"github.com/BinLe1988/heartlink/cache"
	"github.com/BinLe1988/heartlink/configs"
	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupServer 内存数据库加完整路由
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db
	cache.RDB = nil

	cfg := &configs.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 1
	utils.InitJWT(cfg)

	router := gin.New()
	api.SetupRouter(router)
	return router
}

// createVerifiedUser 直接建一个可被推荐的用户
func createVerifiedUser(t *testing.T, name string) *models.User {
	t.Helper()
	now := time.Now()
	user := models.User{
		Email:    name + "@example.com",
		Password: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:     name,
		Age:      25,
		Gender:   models.GenderFemale,
		Country:  "Japan",
		City:     "Tokyo",
		Verified: true,
		Active:   true,
		LastSeen: &now,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

// createAdmin 建管理员账号
func createAdmin(t *testing.T) *models.User {
	t.Helper()
	admin := createVerifiedUser(t, "admin")
	admin.Role = models.RoleAdmin
	if err := database.DB.Save(admin).Error; err != nil {
		t.Fatalf("failed to promote admin: %v", err)
	}
	return admin
}

// tokenFor 为用户签发测试令牌
func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// doJSON 发起JSON请求
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// userPath 拼接用户子资源路径
func userPath(user *models.User, suffix string) string {
	return fmt.Sprintf("/api/users/%d%s", user.ID, suffix)
}

// dbFirstPreferences 读取第一条偏好记录
func dbFirstPreferences(prefs *models.UserPreferences) error {
	return database.DB.First(prefs).Error
}

// decodeBody 解析响应JSON
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v (body: %s)", err, w.Body.String())
	}
	return body
}
