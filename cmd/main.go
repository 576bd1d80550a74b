package main

import (
	"log"

	"github.com/BinLe1988/heartlink/api"
	"github.com/BinLe1988/heartlink/cache"
	"github.com/BinLe1988/heartlink/configs"
	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	utils.InitLogger(cfg.Log.Level)

	// 初始化JWT
	utils.InitJWT(cfg)

	// 初始化数据库连接
	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// 初始化Redis，失败时降级为不缓存
	if err := cache.Initialize(cfg); err != nil {
		log.Printf("Redis unavailable, stats caching disabled: %v", err)
	}
	defer cache.Close()

	// 创建Gin实例
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	// 设置路由
	api.SetupRouter(router)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
