package api

import (
	"github.com/BinLe1988/heartlink/api/handlers"
	"github.com/BinLe1988/heartlink/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter 设置API路由
func SetupRouter(router *gin.Engine) {
	router.Use(cors.Default())

	// 公共API
	public := router.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
	}

	// 需要认证的API
	authorized := router.Group("/api")
	authorized.Use(middleware.Auth())
	{
		authorized.POST("/auth/logout", handlers.Logout)

		// 用户相关
		authorized.GET("/users", handlers.ListUsers)
		authorized.GET("/users/:id", handlers.GetUser)
		authorized.PUT("/users/profile", handlers.UpdateProfile)
		authorized.GET("/users/:id/preferences", handlers.GetPreferences)
		authorized.PUT("/users/:id/preferences", handlers.UpdatePreferences)
		authorized.GET("/users/:id/photos", handlers.ListPhotos)
		authorized.POST("/users/:id/photos", handlers.AddPhoto)
		authorized.PUT("/users/:id/photos", handlers.ReorderPhotos)

		// 匹配相关
		authorized.POST("/matches/create", handlers.CreateSwipe)
		authorized.GET("/matches", handlers.ListMatches)

		// 消息相关
		authorized.POST("/messages", handlers.SendMessage)
		authorized.GET("/messages/conversation/:matchId", handlers.GetConversation)
		authorized.PUT("/messages/:id/read", handlers.MarkMessageRead)

		// 社区相关
		authorized.GET("/community/categories", handlers.ListCategories)
		authorized.GET("/community/posts", handlers.ListPosts)
		authorized.POST("/community/posts", handlers.CreatePost)
		authorized.POST("/community/posts/:id/vote", handlers.VotePost)
		authorized.GET("/community/posts/:id/comments", handlers.ListComments)
		authorized.POST("/community/posts/:id/comments", handlers.CreateComment)

		// 社交平台绑定
		authorized.GET("/social/connect", handlers.ListConnections)
		authorized.POST("/social/connect", handlers.UpsertConnection)
		authorized.DELETE("/social/connect/:id", handlers.DeleteConnection)

		// 通知相关
		authorized.GET("/notifications", handlers.ListNotifications)
		authorized.PUT("/notifications/read", handlers.MarkNotificationsRead)
	}

	// 管理端API
	admin := router.Group("/api/admin")
	admin.Use(middleware.Auth(), middleware.AdminOnly())
	{
		admin.GET("/stats", handlers.AdminStats)
		admin.GET("/users", handlers.AdminListUsers)
		admin.PUT("/users", handlers.AdminUpdateUser)
		admin.DELETE("/users", handlers.AdminDeleteUser)
	}
}
