package routes

import (
	"net/http"

	"MindfulChatGo/controllers"
	"MindfulChatGo/middleware"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the handlers need.
type Deps struct {
	Users         *services.UserService
	Chat          *services.ChatService
	Conversations *services.ConversationService
	Exercises     *services.ExerciseService
	Moods         *services.MoodService
	RedisClient   *redis.Client // nil disables rate limiting
	RateLimitQPS  int
	IsProduction  bool
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	currentUserID := middleware.UserIDFromContext

	authController := controllers.NewAuthController(deps.Users, currentUserID)
	chatController := controllers.NewChatController(deps.Chat, currentUserID)
	conversationController := controllers.NewConversationController(deps.Conversations, currentUserID)
	exerciseController := controllers.NewExerciseController(deps.Exercises, currentUserID)
	moodController := controllers.NewMoodController(deps.Moods, currentUserID)

	// 公开路由（无需认证）
	public := r.Group("/api")
	{
		public.POST("/auth/login", authController.Login)
		public.GET("/exercises", exerciseController.List)
	}

	// 仅开发环境
	dev := r.Group("/api")
	dev.Use(middleware.DevOnly(deps.IsProduction))
	{
		dev.POST("/auth/test-user", authController.CreateTestUser)
		dev.POST("/seed-exercises", exerciseController.Seed)
	}

	// 需要认证的路由
	private := r.Group("/api")
	private.Use(middleware.AuthMiddleware())
	{
		private.GET("/auth/user", authController.GetUser)

		private.POST("/chat", middleware.RateLimit(deps.RedisClient, deps.RateLimitQPS), chatController.SendMessage)

		private.GET("/conversations", conversationController.List)
		private.POST("/conversations", conversationController.Create)
		private.GET("/conversations/:id/messages", conversationController.ListMessages)

		private.POST("/exercises/complete", exerciseController.Complete)

		private.POST("/mood", moodController.Create)
		private.GET("/mood", moodController.List)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
