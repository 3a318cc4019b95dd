package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MindfulChatGo/cache"
	"MindfulChatGo/config"
	"MindfulChatGo/middleware"
	"MindfulChatGo/routes"
	"MindfulChatGo/services"
	"MindfulChatGo/storage"
	"MindfulChatGo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 初始化日志
	if err := config.InitLogger(conf.LogDir); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	if err := utils.InitJWT(conf.JWTSecret); err != nil {
		if conf.IsProduction() {
			log.Fatalf("无法初始化JWT: %v", err)
		}
		// 开发环境使用进程内随机密钥, 重启后令牌失效
		config.Logger.Warnw("JWT_SECRET 未设置，使用临时随机密钥")
		utils.InitJWT(utils.NewRequestID() + utils.NewRequestID())
	}
	utils.InitMetrics()

	// 初始化数据库
	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
	}
	store := storage.NewGormStorage(db)

	// 初始化Redis, 未配置时关闭缓存与限流
	var redisClient *redis.Client
	var catalogCache cache.Cache
	if conf.RedisEnabled() {
		redisClient, err = config.InitRedis(conf)
		if err != nil {
			log.Fatalf("无法初始化Redis: %v", err)
		}
		defer redisClient.Close()
		catalogCache = cache.NewRedisCache(redisClient, "mindfulchat")
	}

	// 初始化语言模型, nil 表示模板模式
	model, err := services.NewLLMModel(context.Background(), conf)
	if err != nil {
		log.Fatalf("无法初始化语言模型: %v", err)
	}
	if model == nil {
		config.Logger.Infow("未配置语言模型，使用模板回复")
	}
	responder, analyzer := services.NewGenerators(model, conf)

	exerciseService := services.NewExerciseService(store, catalogCache, conf.ExerciseCacheTTL())
	if _, err := exerciseService.SeedCatalog(context.Background()); err != nil {
		log.Fatalf("无法初始化练习目录: %v", err)
	}

	// 设置Gin模式
	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r, conf)

	// 注册路由
	routes.RegisterRoutes(r, routes.Deps{
		Users:         services.NewUserService(store),
		Chat:          services.NewChatService(store, responder, analyzer),
		Conversations: services.NewConversationService(store),
		Exercises:     exerciseService,
		Moods:         services.NewMoodService(store),
		RedisClient:   redisClient,
		RateLimitQPS:  conf.RateLimitQPS,
		IsProduction:  conf.IsProduction(),
	})

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		config.Logger.Infow("启动服务器", "port", conf.ServerPort, "llmProvider", conf.LLMProvider, "dbDriver", conf.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		config.Logger.Errorw("服务器关闭失败", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	config.Logger.Infow("服务器已关闭")
}
