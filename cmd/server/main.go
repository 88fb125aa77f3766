// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"private-chat-go/internal/config"
	"private-chat-go/internal/handler"
	"private-chat-go/internal/middleware"
	"private-chat-go/internal/model"
	"private-chat-go/internal/repository"
	"private-chat-go/internal/service"
	"private-chat-go/pkg/database"
	"private-chat-go/pkg/gemini"
	"private-chat-go/pkg/log"
	"private-chat-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("./configs/config.yaml")
	if err != nil {
		panic(err)
	}

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis 和对象存储
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)

	if err := database.DB.AutoMigrate(
		&model.Chat{},
		&model.Folder{},
		&model.Message{},
		&model.Attachment{},
		&model.Setting{},
	); err != nil {
		log.Fatal("数据库表结构迁移失败", err)
	}

	// 4. 初始化 Repository
	chatRepo := repository.NewChatRepository(database.DB)
	folderRepo := repository.NewFolderRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)
	attachmentRepo := repository.NewAttachmentRepository(database.DB)
	settingRepo := repository.NewSettingRepository(database.DB)
	sessionRepo := repository.NewSessionRepository(database.RDB)
	blobRepo := repository.NewBlobRepository(storage.MinioClient, cfg.MinIO.BucketName)

	// 5. 初始化 Service (依赖注入)
	geminiClient := gemini.NewClient(cfg.Gemini)
	authService := service.NewAuthService(sessionRepo, cfg.Auth)
	settingService := service.NewSettingService(settingRepo)
	chatService := service.NewChatService(chatRepo, messageRepo, attachmentRepo, blobRepo)
	folderService := service.NewFolderService(folderRepo, chatRepo)
	attachmentService := service.NewAttachmentService(chatRepo, attachmentRepo, blobRepo)
	conversationService := service.NewConversationService(messageRepo, attachmentRepo, blobRepo, settingService, geminiClient)

	// 6. 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	messageHandler := handler.NewMessageHandler(chatService, conversationService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	externalHandler := handler.NewExternalHandler(chatService, attachmentService, conversationService)
	folderHandler := handler.NewFolderHandler(folderService)
	settingHandler := handler.NewSettingHandler(settingService)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	api := r.Group("/api")
	{
		// 无需会话的路由：登录、外部自动化入口（仅认对话自己的密钥）
		api.POST("/auth/login", authHandler.Login)
		api.POST("/chats/:id/external", externalHandler.Handle)

		// 其余路由全部需要会话认证
		authed := api.Group("", middleware.SessionAuth(sessionRepo))
		{
			authed.GET("/auth/check", authHandler.Check)

			authed.GET("/chats", chatHandler.ListChats)
			authed.POST("/chats", chatHandler.CreateChat)
			authed.POST("/chats/:id/delete", chatHandler.DeleteChat)
			authed.GET("/chats/:id/messages", messageHandler.ListMessages)
			authed.POST("/chats/:id/messages", messageHandler.SendMessage)
			authed.GET("/chats/:id/attachments", attachmentHandler.ListAttachments)
			authed.POST("/chats/:id/attachments", attachmentHandler.UploadAttachment)
			authed.GET("/chats/:id/settings", chatHandler.GetSettings)
			authed.POST("/chats/:id/settings", chatHandler.UpdateSettings)

			authed.GET("/folders", folderHandler.ListFolders)
			authed.POST("/folders", folderHandler.CreateFolder)
			authed.GET("/folders/:id", folderHandler.GetFolder)
			authed.PATCH("/folders/:id", folderHandler.RenameFolder)
			authed.DELETE("/folders/:id", folderHandler.DeleteFolder)

			authed.GET("/settings", settingHandler.GetSettings)
			authed.POST("/settings", settingHandler.UpdateSettings)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
