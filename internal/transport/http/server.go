package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"docuchat/internal/ai"
	appsvc "docuchat/internal/app"
	"docuchat/internal/bootstrap"
	"docuchat/internal/cache"
	"docuchat/internal/config"
	"docuchat/internal/platform/rabbitmq"
	"docuchat/internal/repository"
	"docuchat/internal/transport/http/handler"
	"docuchat/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.Default())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	documentRepo := repository.NewDocumentRepository(app.MySQL)
	folderRepo := repository.NewFolderRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)

	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	publisher := rabbitmq.NewTranscriptPublisher(app.MQConn, app.Config.RabbitMQ.TranscriptPersistQueue)

	engine := appsvc.NewAnswerEngine(
		ai.NewOpenAICompatibleClient(),
		chatConfigFrom(app.Config.LLM),
		app.Config.LLM.MaxHistoryMessage,
		time.Duration(app.Config.LLM.RequestTimeoutSeconds)*time.Second,
	)
	verifier, err := appsvc.NewStaticVerifier(app.Config.Auth.AdminUsername, app.Config.Auth.AdminPassword)
	if err != nil {
		return nil, err
	}

	sessions := appsvc.NewSessionManager()
	sessionService := appsvc.NewSessionService(
		documentRepo,
		messageRepo,
		publisher,
		historyCache,
		engine,
		verifier,
		app.Config.LLM.MaxHistoryMessage,
	)
	documentService := appsvc.NewDocumentService(documentRepo, folderRepo)

	sessionHandler := handler.NewSessionHandler(
		sessions,
		app.SessionSecret,
		time.Duration(app.Config.Auth.SessionTokenTTLMinutes)*time.Minute,
	)
	chatHandler := handler.NewChatHandler(sessionService)
	authHandler := handler.NewAuthHandler(sessionService)
	documentHandler := handler.NewDocumentHandler(documentService, sessionService)
	workspaceHandler := handler.NewWorkspaceHandler(documentService)

	v1 := router.Group("/api/v1")
	v1.POST("/sessions", sessionHandler.Create)

	authed := v1.Group("")
	authed.Use(middleware.SessionAuth(app.SessionSecret, sessions))

	authed.POST("/chat/query", chatHandler.SubmitQuery)
	authed.GET("/chat/history", chatHandler.GetHistory)
	authed.GET("/chat/export", chatHandler.ExportTranscript)

	authed.POST("/auth/credentials", authHandler.SubmitCredentials)
	authed.GET("/auth/state", authHandler.State)
	authed.POST("/auth/cancel", authHandler.CancelLogin)
	authed.POST("/auth/logout", authHandler.Logout)

	authed.POST("/documents", documentHandler.Upload)
	authed.GET("/documents", documentHandler.List)
	authed.DELETE("/documents/:id", documentHandler.Delete)
	authed.PATCH("/documents/:id/folder", documentHandler.Move)
	authed.POST("/documents/:id/summary", documentHandler.Summarize)

	authed.POST("/folders", documentHandler.CreateFolder)
	authed.GET("/folders", documentHandler.ListFolders)
	authed.DELETE("/folders/:id", documentHandler.DeleteFolder)

	authed.GET("/workspace/export", workspaceHandler.Export)
	authed.POST("/workspace/import", workspaceHandler.Import)

	return router, nil
}

func chatConfigFrom(cfg config.LLMConfig) ai.ChatConfig {
	return ai.ChatConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	}
}
