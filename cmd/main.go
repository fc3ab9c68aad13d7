package main

import (
	"workspace-service/internal/handler"
	"workspace-service/internal/middleware"
	"workspace-service/internal/workspace"
	"workspace-service/pkg/config"
	"workspace-service/pkg/jwtutil"
	"workspace-service/pkg/logger"
	"workspace-service/pkg/store"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting workspace service...", zap.String("environment", cfg.Server.Env))

	// Initialize the snapshot store
	if err := store.Initialize(cfg.Store.Path); err != nil {
		log.Fatal("Failed to initialize snapshot store", zap.Error(err))
	}
	log.Info("Snapshot store ready", zap.String("path", cfg.Store.Path))

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Finalize overdue standups left behind by a restart
	stopSweeper := workspace.StartSweeper(cfg.Standup.SweepInterval)
	defer close(stopSweeper)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.DELETE("/clear/v1", handler.Clear)

	// Authentication routes - these issue and revoke the tokens the rest of
	// the API requires
	auth := e.Group("/auth")
	auth.POST("/register/v3", handler.Register)
	auth.POST("/login/v3", handler.Login)
	auth.POST("/logout/v2", handler.Logout)
	auth.POST("/passwordreset/request/v1", handler.PasswordResetRequest)
	auth.POST("/passwordreset/reset/v1", handler.PasswordResetReset)

	// Channel routes
	channels := e.Group("/channels", middleware.AuthMiddleware)
	channels.POST("/create/v3", handler.ChannelsCreate)
	channels.GET("/list/v3", handler.ChannelsList)
	channels.GET("/listall/v3", handler.ChannelsListAll)

	channel := e.Group("/channel", middleware.AuthMiddleware)
	channel.GET("/details/v3", handler.ChannelDetails)
	channel.POST("/join/v3", handler.ChannelJoin)
	channel.POST("/invite/v3", handler.ChannelInvite)
	channel.GET("/messages/v3", handler.ChannelMessages)
	channel.POST("/leave/v2", handler.ChannelLeave)
	channel.POST("/addowner/v2", handler.ChannelAddOwner)
	channel.POST("/removeowner/v2", handler.ChannelRemoveOwner)

	// DM routes
	dm := e.Group("/dm", middleware.AuthMiddleware)
	dm.POST("/create/v2", handler.DmCreate)
	dm.GET("/list/v2", handler.DmList)
	dm.DELETE("/remove/v2", handler.DmRemove)
	dm.GET("/details/v2", handler.DmDetails)
	dm.POST("/leave/v2", handler.DmLeave)
	dm.GET("/messages/v2", handler.DmMessages)

	// Message routes
	message := e.Group("/message", middleware.AuthMiddleware)
	message.POST("/send/v2", handler.MessageSend)
	message.POST("/senddm/v2", handler.MessageSendDm)
	message.PUT("/edit/v2", handler.MessageEdit)
	message.DELETE("/remove/v2", handler.MessageRemove)
	message.POST("/sendlater/v1", handler.MessageSendLater)
	message.POST("/sendlaterdm/v1", handler.MessageSendLaterDm)
	message.POST("/share/v1", handler.MessageShare)
	message.POST("/react/v1", handler.MessageReact)
	message.POST("/unreact/v1", handler.MessageUnreact)
	message.POST("/pin/v1", handler.MessagePin)
	message.POST("/unpin/v1", handler.MessageUnpin)

	// User routes
	user := e.Group("/user", middleware.AuthMiddleware)
	user.GET("/profile/v3", handler.UserProfile)
	user.PUT("/profile/setname/v2", handler.UserSetName)
	user.PUT("/profile/setemail/v2", handler.UserSetEmail)
	user.PUT("/profile/sethandle/v2", handler.UserSetHandle)
	user.GET("/stats/v1", handler.UserStats)

	users := e.Group("/users", middleware.AuthMiddleware)
	users.GET("/all/v2", handler.UsersAll)
	users.GET("/stats/v1", handler.UsersStats)

	// Admin routes
	admin := e.Group("/admin", middleware.AuthMiddleware)
	admin.DELETE("/user/remove/v1", handler.AdminUserRemove)
	admin.POST("/userpermission/change/v1", handler.AdminPermissionChange)

	// Standup routes
	standup := e.Group("/standup", middleware.AuthMiddleware)
	standup.POST("/start/v1", handler.StandupStart)
	standup.GET("/active/v1", handler.StandupActive)
	standup.POST("/send/v1", handler.StandupSend)

	// Notification and search routes
	e.GET("/notifications/get/v1", handler.NotificationsGet, middleware.AuthMiddleware)
	e.GET("/search/v1", handler.Search, middleware.AuthMiddleware)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
