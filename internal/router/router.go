package router

import (
	"time"

	"roundly/config"
	"roundly/internal/handler"
	"roundly/internal/middleware"
	"roundly/internal/repository"
	"roundly/internal/roundup"
	"roundly/internal/service"
	"roundly/internal/ws"
	"roundly/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	logger := config.GetLogger()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	notifHub := ws.NewHub()

	// Pipeline
	settings := roundup.NewSettings(settingRepo, cfg.Sync)
	resolver := roundup.NewResolver(userRepo, cfg.Demo, settings, logger)
	source := roundup.NewSyntheticSource(settings)
	notifier := roundup.NewNotifier(notificationRepo)
	engine := roundup.NewEngine(txRepo, mappingRepo, portfolioRepo, notifier, logger)
	reprocessor := roundup.NewReprocessor(txRepo, engine, logger)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, settings)
	syncSvc := service.NewSyncService(resolver, source, txRepo, engine, notifHub, logger)
	suggestSvc := service.NewSuggestService(&cfg.AI, mappingRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, txRepo, portfolioRepo, notificationRepo, goalRepo)
	syncHandler := handler.NewSyncHandler(syncSvc)
	transactionHandler := handler.NewTransactionHandler(txRepo)
	portfolioHandler := handler.NewPortfolioHandler(portfolioRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	mappingHandler := handler.NewMappingHandler(mappingRepo, suggestSvc)
	goalHandler := handler.NewGoalHandler(goalRepo, notifier)
	groupHandler := handler.NewGroupHandler(groupRepo, userRepo, portfolioRepo, txRepo, notifier)
	adminHandler := handler.NewAdminHandler(adminRepo, userRepo, settingRepo, reprocessor)
	contactHandler := handler.NewContactHandler(contactRepo, cfg.Contact.ThrottleWindow)
	uploadHandler := handler.NewUploadHandler(cloud, userRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		// Sync resolves through the demo fallback when unauthenticated.
		api.POST("/sync", middleware.AuthOptional(&cfg.JWT), syncHandler.Run)
		api.POST("/sync/ingest", middleware.AuthOptional(&cfg.JWT), syncHandler.Ingest)

		api.POST("/contact", contactHandler.Submit)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/settings", meHandler.UpdateSettings)
			me.GET("/dashboard", meHandler.GetDashboard)
			me.GET("/transactions", transactionHandler.List)
			me.GET("/transactions/counts", transactionHandler.Counts)
			me.GET("/portfolio", portfolioHandler.List)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			me.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
			me.GET("/goals", goalHandler.List)
			me.POST("/goals", goalHandler.Create)
			me.DELETE("/goals/:id", goalHandler.Delete)
			me.POST("/avatar", uploadHandler.UploadAvatar)
		}

		mappings := api.Group("/mappings")
		mappings.Use(authMw)
		{
			mappings.GET("", mappingHandler.List)
			mappings.POST("", mappingHandler.Submit)
		}

		groups := api.Group("/groups")
		groups.Use(authMw)
		{
			groups.POST("/family", groupHandler.CreateFamily)
			groups.POST("/business", groupHandler.CreateBusiness)
			groups.POST("/invite", groupHandler.Invite)
			groups.GET("/dashboard", groupHandler.Dashboard)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/activity", adminHandler.Activity)
			admin.POST("/reprocess", adminHandler.Reprocess)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSetting)
			admin.POST("/mappings/:id/approve", mappingHandler.Approve)
			admin.POST("/mappings/suggest", mappingHandler.Suggest)
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, notifHub))

	return r
}
