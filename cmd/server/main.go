package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Guiladg/wacookieexpress/config"
	"github.com/Guiladg/wacookieexpress/database"
	authhandlers "github.com/Guiladg/wacookieexpress/internal/handlers/auth"
	userhandlers "github.com/Guiladg/wacookieexpress/internal/handlers/users"
	"github.com/Guiladg/wacookieexpress/internal/logger"
	"github.com/Guiladg/wacookieexpress/internal/middleware"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/notify"
	"github.com/Guiladg/wacookieexpress/internal/stores"
	"github.com/Guiladg/wacookieexpress/internal/token"
	"github.com/Guiladg/wacookieexpress/internal/user"
	"github.com/Guiladg/wacookieexpress/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	zlog, err := logger.New(!cfg.Production())
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		zlog.Fatalw("database connection error", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatalw("database migration error", "error", err)
	}

	userStore := &stores.GormUserStore{DB: db}
	refreshTokenStore := &stores.GormRefreshTokenStore{DB: db}
	verificationCodeStore := &stores.GormVerificationCodeStore{DB: db}

	tokenService := &token.JWTService{
		AccessSecret:  []byte(cfg.AccessTokenSecret),
		RefreshSecret: []byte(cfg.RefreshTokenSecret),
		AccessTTL:     cfg.AccessTokenTTL(),
		RefreshTTL:    cfg.RefreshTokenTTL(),
		RefreshTokens: refreshTokenStore,
		Log:           zlog,
	}

	hasher := user.BcryptHasher{}
	notifier := notify.NewWhatsAppNotifier(cfg.WhatsAppPhoneID, cfg.WhatsAppSendToken, zlog)
	verificationService := &verification.Service{
		Codes:    verificationCodeStore,
		Notifier: notifier,
	}

	auth := authhandlers.NewAuthHandler(
		userStore,
		refreshTokenStore,
		verificationCodeStore,
		tokenService,
		hasher,
		verificationService,
		cfg.AccessTokenTTL(),
		cfg.RefreshTokenTTL(),
		cfg.Production(),
		zlog,
	)
	users := userhandlers.NewUserHandler(userStore, hasher, cfg.PageSize, cfg.Production(), zlog)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	authed := middleware.Auth(tokenService, cfg.Production())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/logout", auth.Logout)
		authGroup.POST("/refresh", auth.Refresh)
		authGroup.POST("/reset", auth.ResetPassword)
		authGroup.POST("/restore", auth.RestorePassword)

		authGroup.GET("/validate", authed, auth.Validate)
		authGroup.GET("/user", authed, auth.UserData)
		authGroup.POST("/change", authed, auth.ChangePassword)
		authGroup.POST("/askNewPhone", authed, auth.AskNewPhone)
		authGroup.POST("/confirmNewPhone", authed, auth.ConfirmNewPhone)
	}

	userGroup := api.Group("/users", authed, middleware.RequireRole(models.RoleAdmin))
	{
		userGroup.GET("", users.List)
		userGroup.GET("/:id", users.Get)
		userGroup.POST("", users.Create)
		userGroup.PATCH("/:id", users.Update)
		userGroup.DELETE("/:id", users.Delete)
	}

	zlog.Infow("server listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
