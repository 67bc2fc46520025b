package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appsvc "profilehub/internal/app"
	"profilehub/internal/bootstrap"
	"profilehub/internal/repository"
	"profilehub/internal/session"
	"profilehub/internal/transport/http/handler"
	"profilehub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.Logging(logger), middleware.Metrics(), gin.Recovery())

	sessionTTL := time.Duration(app.Config.Session.TTLMinute) * time.Minute
	cookieName := app.Config.Session.CookieName

	userRepo := repository.NewUserRepository(app.DB)
	sessions := session.NewStore(app.Redis, sessionTTL)
	codec := session.NewCookieCodec(app.Config.Session.Secret, sessionTTL)

	authService := appsvc.NewAuthService(userRepo, sessions)
	profileService := appsvc.NewProfileService(userRepo, app.Uploads)
	inspectorService := appsvc.NewInspectorService(app.DB)

	authHandler := handler.NewAuthHandler(authService, codec, cookieName)
	profileHandler := handler.NewProfileHandler(profileService, app.Config.Upload.MaxSizeMB)
	adminHandler := handler.NewAdminHandler(inspectorService, profileService)
	healthHandler := handler.NewHealthHandler(app)

	// Thin presentation glue: static pages plus the uploaded images.
	router.StaticFile("/", "web/index.html")
	router.StaticFile("/login", "web/login.html")
	router.StaticFile("/register", "web/register.html")
	router.Static("/static/uploads", app.Uploads.Dir())

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	protected := router.Group("/")
	protected.Use(middleware.RequireSession(authService, codec, cookieName))
	protected.GET("/dashboard", profileHandler.Dashboard)
	protected.GET("/update_profile", profileHandler.Dashboard)
	protected.POST("/update_profile", profileHandler.UpdateProfile)

	admin := protected.Group("/")
	admin.Use(adminHandler.RequireAdmin)
	admin.GET("/view_database", adminHandler.ViewDatabase)

	return router
}
