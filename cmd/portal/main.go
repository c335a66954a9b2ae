package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/handler"
	"github.com/ykps/feedback-portal/internal/middleware"
	"github.com/ykps/feedback-portal/internal/repository"
	"github.com/ykps/feedback-portal/internal/service"
	"github.com/ykps/feedback-portal/pkg/cache"
	"github.com/ykps/feedback-portal/pkg/config"
	"github.com/ykps/feedback-portal/pkg/database"
	"github.com/ykps/feedback-portal/pkg/gateway"
	"github.com/ykps/feedback-portal/pkg/logger"
	reqidmiddleware "github.com/ykps/feedback-portal/pkg/middleware/requestid"
	"github.com/ykps/feedback-portal/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}

	identityGateway := gateway.NewClient(cfg.Gateway.BaseURL, &http.Client{Timeout: cfg.Gateway.Timeout})

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	classRepo := repository.NewClassRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)

	authSvc := service.NewAuthService(userRepo, identityGateway, sessionRepo, nil, logr, service.AuthConfig{
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
	})
	teacherSvc := service.NewTeacherService(teacherRepo, userRepo, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, classRepo, nil, logr)
	dashboardSvc := service.NewDashboardService(classRepo, feedbackRepo, logr)
	exportSvc := service.NewExportService(feedbackRepo, exportStore, nil, nil, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc, logr, cfg.Session.CookieName, cfg.Session.TTL)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	exportHandler := handler.NewExportHandler(exportSvc, dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))

	r.LoadHTMLGlob("web/templates/*")

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	optional := middleware.OptionalSession(authSvc, cfg.Session.CookieName)
	r.GET("/", optional, authHandler.Index)
	r.GET("/login", optional, authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	protected := r.Group("/", middleware.Session(authSvc, cfg.Session.CookieName))
	{
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/dashboard", dashboardHandler.Dashboard)
		protected.GET("/match-teacher", teacherHandler.MatchPage)
		protected.POST("/match-teacher", teacherHandler.Match)
		protected.GET("/feedback/new", feedbackHandler.NewPage)
		protected.POST("/feedback/new", feedbackHandler.Create)
		protected.GET("/feedback/edit/:id", feedbackHandler.EditPage)
		protected.POST("/feedback/edit/:id", feedbackHandler.Update)
		protected.POST("/feedback/delete", feedbackHandler.Delete)
		protected.GET("/feedback/export", exportHandler.ExportPage)
		protected.POST("/feedback/export", exportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
