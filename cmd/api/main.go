package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/NebularEclipse/SE/api/swagger"
	"github.com/NebularEclipse/SE/internal/handler"
	"github.com/NebularEclipse/SE/internal/middleware"
	"github.com/NebularEclipse/SE/internal/models"
	"github.com/NebularEclipse/SE/internal/repository"
	"github.com/NebularEclipse/SE/internal/service"
	"github.com/NebularEclipse/SE/internal/session"
	"github.com/NebularEclipse/SE/pkg/cache"
	"github.com/NebularEclipse/SE/pkg/config"
	"github.com/NebularEclipse/SE/pkg/database"
	"github.com/NebularEclipse/SE/pkg/logger"
	corsmiddleware "github.com/NebularEclipse/SE/pkg/middleware/cors"
	reqidmiddleware "github.com/NebularEclipse/SE/pkg/middleware/requestid"
)

// @title SE Grade Tracker API
// @version 0.1.0
// @description Course, assessment and grade prediction service
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	sessionStore := session.NewRedisStore(redisClient, cfg.Session.TTL)

	authSvc := service.NewAuthService(studentRepo, adminRepo, auditRepo, sessionStore, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, validate, logr)
	predictionSvc := service.NewPredictionService(courseRepo, assessmentRepo, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session)
	courseHandler := handler.NewCourseHandler(courseSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	assessmentHandler := handler.NewAssessmentHandler(assessmentSvc)
	predictionHandler := handler.NewPredictionHandler(predictionSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Identity(authSvc, cfg.Session.CookieName))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	loginPath := cfg.Session.LoginPath
	requireLogin := middleware.RequireAuthenticated(loginPath)
	requireAdmin := middleware.RequireRole(models.RoleAdmin, loginPath)
	requireStudent := middleware.RequireRole(models.RoleStudent, loginPath)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)
	}

	courses := r.Group("/courses")
	{
		courses.GET("", requireLogin, courseHandler.List)
		courses.GET("/:id", requireAdmin, courseHandler.Get)
		courses.POST("", requireAdmin, middleware.Audit(auditRepo, "create", "course"), courseHandler.Create)
		courses.PUT("/:id", requireAdmin, middleware.Audit(auditRepo, "update", "course"), courseHandler.Update)
		courses.DELETE("/:id", requireAdmin, middleware.Audit(auditRepo, "delete", "course"), courseHandler.Delete)
	}

	students := r.Group("/students")
	{
		students.GET("", requireAdmin, studentHandler.List)
		students.GET("/:id", requireAdmin, studentHandler.Get)
		students.PUT("/:id", requireAdmin, middleware.Audit(auditRepo, "update", "student"), studentHandler.Update)
		// Delete is only login-guarded; the role check happens in the service.
		students.DELETE("/:id", requireLogin, middleware.Audit(auditRepo, "delete", "student"), studentHandler.Delete)
	}

	assessments := r.Group("/assessments")
	{
		assessments.GET("", requireStudent, assessmentHandler.List)
		assessments.GET("/:id", requireStudent, assessmentHandler.Get)
		assessments.POST("", requireStudent, middleware.Audit(auditRepo, "create", "assessment"), assessmentHandler.Create)
		assessments.PUT("/:id", requireStudent, middleware.Audit(auditRepo, "update", "assessment"), assessmentHandler.Update)
		assessments.DELETE("/:id", requireLogin, middleware.Audit(auditRepo, "delete", "assessment"), assessmentHandler.Delete)
	}

	prediction := r.Group("/prediction", requireStudent)
	{
		prediction.GET("", predictionHandler.Report)
		prediction.GET("/export", predictionHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
