package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/plm-dev/enlistment-api/api/swagger"
	"github.com/plm-dev/enlistment-api/internal/handler"
	internalmiddleware "github.com/plm-dev/enlistment-api/internal/middleware"
	"github.com/plm-dev/enlistment-api/internal/repository"
	"github.com/plm-dev/enlistment-api/internal/service"
	"github.com/plm-dev/enlistment-api/pkg/cache"
	"github.com/plm-dev/enlistment-api/pkg/config"
	"github.com/plm-dev/enlistment-api/pkg/database"
	"github.com/plm-dev/enlistment-api/pkg/logger"
	corsmiddleware "github.com/plm-dev/enlistment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/plm-dev/enlistment-api/pkg/middleware/requestid"
)

// @title Enlistment API
// @version 1.0.0
// @description Course-enlistment backend: eligibility resolution, selection cart and one-time finalization
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		// Carts and the eligibility cache degrade gracefully without Redis.
		logr.Sugar().Warnw("redis unavailable, carts will not persist", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	enlistmentRepo := repository.NewEnlistmentRepository(db)
	cartRepo := repository.NewCartRepository(redisClient, cfg.Enlistment.CartTTL)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	authSvc := service.NewAuthService(studentRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	eligibilitySvc := service.NewEligibilityService(subjectRepo, studentRepo, cacheSvc, logr)
	enlistmentSvc := service.NewEnlistmentService(enlistmentRepo, studentRepo, subjectRepo, cartRepo, metricsSvc, validate, logr, cfg.Enlistment.MaxUnitsPerSemester)
	cartSvc := service.NewCartService(cartRepo, subjectRepo, enlistmentRepo, logr, cfg.Enlistment.MaxUnitsPerSemester)
	subjectSvc := service.NewSubjectService(subjectRepo)
	studentSvc := service.NewStudentService(studentRepo, enlistmentRepo)
	serSvc := service.NewSERService(studentRepo, enlistmentRepo)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Students:    handler.NewStudentHandler(studentSvc, enlistmentSvc),
		Subjects:    handler.NewSubjectHandler(eligibilitySvc, subjectSvc, cfg.Enlistment.CurrentSemester),
		Cart:        handler.NewCartHandler(cartSvc, cfg.Enlistment.MaxUnitsPerSemester),
		Enlistments: handler.NewEnlistmentHandler(enlistmentSvc, serSvc, cfg.Enlistment.CurrentSemester),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "semester", cfg.Enlistment.CurrentSemester)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
