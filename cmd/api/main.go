package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/damoang/angple-search/docs"
	"github.com/damoang/angple-search/internal/config"
	"github.com/damoang/angple-search/internal/handler"
	"github.com/damoang/angple-search/internal/middleware"
	"github.com/damoang/angple-search/internal/migration"
	"github.com/damoang/angple-search/internal/repository"
	"github.com/damoang/angple-search/internal/routes"
	"github.com/damoang/angple-search/internal/service"
	pkgcache "github.com/damoang/angple-search/pkg/cache"
	"github.com/damoang/angple-search/pkg/jwt"
	pkglogger "github.com/damoang/angple-search/pkg/logger"
	pkgredis "github.com/damoang/angple-search/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Angple Search API
// @version         2.0
// @description     Angple Community Platform - keyword search across communities, posts, comments and accounts
//
// @license.name    MIT
//
// @host            localhost:8082
// @BasePath        /api/v2
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles, dotenvErr := config.LoadDotEnv(".")

	// 설정 로드
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		pkglogger.Fatal("Failed to load config: %v", err)
	}

	// 로거 초기화
	pkglogger.InitStructured(cfg.Server.Env, cfg.Server.LogLevel)
	pkglogger.Info("APP_ENV=%s, config=%s, loaded env files: %v", cfg.Server.Env, configPath, dotenvFiles)
	if dotenvErr != nil {
		pkglogger.Warn("Skipped malformed env file: %v", dotenvErr)
	}
	config.LogResolved(cfg)

	// Postgres 연결 (검색은 DB 없이 동작할 수 없음)
	db, err := initDB(cfg)
	if err != nil {
		pkglogger.Fatal("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to Postgres")
	if cfg.IsDevelopment() {
		if err := migration.Run(db); err != nil {
			pkglogger.Warn("Migration warning: %v", err)
		}
		if err := migration.RunSearchIndexes(db, cfg.Search.TextSearchConfig); err != nil {
			pkglogger.Warn("Search index migration warning: %v", err)
		}
	}

	// Redis 연결 (선택, 실패하면 캐시 없이 동작)
	var cacheService pkgcache.Service
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		client, err := pkgredis.NewClient(context.Background(), pkgredis.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		} else {
			pkglogger.Info("Connected to Redis")
			redisClient = client
			cacheService = pkgcache.NewService(redisClient)
			defer redisClient.Close()
		}
	}

	// Search wiring
	store := repository.NewStore(db, repository.SearchOptions{
		TextSearchConfig:    cfg.Search.TextSearchConfig,
		SimilarityThreshold: cfg.Search.SimilarityThreshold,
	}, repository.SnapshotTxOptions(cfg.Search.SnapshotIsolation))
	hydrator := service.NewHydrator(cacheService, cfg.Search.ImageCacheDuration())
	searchService := service.NewSearchService(store, hydrator, cfg.Search.DefaultPageSize)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	sqlDB, err := db.DB()
	if err != nil {
		pkglogger.Fatal("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	// Gin 라우터 생성
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())

	// CORS 설정
	allowOrigins := cfg.CORS.SplitOrigins()
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	// Middleware
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	routes.Setup(
		router,
		handler.NewSearchHandler(searchService),
		handler.NewHealthHandler(sqlDB, cacheService),
		jwtManager,
		redisClient,
		middleware.SearchRateLimitConfig(cfg.Search.RateLimitPerMinute),
	)

	// DB connection gauge
	statsCtx, stopStats := context.WithCancel(context.Background())
	defer stopStats()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-statsCtx.Done():
				return
			case <-ticker.C:
				middleware.ObserveDBStats(sqlDB.Stats())
			}
		}
	}()

	// 서버 시작
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkglogger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	pkglogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		pkglogger.Error("Server forced to shutdown: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
