package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linktrack/internal/config"
	"linktrack/internal/handler"
	"linktrack/internal/model"
	"linktrack/internal/mq"
	"linktrack/internal/service"
	"linktrack/internal/slug"
	"linktrack/internal/store"
	"linktrack/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Linktrack API
// @version 1.0
// @description URL shortening and campaign tracking service

// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Server.Mode)

	// Primary store with in-memory fallback. If MySQL is down at boot
	// the process still serves, fully degraded.
	var linkStore store.LinkStore
	var settingStore store.SettingStore

	mysqlStore, err := store.NewMySQLStore(&cfg.Database.MySQL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MySQL, serving from in-memory store")
		mem := store.NewMemory()
		linkStore = mem
		settingStore = mem
	} else {
		defer mysqlStore.Close()
		fallback := store.NewFallback(mysqlStore)
		linkStore = fallback
		settingStore = mysqlStore

		go reportMode(fallback)
	}

	// Redis cache for the redirect path
	cache := store.NewRedisCache(&cfg.Database.Redis)
	defer cache.Close()

	// Slug generator probes the store for collisions
	gen := slug.NewGenerator(cfg.Slug.Length, cfg.Slug.MaxAttempts, linkStore.Exists)

	// Initialize MQ (optional, can be nil)
	var mqProducer *mq.Producer
	if cfg.RocketMQ.NameServer != "" {
		mqProducer, err = mq.NewProducer(&cfg.RocketMQ)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ producer, recording clicks synchronously")
		}
	}

	// Services
	linkSvc := service.NewLinkService(linkStore, cache, gen, cfg.Server.BaseURL)
	settingSvc := service.NewSettingService(settingStore)
	// A nil *mq.Producer must not become a non-nil interface value
	var clickProducer mq.ProducerInterface
	if mqProducer != nil {
		clickProducer = mqProducer
	}
	resolver := service.NewResolver(linkStore, cache, clickProducer)

	// Setup Gin
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	// HTML error pages for the redirect path
	router.LoadHTMLGlob("templates/*")

	// Management API
	authHandler := handler.NewAuthHandler(&cfg.Auth)
	router.POST("/api/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	{
		linkHandler := handler.NewLinkHandler(linkSvc)
		api.GET("/links", linkHandler.List)
		api.POST("/links", linkHandler.Create)
		api.GET("/links/:slug", linkHandler.Get)
		api.PUT("/links/:slug", linkHandler.Update)
		api.DELETE("/links/:slug", linkHandler.Delete)
		api.HEAD("/links/:slug", linkHandler.Head)
		api.GET("/links/:slug/stats", linkHandler.Stats)

		settingHandler := handler.NewSettingHandler(settingSvc)
		api.GET("/settings", settingHandler.List)
		api.GET("/settings/:key", settingHandler.Get)
		api.PUT("/settings/:key", settingHandler.Upsert)
	}

	// Redirect handler (short slugs)
	redirectHandler := handler.NewRedirectHandler(resolver)
	router.GET("/:slug", redirectHandler.Redirect)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}
		if fb, ok := linkStore.(*store.Fallback); ok {
			status["store_mode"] = string(fb.Mode())
		}
		c.JSON(http.StatusOK, status)
	})

	// Start MQ consumer if configured
	if cfg.RocketMQ.NameServer != "" && mysqlStore != nil {
		mqConsumer, err := mq.NewConsumer(&cfg.RocketMQ, func(ctx context.Context, msg *mq.ClickMessage) error {
			if err := mysqlStore.IncrementClicks(ctx, msg.Slug); err != nil {
				return err
			}
			return mysqlStore.SaveClick(ctx, &model.ClickEvent{
				Slug:      msg.Slug,
				ClientIP:  msg.ClientIP,
				UserAgent: msg.UserAgent,
				Referer:   msg.Referer,
				ClickedAt: msg.ClickedAt,
			})
		})

		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ consumer")
		} else {
			go func() {
				if err := mqConsumer.Subscribe(); err != nil {
					log.Error().Err(err).Msg("Failed to subscribe to RocketMQ")
				}
			}()
			defer mqConsumer.Close()
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Close producer
	if mqProducer != nil {
		mqProducer.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures the logger
func setupLogger(mode string) {
	if mode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Use console writer for pretty output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

// reportMode logs once when the store degrades to the in-memory fallback
func reportMode(fb *store.Fallback) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	last := fb.Mode()
	for range ticker.C {
		if mode := fb.Mode(); mode != last {
			log.Warn().Str("mode", string(mode)).Msg("Link store mode changed")
			last = mode
		}
	}
}
