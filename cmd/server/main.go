package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/iamasit07/4-in-a-row/solo/internal/config"
	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/oracle"
	transportHttp "github.com/iamasit07/4-in-a-row/solo/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/solo/internal/transport/http/middleware"
	"github.com/iamasit07/4-in-a-row/solo/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	humanColor, ok := domain.ParseColor(cfg.HumanColor)
	if !ok {
		log.Fatalf("Invalid HUMAN_COLOR %q", cfg.HumanColor)
	}

	// 1. Snapshot cache
	if err := redis.InitRedis(cfg); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	var store *redis.SnapshotStore
	if redis.IsRedisEnabled() {
		store = redis.NewSnapshotStore(redis.RedisClient, redis.DefaultSnapshotTTL)
	} else {
		store = redis.NewSnapshotStore(nil, 0)
	}

	// 2. Sessions
	oracles := func(difficulty string) (oracle.Oracle, string, error) {
		o, err := bot.NewOracle(difficulty)
		if err != nil {
			return nil, "", err
		}
		return o, bot.GetBotName(difficulty), nil
	}
	sessionManager := game.NewSessionManager(oracles, store, cfg.TickInterval)
	defaults := game.Options{
		HumanColor:   humanColor,
		SearchBudget: cfg.SearchBudget,
		MaxEvents:    cfg.MaxEvents,
	}

	// 3. Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout)
	go cleanupWorker.Start(workerCtx)

	// 4. Handlers
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, sessionManager)
	sessionHandler := transportHttp.NewSessionHandler(sessionManager, store, defaults, cfg.BotDifficulty)
	healthHandler := &transportHttp.HealthHandler{SessionManager: sessionManager, CacheEnabled: redis.IsRedisEnabled}

	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.GET("/healthz", healthHandler.Healthz)
	api := router.Group("/api/sessions")
	{
		api.POST("", sessionHandler.CreateSession)
		api.GET("/live", sessionHandler.GetLiveGames)
		api.GET("/:id", sessionHandler.GetSnapshot)
	}
	router.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var result *multierror.Error
	if err := srv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	stopWorkers()
	sessionManager.Shutdown()
	if err := redis.CloseRedis(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}
