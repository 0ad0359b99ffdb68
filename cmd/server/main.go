package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floorboard/internal/advisor"
	"floorboard/internal/bot"
	"floorboard/internal/cache"
	"floorboard/internal/config"
	"floorboard/internal/db"
	"floorboard/internal/handler"
	"floorboard/internal/job"
	"floorboard/internal/provider"
	"floorboard/internal/repository"
	"floorboard/internal/service"
	"floorboard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "floorboard/docs"
)

var (
	loadEnvFunc              = godotenv.Load
	loadConfigFunc           = config.Load
	initPostgresFunc         = db.InitPostgres
	initRedisFunc            = cache.InitRedis
	initTracerFunc           = tracing.InitTracer
	newSeriesRepoFunc        = repository.NewSeriesRepository
	newConversationRepoFunc  = repository.NewConversationRepository
	newAnalyticsProviderFunc = func(tracer trace.Tracer, baseURL string) service.AnalyticsProvider {
		return provider.NewAnalyticsProvider(tracer, baseURL)
	}
	newWalletProviderFunc = func(tracer trace.Tracer, lcdURL, contract string) handler.OwnershipChecker {
		return provider.NewWalletProvider(tracer, lcdURL, contract)
	}
	newDashboardServiceFunc = service.NewDashboardService
	newRefresherFunc        = job.NewRefresher
	startRefresherFunc      = func(r *job.Refresher, ctx context.Context) { go r.Start(ctx) }
	startTelegramBotFunc    = bot.StartTelegramBot
	newOpenAIClientFunc     = advisor.NewOpenAIClient
	newAdvisorServiceFunc   = advisor.NewAdvisorService
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.Default
	setupSignalNotify       = signal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Floorboard API
// @version         1.0
// @description     NFT collection analytics with a TTL-cached read path.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create repositories and run migrations
	seriesRepo := newSeriesRepoFunc(db.Pool, tracer)
	convRepo := newConversationRepoFunc(db.Pool, tracer)
	if db.Pool != nil {
		if err := seriesRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Create providers and the dashboard service
	analytics := newAnalyticsProviderFunc(tracer, cfg.AnalyticsBaseURL)
	dashboard := newDashboardServiceFunc(tracer, analytics, cache.NewRedisStore(cache.Client))
	dashboard.SetTTLs(
		time.Duration(cfg.LeaderboardTTLSecs)*time.Second,
		time.Duration(cfg.CollectionTTLSecs)*time.Second,
	)

	// Postgres is optional; without it history serving and archiving stay off
	var history handler.SeriesHistory
	var archive job.SeriesArchiver
	if db.Pool != nil {
		history = seriesRepo
		archive = seriesRepo
	}

	// Start the background refresher (stopped by ctx cancel)
	refresher := newRefresherFunc(tracer, dashboard, archive, cfg.RefreshPollSecs, cfg.IncludeListings)
	startRefresherFunc(refresher, ctx)

	// Advisor (optional)
	var advisorSvc *advisor.AdvisorService
	if cfg.OpenAIAPIKey != "" {
		llmClient := newOpenAIClientFunc(cfg.OpenAIAPIKey)
		advisorSvc = newAdvisorServiceFunc(tracer, llmClient, dashboard, convRepo, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
		log.Println("Advisor service enabled")
	}

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	var advisorQ bot.AdvisorQuerier
	if advisorSvc != nil {
		advisorQ = advisorSvc
	}
	startTelegramBotFunc(dashboard, advisorQ)

	// Wallet gate (disabled without a contract)
	var gate gin.HandlerFunc
	if cfg.AccessContract != "" {
		checker := newWalletProviderFunc(tracer, cfg.LCDURL, cfg.AccessContract)
		gate = handler.WalletGate(checker)
		log.Println("Wallet gate enabled")
	}

	// Create handlers and routes
	h := newHandlerFunc(tracer, dashboard, history, cfg.IncludeListings)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("floorboard"))

	h.RegisterRoutes(r, handler.APIKeyAuth(cfg.APIKey), gate)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
