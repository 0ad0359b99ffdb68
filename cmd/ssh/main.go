package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"floorboard/internal/cache"
	"floorboard/internal/config"
	"floorboard/internal/provider"
	"floorboard/internal/service"
	"floorboard/internal/tui"
	"floorboard/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc              = godotenv.Load
	loadConfigFunc           = config.Load
	initRedisFunc            = cache.InitRedis
	initTracerFunc           = tracing.InitTracer
	newAnalyticsProviderFunc = func(tracer trace.Tracer, baseURL string) service.AnalyticsProvider {
		return provider.NewAnalyticsProvider(tracer, baseURL)
	}
	newDashboardServiceFunc = service.NewDashboardService
	newWishServerFunc       = wish.NewServer
	setupSignalNotify       = ossignal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
)

// authorizedFingerprints parses SSH_AUTHORIZED_FINGERPRINTS, a comma
// separated list of SHA256 public key fingerprints. An empty list means
// open access.
func authorizedFingerprints() map[string]bool {
	raw := os.Getenv("SSH_AUTHORIZED_FINGERPRINTS")
	if raw == "" {
		return nil
	}
	allowed := make(map[string]bool)
	for _, fp := range strings.Split(raw, ",") {
		fp = strings.TrimSpace(fp)
		if fp != "" {
			allowed[fp] = true
		}
	}
	return allowed
}

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Redis (the TUI read path is cache plus upstream, no Postgres)
	os.Setenv("REDIS_URL", cfg.RedisURL)
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

	// Create the dashboard service
	analytics := newAnalyticsProviderFunc(tracer, cfg.AnalyticsBaseURL)
	dashboard := newDashboardServiceFunc(tracer, analytics, cache.NewRedisStore(cache.Client))
	dashboard.SetTTLs(
		time.Duration(cfg.LeaderboardTTLSecs)*time.Second,
		time.Duration(cfg.CollectionTTLSecs)*time.Second,
	)

	allowed := authorizedFingerprints()

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			fingerprint := gossh.FingerprintSHA256(key)
			if allowed == nil {
				log.Printf("SSH auth accepted (open access): user=%s fingerprint=%s", ctx.User(), fingerprint)
				return true
			}
			if !allowed[fingerprint] {
				log.Printf("SSH auth denied: fingerprint=%s", fingerprint)
				return false
			}
			log.Printf("SSH auth accepted: user=%s fingerprint=%s", ctx.User(), fingerprint)
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				svc := tui.Services{
					Dashboard: dashboard,
					Username:  s.User(),
				}

				model := tui.NewAppModel(svc)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
