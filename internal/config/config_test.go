package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ANALYTICS_BASE_URL", "")
	t.Setenv("LEADERBOARD_TTL_SECS", "")
	t.Setenv("COLLECTION_TTL_SECS", "")
	t.Setenv("INCLUDE_LISTINGS", "")
	t.Setenv("PORT", "")

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.LeaderboardTTLSecs != 240 || cfg.CollectionTTLSecs != 120 {
		t.Fatalf("expected default TTLs 240/120, got %d/%d", cfg.LeaderboardTTLSecs, cfg.CollectionTTLSecs)
	}
	if !cfg.IncludeListings {
		t.Fatal("expected listings included by default")
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("ANALYTICS_BASE_URL", "http://analytics.internal")
	t.Setenv("LEADERBOARD_TTL_SECS", "300")
	t.Setenv("COLLECTION_TTL_SECS", "60")
	t.Setenv("INCLUDE_LISTINGS", "false")

	cfg := Load()
	if cfg.TelegramBotToken != "token" || cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.AnalyticsBaseURL != "http://analytics.internal" {
		t.Fatalf("unexpected analytics base url: %s", cfg.AnalyticsBaseURL)
	}
	if cfg.LeaderboardTTLSecs != 300 || cfg.CollectionTTLSecs != 60 {
		t.Fatalf("unexpected TTLs: %d/%d", cfg.LeaderboardTTLSecs, cfg.CollectionTTLSecs)
	}
	if cfg.IncludeListings {
		t.Fatal("INCLUDE_LISTINGS=false ignored")
	}

	t.Setenv("LEADERBOARD_TTL_SECS", "bad")
	cfg = Load()
	if cfg.LeaderboardTTLSecs != 240 {
		t.Fatalf("invalid TTL should fall back to default, got %d", cfg.LeaderboardTTLSecs)
	}
}
