package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string

	AnalyticsBaseURL   string
	LeaderboardTTLSecs int
	CollectionTTLSecs  int
	IncludeListings    bool
	RefreshPollSecs    int

	LCDURL         string
	AccessContract string
	APIKey         string

	OpenAIAPIKey      string
	OpenAIModel       string
	AdvisorMaxHistory int

	HTTPPort       int
	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		AnalyticsBaseURL: strings.TrimSpace(os.Getenv("ANALYTICS_BASE_URL")),
		APIKey:           os.Getenv("API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.AnalyticsBaseURL == "" {
		log.Println("Warning: ANALYTICS_BASE_URL not set, using the public endpoint")
	}

	cfg.LeaderboardTTLSecs = 240
	if v := os.Getenv("LEADERBOARD_TTL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LeaderboardTTLSecs = n
		}
	}

	cfg.CollectionTTLSecs = 120
	if v := os.Getenv("COLLECTION_TTL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CollectionTTLSecs = n
		}
	}

	cfg.IncludeListings = true
	if v := strings.TrimSpace(os.Getenv("INCLUDE_LISTINGS")); v != "" {
		cfg.IncludeListings = strings.EqualFold(v, "true")
	}

	cfg.RefreshPollSecs = 120
	if v := os.Getenv("REFRESH_POLL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshPollSecs = n
		}
	}

	cfg.LCDURL = strings.TrimSpace(os.Getenv("LCD_URL"))
	if cfg.LCDURL == "" {
		cfg.LCDURL = "https://rest.sei-apis.com"
	}

	cfg.AccessContract = strings.TrimSpace(os.Getenv("ACCESS_CONTRACT"))
	if cfg.AccessContract == "" {
		log.Println("Warning: ACCESS_CONTRACT not set, wallet gating disabled")
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, advisor will be disabled")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.AdvisorMaxHistory = 20
	if v := os.Getenv("ADVISOR_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxHistory = n
		}
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.SSHPort = 23234
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/floorboard_ed25519"
	}

	return cfg
}
