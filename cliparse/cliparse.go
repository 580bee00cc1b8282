package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	CatalogBaseURL string
	CatalogAPIKey  string
	TelegramToken  string
	TelegramChatID int64
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("chowdown", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CatalogBaseURL, "catalog-url", "", "Restaurant catalog base URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CatalogAPIKey, "catalog-key", "", "Restaurant catalog API key (prefer env)")
	fs.StringVar(&cfg.TelegramToken, "telegram-token", "", "Telegram bot token (prefer env)")
	fs.Int64Var(&cfg.TelegramChatID, "telegram-chat", 0, "Telegram chat id for notifications")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.CatalogBaseURL == "" {
		cfg.CatalogBaseURL = os.Getenv("CATALOG_BASE_URL")
	}
	if cfg.CatalogBaseURL == "" {
		return Config{}, errors.New("catalog base URL required (use -catalog-url or CATALOG_BASE_URL env)")
	}

	// Optional settings
	if cfg.CatalogAPIKey == "" {
		cfg.CatalogAPIKey = os.Getenv("CATALOG_API_KEY")
	}
	if cfg.TelegramToken == "" {
		cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	}
	if cfg.TelegramChatID == 0 {
		if chatStr := os.Getenv("TELEGRAM_CHAT_ID"); chatStr != "" {
			chatID, err := strconv.ParseInt(chatStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid TELEGRAM_CHAT_ID env variable")
			}
			cfg.TelegramChatID = chatID
		}
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return Config{}, errors.New("TELEGRAM_CHAT_ID required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}
