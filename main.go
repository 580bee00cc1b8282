package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/chowdown/catalog"
	"github.com/danielhkuo/chowdown/cliparse"
	"github.com/danielhkuo/chowdown/db"
	"github.com/danielhkuo/chowdown/relay"
	"github.com/danielhkuo/chowdown/router"
	"github.com/danielhkuo/chowdown/session"
	"github.com/danielhkuo/chowdown/store"
)

func main() {
	var err error

	// Load .env if present (dev convenience; env vars win in production)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire collaborators
	st := store.NewSQLStore(dbConn)
	cat := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey)

	relays := relay.Multi{relay.LogRelay{}}
	if cfg.TelegramToken != "" {
		tg, err := relay.NewTelegramRelay(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			slog.Error("telegram relay setup failed", "error", err)
			os.Exit(1)
		}
		relays = append(relays, tg)
	}

	mgr := session.NewManager(st, cat, relays)

	// Create router
	mux := router.NewRouter(mgr, cat, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
