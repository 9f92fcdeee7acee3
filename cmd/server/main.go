package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/HansLim7/inventoryapp/internal/adapter/handler"
	"github.com/HansLim7/inventoryapp/internal/adapter/storage"
	"github.com/HansLim7/inventoryapp/internal/core/service"
	"github.com/HansLim7/inventoryapp/internal/pkg/clock"
	"github.com/HansLim7/inventoryapp/internal/port"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	httpAddr := env("HTTP_ADDR", ":8080")
	backend := env("STORE_BACKEND", "sheets")
	spreadsheetID := env("SPREADSHEET_ID", "")
	credentialsFile := env("SHEETS_CREDENTIALS_FILE", "")
	mysqlDSN := env("MYSQL_DSN", "root:root@tcp(localhost:3306)/inventory?parseTime=true")
	redisAddr := env("REDIS_ADDR", "localhost:6379")
	inventoryTable := env("INVENTORY_TABLE", "Sheet1")
	logTable := env("LOG_TABLE", "Sheet2")
	tzName := env("TIMEZONE", "Local")

	cacheTTL, err := time.ParseDuration(env("CACHE_TTL", "5s"))
	if err != nil {
		logger.Fatal("invalid CACHE_TTL", zap.Error(err))
	}
	invalidateOnWrite := env("CACHE_INVALIDATE_ON_WRITE", "false") == "true"

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		logger.Fatal("invalid TIMEZONE", zap.String("tz", tzName), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backing store: the shared spreadsheet, or MySQL for local development.
	var store port.TableStore
	switch backend {
	case "sheets":
		if spreadsheetID == "" {
			logger.Fatal("SPREADSHEET_ID is required for the sheets backend")
		}
		var opts []option.ClientOption
		if credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
		svc, err := sheets.NewService(ctx, opts...)
		if err != nil {
			logger.Fatal("sheets client", zap.Error(err))
		}
		store = storage.NewSheetsStore(svc, spreadsheetID, inventoryTable)
		logger.Info("using sheets backend", zap.String("spreadsheet", spreadsheetID))
	case "mysql":
		db, err := sql.Open("mysql", mysqlDSN)
		if err != nil {
			logger.Fatal("mysql open", zap.Error(err))
		}
		defer db.Close()
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			logger.Fatal("mysql ping", zap.Error(err))
		}
		mysqlStore := storage.NewMySQLStore(db, inventoryTable, logTable)
		if err := mysqlStore.EnsureSchema(ctx); err != nil {
			logger.Fatal("mysql schema", zap.Error(err))
		}
		store = mysqlStore
		logger.Info("using mysql backend")
	default:
		logger.Fatal("unknown STORE_BACKEND", zap.String("backend", backend))
	}

	// Snapshot cache in front of the store.
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}

	cached := storage.NewCachedStore(store, storage.NewRedisCache(rdb), storage.CachePolicy{
		TTL:               cacheTTL,
		InvalidateOnWrite: invalidateOnWrite,
	}, logger)

	inventorySvc := service.NewInventoryService(
		cached, clock.RealClock{}, loc, inventoryTable, logTable, logger)
	session := service.NewSession()
	logger.Info("session started", zap.String("session_id", session.ID))

	h := handler.NewHTTPHandler(inventorySvc, session, logger)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/inventory", h.Inventory)
	mux.HandleFunc("/api/inventory/options", h.Options)
	mux.HandleFunc("/api/inventory/update", h.Update)
	mux.HandleFunc("/api/log", h.AuditLog)
	mux.HandleFunc("/api/view", h.ToggleView)

	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)

	session.Reset()
	logger.Info("server stopped")
}

func env(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
