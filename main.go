package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/api"
	"chat_relay/internal/repository"
	"chat_relay/internal/service"
	"chat_relay/internal/storage"
	"chat_relay/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Log.Level)

	// 初始化資料庫連接
	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移 participants 與 messages 兩張表
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化服務
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, service.Options{
		Broadcast:      cfg.Chat.Broadcast,
		ReaperInterval: cfg.Reaper.Interval,
		ReaperTimeout:  cfg.Reaper.Timeout,
	}, logger)

	// 背景清理閒置參與者
	go services.Reaper.Start(ctx)
	defer services.Reaper.Stop()

	// 設置 Gin 路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api.SetupRoutes(r, services, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Chat relay listening", "address", cfg.Server.Address, "driver", cfg.DB.Driver)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}

	// WebSocket 連線不受 Shutdown 管理，需要自行關閉
	services.Feed.Close()
	logger.Info("Chat relay stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
