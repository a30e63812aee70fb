package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uniai/internal/adapter/httpapi"
	"uniai/internal/adapter/provider"
	"uniai/internal/infra/config"
	"uniai/internal/infra/logger"
	"uniai/internal/usecase"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New()
	slog.SetDefault(log)

	// 3. Initialize Provider Client
	llmClient := provider.NewDeepSeekClient(
		cfg.DeepSeekBaseURL,
		cfg.DeepSeekAPIKey,
		time.Duration(cfg.ProviderTimeout)*time.Second,
		log,
	)

	// 4. Initialize Usecases
	chatUsecase := usecase.NewChatUsecase(llmClient, cfg, log)
	scheduleUsecase := usecase.NewScheduleUsecase(llmClient, usecase.NewRetryPolicy(), log)

	// 5. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// 6. Register Handlers
	handler := httpapi.NewHandler(chatUsecase, scheduleUsecase, cfg.Version, log)
	handler.Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// 7. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
