package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qaops/testcase-gateway/internal/cache"
	"github.com/qaops/testcase-gateway/internal/config"
	"github.com/qaops/testcase-gateway/internal/handler"
	"github.com/qaops/testcase-gateway/internal/metrics"
	"github.com/qaops/testcase-gateway/internal/service"

	_ "github.com/qaops/testcase-gateway/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Test Case Gateway API
// @version 1.0.0
// @description Gateway that turns UI screenshots into generated test cases and proxies spreadsheet export.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional .env for local runs; a missing file is not an error.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.Default()

	openaiOpts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
	if cfg.OpenAI.BaseURL != "" {
		openaiOpts = append(openaiOpts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}

	testCaseService := service.NewTestCaseService(
		logger,
		openai.NewClient(openaiOpts...),
		cfg.OpenAI,
	)

	if cfg.CacheEnable {
		testCaseService.SetCacheClient(cache.NewRedisCache(cfg.RedisConfig))
		logger.Println("set redis as cache")
	}

	excelService, err := service.NewExcelService(logger, cfg.Excel)
	if err != nil {
		log.Fatalf("excel client error: %v", err)
	}

	g := handler.NewGenerateHandler(testCaseService, cfg.Server.MaxUploadBytes)
	e := handler.NewExcelHandler(excelService)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}),
		metrics.Middleware,
	}...)

	r.Group(func(r chi.Router) {
		r.Use(handler.RequireAPIKey(cfg.Auth.APIKey))
		r.Post("/api/generate-test-cases", g.Generate)
		r.Post("/generate-excel-proxy", e.GenerateExcel)
	})

	r.Get("/health", handler.Health)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}
