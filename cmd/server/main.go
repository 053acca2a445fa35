package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devinsight/devinsight/internal/adapters"
	"github.com/devinsight/devinsight/internal/cache"
	"github.com/devinsight/devinsight/internal/config"
	"github.com/devinsight/devinsight/internal/database"
	"github.com/devinsight/devinsight/internal/errors"
	"github.com/devinsight/devinsight/internal/insights"
	"github.com/devinsight/devinsight/internal/monitoring"
	"github.com/devinsight/devinsight/internal/profile"
	"github.com/devinsight/devinsight/internal/render"
)

func main() {
	logger := monitoring.NewLogger(slog.LevelInfo)
	slog.SetDefault(logger.Logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.Store.DataDir)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	metrics := monitoring.NewMetrics()
	adapter := adapters.NewGitHubAdapter(cfg.GitHub.Token, cfg.GitHub.RequestsPerSec, logger, metrics)
	aggregator := insights.NewAggregator(insights.DefaultRegistry())
	service := profile.NewService(adapter, aggregator, database.NewRepository(db), logger, metrics)

	router := gin.New()
	router.Use(monitoring.Middleware(metrics, logger))
	router.Use(errors.ErrorHandler())
	router.Use(errors.RecoveryHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	responseCache := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	router.Use(responseCache.Middleware(metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"metrics":   metrics.GetStats(),
		})
	})

	router.GET("/api/profile/:username", func(c *gin.Context) {
		result, err := scanOrLoad(c, service)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/api/profile/:username/markdown", func(c *gin.Context) {
		result, err := scanOrLoad(c, service)
		if err != nil {
			c.Error(err)
			return
		}
		doc, err := render.Markdown(render.Profile{
			Username: result.Username,
			Insights: result.Insights,
			Summary:  result.Summary,
		})
		if err != nil {
			c.Error(errors.NewInternalError("rendering profile", err))
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
	})

	router.GET("/api/scans", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		scans, err := service.History(limit)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"scans": scans})
	})

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}

// scanOrLoad serves the stored scan when ?stored=true, otherwise runs a
// fresh one.
func scanOrLoad(c *gin.Context, service *profile.Service) (*profile.Result, error) {
	username := c.Param("username")
	if c.Query("stored") == "true" {
		return service.Latest(username)
	}
	return service.Scan(c.Request.Context(), username)
}
