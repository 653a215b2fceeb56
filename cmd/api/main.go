package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dietapp/internal/api"
	"dietapp/internal/config"
	"dietapp/internal/db"
	"dietapp/internal/diet"
	"dietapp/internal/platform/gemini"
	"dietapp/internal/platform/localllm"
	"dietapp/internal/recipe"
	"dietapp/internal/shopping"
	"dietapp/internal/weight"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("config.json")
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	bundle, err := diet.Load(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("error loading diet data: %w", err)
	}
	logger.Info("diet data loaded",
		zap.String("dir", cfg.DataDir),
		zap.Int("weeks", len(bundle.Plan)),
		zap.Int("cad_entries", len(bundle.CAD.Entries)))

	database, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer database.Close()

	scanner, closeScanner, err := newScanner(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScanner()
	logger.Info("recipe scanner", zap.String("backend", cfg.RecipeScanner))

	handler := api.NewHandler(api.Deps{
		Bundle:        bundle,
		RecipeStore:   recipe.NewSQLStore(database),
		WeightStore:   weight.NewSQLStore(database),
		ShoppingStore: shopping.NewSQLStore(database),
		Scanner:       scanner,
		UserID:        cfg.UserID,
		PublicDir:     cfg.PublicDir,
		Logger:        logger,
	})

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(cfg, handler, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newScanner builds the recipe scanner selected by the configuration. The
// returned close function is never nil.
func newScanner(ctx context.Context, cfg *config.Config) (api.RecipeScanner, func() error, error) {
	noop := func() error { return nil }

	switch cfg.RecipeScanner {
	case config.ScannerGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, noop, fmt.Errorf("error creating gemini client: %w", err)
		}
		return client, client.Close, nil
	case config.ScannerLocal:
		return localllm.NewClient(cfg.LocalLLMURL, cfg.LocalLLMModel), noop, nil
	default:
		return nil, noop, nil
	}
}

// newRouter sets up the middleware chain and the routes.
func newRouter(cfg *config.Config, handler *api.Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger(logger))

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(r)
	return r
}
