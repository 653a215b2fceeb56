package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dietapp/internal/diet"
	"dietapp/internal/recipe"
	"dietapp/internal/shopping"
	"dietapp/internal/weight"
)

const (
	dbTimeout   = 5 * time.Second
	scanTimeout = 45 * time.Second
)

// RecipeScanner reads a recipe draft from a photo.
type RecipeScanner interface {
	ScanRecipe(ctx context.Context, imageData []byte, format string) (*recipe.Recipe, error)
}

// Deps holds what the handler serves.
type Deps struct {
	Bundle        *diet.Bundle
	RecipeStore   recipe.Store
	WeightStore   weight.Store
	ShoppingStore shopping.Store
	// Scanner is optional; without it the scan endpoint answers 503.
	Scanner   RecipeScanner
	UserID    string
	PublicDir string
	Logger    *zap.Logger
	Now       func() time.Time
}

// Handler handles HTTP requests.
type Handler struct {
	Deps
}

// NewHandler creates a new Handler.
func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{Deps: d}
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) log(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return h.Logger
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// storeError answers a failed store or model call: 408 when the request
// context ran out, 500 otherwise.
func (h *Handler) storeError(c *gin.Context, what string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		h.log(c).Warn(what+" timed out", zap.Error(err))
		abortWithError(c, http.StatusRequestTimeout, what+" timed out")
		return
	}
	h.log(c).Error(what+" failed", zap.Error(err))
	abortWithError(c, http.StatusInternalServerError, err.Error())
}
