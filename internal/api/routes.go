package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the handler into r. Unknown non-API paths are served
// from the public directory with index.html as the fallback.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/plan", h.GetPlan)
	api.GET("/plan/:week/:day", h.GetDay)
	api.GET("/today", h.GetToday)
	api.GET("/notes", h.GetNotes)
	api.GET("/cad", h.SearchCAD)
	api.GET("/cad/:code", h.GetCAD)

	api.POST("/shopping", h.GenerateShopping)
	api.GET("/shopping/state", h.GetShoppingState)
	api.DELETE("/shopping/state", h.ResetShoppingState)
	api.POST("/shopping/state/toggle", h.ToggleShoppingItem)
	api.PUT("/shopping/state/tab", h.SetShoppingTab)

	api.GET("/ricette", h.GetRecipes)
	api.POST("/ricette", h.CreateRecipe)
	api.PUT("/ricette", h.UpdateRecipe)
	api.DELETE("/ricette", h.DeleteRecipe)
	api.POST("/ricette/scan", h.ScanRecipe)

	api.GET("/pesate", h.GetWeights)
	api.POST("/pesate", h.SaveWeight)
	api.DELETE("/pesate", h.DeleteWeight)
	api.GET("/pesate/metrics", h.GetWeightMetrics)

	r.NoRoute(h.ServeStatic)
}

// ServeStatic serves the single page app.
func (h *Handler) ServeStatic(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || h.PublicDir == "" {
		abortWithError(c, http.StatusNotFound, "Not found")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		abortWithError(c, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := filepath.Join(h.PublicDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		c.File(name)
		return
	}

	index := filepath.Join(h.PublicDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		abortWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.File(index)
}
