package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dietapp/internal/platform/gemini"
	"dietapp/internal/recipe"
)

// maxScanSize bounds the photos accepted by the scan endpoint.
const maxScanSize = 10 << 20

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// GetRecipes returns one recipe when ?id= is given, otherwise the list,
// optionally filtered by ?categoria=.
func (h *Handler) GetRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if idParam := c.Query("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid id")
			return
		}
		r, err := h.RecipeStore.GetRecipe(ctx, h.UserID, id)
		if err != nil {
			h.storeError(c, "loading recipe", err)
			return
		}
		if r == nil {
			abortWithError(c, http.StatusNotFound, "Ricetta non trovata")
			return
		}
		c.JSON(http.StatusOK, r)
		return
	}

	category := strings.ToLower(c.Query("categoria"))
	if category != "" && !recipe.IsCategory(category) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("unknown categoria %q", category))
		return
	}
	recipes, err := h.RecipeStore.ListRecipes(ctx, h.UserID, category)
	if err != nil {
		h.storeError(c, "loading recipes", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// bindRecipe decodes, normalizes and validates the recipe in the body and
// shrinks its photo.
func (h *Handler) bindRecipe(c *gin.Context) (*recipe.Recipe, bool) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	r.Normalize()
	if err := r.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if r.Photo != nil {
		photo, err := recipe.NormalizePhoto(*r.Photo)
		if err != nil {
			if errors.Is(err, recipe.ErrInvalidPhoto) {
				abortWithError(c, http.StatusBadRequest, err.Error())
				return nil, false
			}
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return nil, false
		}
		r.Photo = &photo
	}
	r.UserID = h.UserID
	return &r, true
}

// CreateRecipe saves a new recipe.
func (h *Handler) CreateRecipe(c *gin.Context) {
	r, ok := h.bindRecipe(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	id, err := h.RecipeStore.CreateRecipe(ctx, r)
	if err != nil {
		h.storeError(c, "saving recipe", err)
		return
	}
	h.log(c).Info("recipe created", zap.Int64("id", id), zap.String("categoria", r.Category))
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// UpdateRecipe overwrites the recipe whose id is in the body.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	r, ok := h.bindRecipe(c)
	if !ok {
		return
	}
	if r.ID == 0 {
		abortWithError(c, http.StatusBadRequest, "ID mancante")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.RecipeStore.UpdateRecipe(ctx, r); err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Ricetta non trovata")
			return
		}
		h.storeError(c, "updating recipe", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteRecipe removes the recipe given by ?id=.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "ID mancante")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.RecipeStore.DeleteRecipe(ctx, h.UserID, id); err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Ricetta non trovata")
			return
		}
		h.storeError(c, "deleting recipe", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ScanRecipe reads a recipe draft from an uploaded photo. The draft is
// returned for the user to complete and is not saved.
func (h *Handler) ScanRecipe(c *gin.Context) {
	if h.Scanner == nil {
		abortWithError(c, http.StatusServiceUnavailable, "recipe scanning is not configured")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("get form err: %s", err.Error()))
		return
	}

	if !allowedExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		abortWithError(c, http.StatusBadRequest, "Invalid file type. Only JPEG, JPG, and PNG images are allowed.")
		return
	}
	if file.Size > maxScanSize {
		abortWithError(c, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("open file err: %s", err.Error()))
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("read image err: %s", err.Error()))
		return
	}

	imageData, format, err := recipe.ResizeImage(imageData)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scanTimeout)
	defer cancel()

	logger := h.log(c).With(zap.String("image_hash", gemini.GenerateImageHash(imageData)))
	logger.Info("scanning recipe photo", zap.String("format", format), zap.Int("bytes", len(imageData)))

	draft, err := h.Scanner.ScanRecipe(ctx, imageData, format)
	if err != nil {
		if errors.Is(err, recipe.ErrNoDraft) {
			abortWithError(c, http.StatusUnprocessableEntity, "no recipe found in the photo")
			return
		}
		h.storeError(c, "recipe scan", err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
