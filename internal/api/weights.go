package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dietapp/internal/weight"
)

// GetWeights returns the user's measurements keyed by date.
func (h *Handler) GetWeights(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	entries, err := h.WeightStore.ListEntries(ctx, h.UserID)
	if err != nil {
		h.storeError(c, "loading weights", err)
		return
	}
	c.JSON(http.StatusOK, weight.ToMap(entries))
}

// SaveWeight records the measurement for a date, replacing any previous one.
func (h *Handler) SaveWeight(c *gin.Context) {
	var in weight.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	entry, err := h.WeightStore.SaveEntry(ctx, h.UserID, in)
	if err != nil {
		h.storeError(c, "saving weight", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}

type deleteWeightRequest struct {
	Date string `json:"date"`
}

// DeleteWeight removes the measurement for the date given in the body or
// in ?date=.
func (h *Handler) DeleteWeight(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		var req deleteWeightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		date = req.Date
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.WeightStore.DeleteEntry(ctx, h.UserID, date); err != nil {
		if errors.Is(err, weight.ErrInvalidDate) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.storeError(c, "deleting weight", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetWeightMetrics summarises the measurements over ?timeframe=
// (settimana, mese or tutto). It answers null when there are none.
func (h *Handler) GetWeightMetrics(c *gin.Context) {
	tf, err := weight.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	entries, err := h.WeightStore.ListEntries(ctx, h.UserID)
	if err != nil {
		h.storeError(c, "loading weights", err)
		return
	}
	c.JSON(http.StatusOK, weight.ComputeMetrics(entries, tf, h.Now()))
}
