package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dietapp/internal/shopping"
)

type itemView struct {
	shopping.Item
	Display string `json:"display"`
	Checked bool   `json:"checked"`
}

type listResponse struct {
	ListKey   string             `json:"list_key"`
	Selection shopping.Selection `json:"selection"`
	Tab       string             `json:"tab"`
	UpdatedAt string             `json:"updated_at"`
	Items     []itemView         `json:"items"`
	Pending   int                `json:"pending"`
	Unparsed  []string           `json:"unparsed,omitempty"`
}

func newListResponse(st *shopping.State, unparsed []string) listResponse {
	items := make([]itemView, 0, len(st.Items))
	for _, it := range st.Items {
		items = append(items, itemView{Item: it, Display: shopping.FormatQuantities(it.Quantities), Checked: st.IsChecked(it.Key)})
	}
	return listResponse{
		ListKey:   st.ListKey,
		Selection: st.Selection,
		Tab:       st.Tab,
		UpdatedAt: st.UpdatedAt,
		Items:     items,
		Pending:   len(st.Pending()),
		Unparsed:  unparsed,
	}
}

// GenerateShopping builds a shopping list from the selection in the body and
// makes it the user's current list.
func (h *Handler) GenerateShopping(c *gin.Context) {
	var sel shopping.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := shopping.Generate(sel, h.Bundle.Plan, h.Bundle.Products)
	if err != nil {
		if errors.Is(err, shopping.ErrInvalidSelection) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if len(res.Unparsed) > 0 {
		h.log(c).Info("ingredients without a readable quantity",
			zap.String("list_key", sel.ListKey()),
			zap.Strings("names", res.Unparsed))
	}

	st := shopping.NewState(sel, res, h.Now())

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()
	if err := h.ShoppingStore.SaveState(ctx, h.UserID, st); err != nil {
		h.storeError(c, "saving shopping list", err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(st, res.Unparsed))
}

func (h *Handler) currentList(ctx context.Context, c *gin.Context) (*shopping.State, bool) {
	st, err := h.ShoppingStore.GetState(ctx, h.UserID)
	if err != nil {
		h.storeError(c, "loading shopping list", err)
		return nil, false
	}
	if st == nil {
		abortWithError(c, http.StatusNotFound, "no shopping list")
		return nil, false
	}
	return st, true
}

// GetShoppingState returns the user's current list.
func (h *Handler) GetShoppingState(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	st, ok := h.currentList(ctx, c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newListResponse(st, nil))
}

// ResetShoppingState discards the user's current list.
func (h *Handler) ResetShoppingState(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	if err := h.ShoppingStore.DeleteState(ctx, h.UserID); err != nil {
		h.storeError(c, "deleting shopping list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type toggleRequest struct {
	Key string `json:"key" binding:"required"`
}

// ToggleShoppingItem flips the checked status of one item.
func (h *Handler) ToggleShoppingItem(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.updateList(c, func(st *shopping.State) error {
		_, err := st.Toggle(req.Key)
		return err
	})
}

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// SetShoppingTab switches the list between the todo and done tabs.
func (h *Handler) SetShoppingTab(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.updateList(c, func(st *shopping.State) error {
		return st.SetTab(req.Tab)
	})
}

func (h *Handler) updateList(c *gin.Context, change func(*shopping.State) error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	st, ok := h.currentList(ctx, c)
	if !ok {
		return
	}
	if err := change(st); err != nil {
		switch {
		case errors.Is(err, shopping.ErrUnknownItem):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, shopping.ErrInvalidTab):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	st.UpdatedAt = h.Now().UTC().Format(time.RFC3339)

	if err := h.ShoppingStore.SaveState(ctx, h.UserID, st); err != nil {
		h.storeError(c, "saving shopping list", err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(st, nil))
}
