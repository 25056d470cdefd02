package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) getCart(c *gin.Context) {
	id, _ := identityFrom(c)
	view, err := h.carts.Get(c.Request.Context(), id.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) addToCart(c *gin.Context) {
	id, _ := identityFrom(c)
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}
	if req.Quantity < 1 {
		respondError(c, h.logger, domain.ErrInvalidQuantity)
		return
	}
	if !validID(req.ProductID) {
		respondError(c, h.logger, domain.ErrProductNotFound)
		return
	}
	view, err := h.carts.AddItem(c.Request.Context(), id.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) updateCartItem(c *gin.Context) {
	id, _ := identityFrom(c)
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}
	view, err := h.carts.UpdateQuantity(c.Request.Context(), id.ID, c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, _ := identityFrom(c)
	view, err := h.carts.RemoveItem(c.Request.Context(), id.ID, c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) clearCart(c *gin.Context) {
	id, _ := identityFrom(c)
	if _, err := h.carts.Clear(c.Request.Context(), id.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clearCartResponse{Success: true, Items: []cartItemResponse{}})
}
