package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
)

type createProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Category    domain.Category `json:"category" binding:"required,category"`
	Quantity    int             `json:"quantity" binding:"min=0"`
}

type updateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
	Category    *domain.Category `json:"category" binding:"omitempty,category"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
}

func (h *handlers) listProducts(c *gin.Context) {
	category := domain.Category(c.Query("category"))
	products, err := h.products.List(c.Request.Context(), category)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductList(products))
}

func (h *handlers) getProduct(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		respondError(c, h.logger, domain.ErrProductNotFound)
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}
	p, err := h.products.Create(c.Request.Context(), productsvc.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Category:    req.Category,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*p))
}

func (h *handlers) updateProduct(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		respondError(c, h.logger, domain.ErrProductNotFound)
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, productsvc.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Category:    req.Category,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		respondError(c, h.logger, domain.ErrProductNotFound)
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

func (h *handlers) listCategories(c *gin.Context) {
	list, err := h.category.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryList(list))
}
