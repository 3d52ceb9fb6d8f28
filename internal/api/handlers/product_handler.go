package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stocksync/inventory-service/internal/application"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/middleware"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	products *application.ProductService
	logger   *logging.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(products *application.ProductService, logger *logging.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.WithComponent("product-handler"),
	}
}

// RegisterRoutes mounts the product endpoints on a router group.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products", h.List)
	rg.GET("/products/:id", h.Get)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var cmd application.CreateProductCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	product, inventory, err := h.products.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"product.id":  product.ID,
		"product.sku": product.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"product":   product,
		"inventory": inventory,
	})
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	filter := application.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"count":    len(products),
	})
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var cmd application.UpdateProductCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
