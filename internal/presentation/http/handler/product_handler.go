package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

// ProductHandler handles inventory HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func bindPagination(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	result := h.productService.ListProducts(bindPagination(c), c.Query("search"))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Stock       float64 `json:"stock"`
	LowStock    float64 `json:"low_stock"`
	Description string  `json:"description"`
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.SaveProduct(&service.SaveProductInput{
		Name:        req.Name,
		Type:        enum.ProductType(req.Type),
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		LowStock:    req.LowStock,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.SaveProduct(&service.SaveProductInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Type:        enum.ProductType(req.Type),
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		LowStock:    req.LowStock,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AdjustStock handles a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req struct {
		Delta float64 `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.AdjustStock(c.Param("id"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// GetLowStock lists products at or below their alert threshold
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	response.OK(c, "Low stock products retrieved successfully", h.productService.LowStockProducts())
}
