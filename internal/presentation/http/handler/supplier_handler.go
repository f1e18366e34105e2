package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// SupplierHandler handles supplier and restock HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	result := h.supplierService.ListSuppliers(bindPagination(c))
	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

type supplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.supplierService.SaveSupplier(&service.SaveSupplierInput{
		Name:    req.Name,
		Contact: req.Contact,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles getting a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	supplier, err := h.supplierService.GetSupplier(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.supplierService.SaveSupplier(&service.SaveSupplierInput{
		ID:      c.Param("id"),
		Name:    req.Name,
		Contact: req.Contact,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// Delete handles deleting a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.supplierService.DeleteSupplier(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRestocks handles listing restock entries
func (h *SupplierHandler) ListRestocks(c *gin.Context) {
	result := h.supplierService.ListRestocks(bindPagination(c), c.Query("product_id"))
	response.SuccessWithPagination(c, 200, "Restocks retrieved successfully", result)
}

// CreateRestock records a delivery and tops up the product's stock
func (h *SupplierHandler) CreateRestock(c *gin.Context) {
	var req struct {
		ProductID  string  `json:"product_id" binding:"required"`
		Qty        float64 `json:"qty" binding:"required"`
		Cost       float64 `json:"cost"`
		SupplierID string  `json:"supplier_id"`
		Date       string  `json:"date"`
		Notes      string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	restock, err := h.supplierService.SaveRestock(&service.SaveRestockInput{
		ProductID:  req.ProductID,
		Qty:        req.Qty,
		Cost:       req.Cost,
		SupplierID: req.SupplierID,
		Date:       req.Date,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Restock recorded successfully", restock)
}
