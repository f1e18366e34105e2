package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	creditService   *service.CreditService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, creditService *service.CreditService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, creditService: creditService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	result := h.customerService.ListCustomers(bindPagination(c), c.Query("search"))
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

type customerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.SaveCustomer(&service.SaveCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.SaveCustomer(&service.SaveCustomerInput{
		ID:      c.Param("id"),
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Outstanding returns what a customer still owes
func (h *CustomerHandler) Outstanding(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.customerService.GetCustomer(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer balance retrieved successfully", gin.H{
		"customer_id": id,
		"outstanding": h.creditService.CustomerOutstanding(id),
	})
}
