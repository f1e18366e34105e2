package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// SalesHandler handles checkout and sales HTTP requests
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Checkout records a sale
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req struct {
		Items []struct {
			ProductID string  `json:"product_id" binding:"required"`
			Qty       float64 `json:"qty" binding:"required"`
		} `json:"items" binding:"required"`
		Discount      float64 `json:"discount"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
		Tendered      float64 `json:"tendered"`
		CustomerID    string  `json:"customer_id"`
		CustomerName  string  `json:"customer_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CheckoutInput{
		Discount:      req.Discount,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Tendered:      req.Tendered,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}

	result, err := h.salesService.Checkout(input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", result)
}

// List handles listing sales
func (h *SalesHandler) List(c *gin.Context) {
	result := h.salesService.ListTransactions(bindPagination(c))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale
func (h *SalesHandler) Get(c *gin.Context) {
	txn, err := h.salesService.GetTransaction(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", txn)
}

// Today lists the current day's sales
func (h *SalesHandler) Today(c *gin.Context) {
	response.OK(c, "Today's sales retrieved successfully", h.salesService.TodaySales())
}

// Range lists sales between from and to (YYYY-MM-DD, inclusive)
func (h *SalesHandler) Range(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing from date")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing to date")
		return
	}

	sales := h.salesService.SalesByRange(from, to.AddDate(0, 0, 1))
	response.OK(c, "Sales retrieved successfully", sales)
}
