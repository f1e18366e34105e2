package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// CreditHandler handles credit ledger HTTP requests
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// List handles listing credit records
func (h *CreditHandler) List(c *gin.Context) {
	result := h.creditService.ListCredits(
		bindPagination(c),
		enum.CreditStatus(c.Query("status")),
		c.Query("customer_id"),
	)
	response.SuccessWithPagination(c, 200, "Credit records retrieved successfully", result)
}

// Get handles getting a single credit record
func (h *CreditHandler) Get(c *gin.Context) {
	credit, err := h.creditService.GetCredit(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit record retrieved successfully", credit)
}

// AddPayment records an installment against a credit record
func (h *CreditHandler) AddPayment(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required"`
		Note   string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	credit, err := h.creditService.AddPayment(c.Param("id"), req.Amount, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", credit)
}

// Refresh sweeps active records past their due date into overdue
func (h *CreditHandler) Refresh(c *gin.Context) {
	changed := h.creditService.RefreshStatuses()
	response.OK(c, "Credit statuses refreshed", gin.H{"changed": changed})
}

// Outstanding summarizes what is still owed across the ledger
func (h *CreditHandler) Outstanding(c *gin.Context) {
	response.OK(c, "Outstanding summary retrieved successfully", h.creditService.Outstanding())
}
