package entity

import (
	"time"

	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
)

// Payment is a single installment against a credit record
type Payment struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	Note   string    `json:"note,omitempty"`
	Date   time.Time `json:"date"`
}

// CreditRecord tracks a deferred-payment sale. It is linked to the
// transaction that created it; deleting either side does not cascade.
//
// Invariant: AmountPaid + Balance == TotalAmount and Balance >= 0.
type CreditRecord struct {
	ID            string            `json:"id"`
	TransactionID string            `json:"transaction_id"`
	ReceiptNo     string            `json:"receipt_no"`
	CustomerID    string            `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	TotalAmount   float64           `json:"total_amount"`
	AmountPaid    float64           `json:"amount_paid"`
	Balance       float64           `json:"balance"`
	DueDate       time.Time         `json:"due_date"`
	Status        enum.CreditStatus `json:"status"`
	Payments      []Payment         `json:"payments"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Outstanding reports whether the credit still carries a balance
func (c *CreditRecord) Outstanding() bool {
	return c.Status != enum.CreditStatusPaid
}
