package entity

import (
	"time"

	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
)

// LineItem is a cart line frozen at sale time. Name, type, price and unit
// are snapshots so later product edits never rewrite past receipts.
type LineItem struct {
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	Type      enum.ProductType `json:"type"`
	Price     float64          `json:"price"`
	Unit      string           `json:"unit"`
	Qty       float64          `json:"qty"`
	Subtotal  float64          `json:"subtotal"`
}

// Transaction represents a completed sale. Immutable once created, except
// for being superseded by a linked credit record.
type Transaction struct {
	ID            string             `json:"id"`
	Items         []LineItem         `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Tendered      float64            `json:"tendered"`
	Change        float64            `json:"change"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	ReceiptNo     string             `json:"receipt_no"`
	CreatedAt     time.Time          `json:"created_at"`
}
