package entity

import (
	"time"

	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
)

// Product represents a product in the inventory. Stock is a decimal
// quantity because per-weight products sell in fractional kilos; it is
// clamped to zero or above on every mutation.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        enum.ProductType `json:"type"`
	Price       float64          `json:"price"`
	Unit        string           `json:"unit"`
	Stock       float64          `json:"stock"`
	LowStock    float64          `json:"low_stock"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// IsLowStock reports whether the product is at or below its alert threshold
func (p *Product) IsLowStock() bool {
	return p.LowStock > 0 && p.Stock <= p.LowStock
}
