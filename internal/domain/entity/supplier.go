package entity

import "time"

// Supplier represents a stock supplier
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Restock records stock added to a product. Saving one increases the
// referenced product's stock by Qty.
type Restock struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Qty        float64   `json:"qty"`
	Cost       float64   `json:"cost"`
	SupplierID string    `json:"supplier_id,omitempty"`
	Date       string    `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
