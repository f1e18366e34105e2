package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/ledger"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

// SalesService handles checkout and sales queries
type SalesService struct {
	store *store.Store
	now   func() time.Time
}

// NewSalesService creates a new sales service
func NewSalesService(st *store.Store) *SalesService {
	return &SalesService{store: st, now: func() time.Time { return time.Now().UTC() }}
}

// CheckoutItemInput is one cart line at checkout
type CheckoutItemInput struct {
	ProductID string
	Qty       float64
}

// CheckoutInput represents a checkout request
type CheckoutInput struct {
	Items         []CheckoutItemInput
	Discount      float64
	PaymentMethod enum.PaymentMethod
	Tendered      float64
	CustomerID    string
	CustomerName  string
}

// CheckoutResult carries the recorded sale and, for credit sales, the
// ledger record opened for it.
type CheckoutResult struct {
	Transaction entity.Transaction   `json:"transaction"`
	Credit      *entity.CreditRecord `json:"credit,omitempty"`
}

// Checkout records a sale: totals are computed from product snapshots,
// stock is deducted per line, and a credit sale opens a ledger record due
// in 14 days.
func (s *SalesService) Checkout(input *CheckoutInput) (*CheckoutResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}
	if input.Discount < 0 {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}

	customerName := input.CustomerName
	if input.CustomerID != "" {
		customer, ok := s.store.CustomerByID(input.CustomerID)
		if !ok {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
	}
	if customerName == "" {
		customerName = "Walk-in"
	}

	if input.PaymentMethod == enum.PaymentMethodCredit && input.CustomerID == "" {
		return nil, apperror.NewBadRequestError("Credit sales require a registered customer")
	}

	lines := make([]entity.LineItem, 0, len(input.Items))
	subtotal := decimal.Zero
	for _, item := range input.Items {
		if item.Qty <= 0 {
			return nil, apperror.NewBadRequestError("Line quantity must be greater than zero")
		}
		product, ok := s.store.ProductByID(item.ProductID)
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		lines = append(lines, entity.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Type:      product.Type,
			Price:     product.Price,
			Unit:      product.Unit,
			Qty:       item.Qty,
		})
		subtotal = subtotal.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromFloat(item.Qty)))
	}

	total := subtotal.Sub(decimal.NewFromFloat(input.Discount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	tendered := decimal.NewFromFloat(input.Tendered)
	change := decimal.Zero
	switch input.PaymentMethod {
	case enum.PaymentMethodCash:
		if tendered.LessThan(total) {
			return nil, apperror.NewBadRequestError("Tendered cash is less than the total")
		}
		change = tendered.Sub(total)
	case enum.PaymentMethodGCash:
		tendered = total
	case enum.PaymentMethodCredit:
		tendered = decimal.Zero
	}

	txn := s.store.AddTransaction(entity.Transaction{
		Items:         lines,
		Subtotal:      subtotal.InexactFloat64(),
		Discount:      input.Discount,
		Total:         total.InexactFloat64(),
		PaymentMethod: input.PaymentMethod,
		Tendered:      tendered.InexactFloat64(),
		Change:        change.InexactFloat64(),
		CustomerID:    input.CustomerID,
		CustomerName:  customerName,
	})

	for _, line := range txn.Items {
		s.store.AdjustStock(line.ProductID, -line.Qty)
	}

	result := &CheckoutResult{Transaction: txn}
	if input.PaymentMethod == enum.PaymentMethodCredit {
		credit := s.store.UpsertCredit(ledger.NewRecord(txn))
		result.Credit = &credit
	}
	return result, nil
}

// GetTransaction retrieves a sale by ID
func (s *SalesService) GetTransaction(id string) (*entity.Transaction, error) {
	t, ok := s.store.TransactionByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return &t, nil
}

// ListTransactions lists sales newest first
func (s *SalesService) ListTransactions(params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Transaction] {
	txns := s.store.Transactions()
	sortTransactionsDesc(txns)
	return pagination.Paginate(txns, params)
}

// TodaySales returns the sales recorded on the current calendar day
func (s *SalesService) TodaySales() []entity.Transaction {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.SalesByRange(start, start.AddDate(0, 0, 1))
}

// SalesByRange returns sales with from <= created_at < to, newest first
func (s *SalesService) SalesByRange(from, to time.Time) []entity.Transaction {
	var out []entity.Transaction
	for _, t := range s.store.Transactions() {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			out = append(out, t)
		}
	}
	sortTransactionsDesc(out)
	return out
}

func sortTransactionsDesc(txns []entity.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
}
