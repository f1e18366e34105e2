package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

// CreditService handles the customer credit ledger
type CreditService struct {
	store *store.Store
}

// NewCreditService creates a new credit service
func NewCreditService(st *store.Store) *CreditService {
	return &CreditService{store: st}
}

// GetCredit retrieves a credit record by ID
func (s *CreditService) GetCredit(id string) (*entity.CreditRecord, error) {
	c, ok := s.store.CreditByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Credit record")
	}
	return &c, nil
}

// ListCredits lists credit records, optionally filtered by status and
// customer, soonest due date first.
func (s *CreditService) ListCredits(params *pagination.PaginationParams, status enum.CreditStatus, customerID string) *pagination.PaginatedResult[entity.CreditRecord] {
	credits := s.store.Credits()
	filtered := credits[:0]
	for _, c := range credits {
		if status != "" && c.Status != status {
			continue
		}
		if customerID != "" && c.CustomerID != customerID {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].DueDate.Before(filtered[j].DueDate)
	})
	return pagination.Paginate(filtered, params)
}

// AddPayment records an installment against a credit record
func (s *CreditService) AddPayment(creditID string, amount float64, note string) (*entity.CreditRecord, error) {
	updated, err := s.store.AddCreditPayment(creditID, amount, note)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RefreshStatuses sweeps active records past their due date into overdue.
// Returns whether anything changed.
func (s *CreditService) RefreshStatuses() bool {
	return s.store.RefreshCreditStatuses()
}

// OutstandingSummary aggregates what is still owed
type OutstandingSummary struct {
	TotalOutstanding float64 `json:"total_outstanding"`
	ActiveCount      int     `json:"active_count"`
	OverdueCount     int     `json:"overdue_count"`
}

// Outstanding sums the open balances across the ledger
func (s *CreditService) Outstanding() OutstandingSummary {
	total := decimal.Zero
	var summary OutstandingSummary
	for _, c := range s.store.Credits() {
		switch c.Status {
		case enum.CreditStatusActive:
			summary.ActiveCount++
		case enum.CreditStatusOverdue:
			summary.OverdueCount++
		default:
			continue
		}
		total = total.Add(decimal.NewFromFloat(c.Balance))
	}
	summary.TotalOutstanding = total.InexactFloat64()
	return summary
}

// CustomerOutstanding sums a single customer's open balance
func (s *CreditService) CustomerOutstanding(customerID string) float64 {
	total := decimal.Zero
	for _, c := range s.store.CreditsByCustomer(customerID) {
		if c.Outstanding() {
			total = total.Add(decimal.NewFromFloat(c.Balance))
		}
	}
	return total.InexactFloat64()
}
