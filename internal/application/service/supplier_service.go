package service

import (
	"sort"
	"strings"
	"time"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

// SupplierService handles suppliers and restocking
type SupplierService struct {
	store *store.Store
	now   func() time.Time
}

// NewSupplierService creates a new supplier service
func NewSupplierService(st *store.Store) *SupplierService {
	return &SupplierService{store: st, now: func() time.Time { return time.Now().UTC() }}
}

// SaveSupplierInput represents the create/update supplier input
type SaveSupplierInput struct {
	ID      string
	Name    string
	Contact string
	Address string
	Notes   string
}

// SaveSupplier creates a supplier, or updates one when ID is set
func (s *SupplierService) SaveSupplier(input *SaveSupplierInput) (*entity.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	sp := entity.Supplier{
		ID:      input.ID,
		Name:    strings.TrimSpace(input.Name),
		Contact: input.Contact,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if input.ID != "" {
		existing, ok := s.findSupplier(input.ID)
		if !ok {
			return nil, apperror.NewNotFoundError("Supplier")
		}
		sp.CreatedAt = existing.CreatedAt
	}

	saved := s.store.UpsertSupplier(sp)
	return &saved, nil
}

func (s *SupplierService) findSupplier(id string) (entity.Supplier, bool) {
	for _, sp := range s.store.Suppliers() {
		if sp.ID == id {
			return sp, true
		}
	}
	return entity.Supplier{}, false
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(id string) (*entity.Supplier, error) {
	sp, ok := s.findSupplier(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return &sp, nil
}

// ListSuppliers lists suppliers sorted by name
func (s *SupplierService) ListSuppliers(params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Supplier] {
	suppliers := s.store.Suppliers()
	sort.Slice(suppliers, func(i, j int) bool {
		return strings.ToLower(suppliers[i].Name) < strings.ToLower(suppliers[j].Name)
	})
	return pagination.Paginate(suppliers, params)
}

// DeleteSupplier removes a supplier; restock history is kept
func (s *SupplierService) DeleteSupplier(id string) error {
	if _, ok := s.findSupplier(id); !ok {
		return apperror.NewNotFoundError("Supplier")
	}
	s.store.DeleteSupplier(id)
	return nil
}

// SaveRestockInput represents a restock entry
type SaveRestockInput struct {
	ProductID  string
	Qty        float64
	Cost       float64
	SupplierID string
	Date       string
	Notes      string
}

// SaveRestock records a delivery and increases the product's stock by the
// delivered quantity.
func (s *SupplierService) SaveRestock(input *SaveRestockInput) (*entity.Restock, error) {
	if input.Qty <= 0 {
		return nil, apperror.NewBadRequestError("Restock quantity must be greater than zero")
	}
	if _, ok := s.store.ProductByID(input.ProductID); !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	if input.SupplierID != "" {
		if _, ok := s.findSupplier(input.SupplierID); !ok {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	date := input.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	restock := s.store.AddRestock(entity.Restock{
		ProductID:  input.ProductID,
		Qty:        input.Qty,
		Cost:       input.Cost,
		SupplierID: input.SupplierID,
		Date:       date,
		Notes:      input.Notes,
	})
	s.store.AdjustStock(input.ProductID, input.Qty)
	return &restock, nil
}

// ListRestocks lists restock entries newest first, optionally filtered by
// product.
func (s *SupplierService) ListRestocks(params *pagination.PaginationParams, productID string) *pagination.PaginatedResult[entity.Restock] {
	restocks := s.store.Restocks()
	if productID != "" {
		filtered := restocks[:0]
		for _, r := range restocks {
			if r.ProductID == productID {
				filtered = append(filtered, r)
			}
		}
		restocks = filtered
	}
	sort.Slice(restocks, func(i, j int) bool {
		return restocks[i].CreatedAt.After(restocks[j].CreatedAt)
	})
	return pagination.Paginate(restocks, params)
}
