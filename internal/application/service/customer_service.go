package service

import (
	"sort"
	"strings"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	store *store.Store
}

// NewCustomerService creates a new customer service
func NewCustomerService(st *store.Store) *CustomerService {
	return &CustomerService{store: st}
}

// SaveCustomerInput represents the create/update customer input
type SaveCustomerInput struct {
	ID      string
	Name    string
	Phone   string
	Address string
	Notes   string
}

// SaveCustomer creates a customer, or updates one when ID is set
func (s *CustomerService) SaveCustomer(input *SaveCustomerInput) (*entity.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	c := entity.Customer{
		ID:      input.ID,
		Name:    strings.TrimSpace(input.Name),
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if input.ID != "" {
		existing, ok := s.store.CustomerByID(input.ID)
		if !ok {
			return nil, apperror.NewNotFoundError("Customer")
		}
		c.CreatedAt = existing.CreatedAt
	}

	saved := s.store.UpsertCustomer(c)
	return &saved, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(id string) (*entity.Customer, error) {
	c, ok := s.store.CustomerByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return &c, nil
}

// ListCustomers lists customers sorted by name, with optional search
func (s *CustomerService) ListCustomers(params *pagination.PaginationParams, search string) *pagination.PaginatedResult[entity.Customer] {
	customers := s.store.Customers()
	if search != "" {
		needle := strings.ToLower(search)
		filtered := customers[:0]
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(c.Phone, search) {
				filtered = append(filtered, c)
			}
		}
		customers = filtered
	}
	sort.Slice(customers, func(i, j int) bool {
		return strings.ToLower(customers[i].Name) < strings.ToLower(customers[j].Name)
	})
	return pagination.Paginate(customers, params)
}

// DeleteCustomer removes a customer. Their credit records are kept so the
// ledger history stays intact.
func (s *CustomerService) DeleteCustomer(id string) error {
	if _, ok := s.store.CustomerByID(id); !ok {
		return apperror.NewNotFoundError("Customer")
	}
	s.store.DeleteCustomer(id)
	return nil
}
