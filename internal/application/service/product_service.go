package service

import (
	"strings"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

// ProductService handles inventory operations
type ProductService struct {
	store *store.Store
}

// NewProductService creates a new product service
func NewProductService(st *store.Store) *ProductService {
	return &ProductService{store: st}
}

// SaveProductInput represents the create/update product input
type SaveProductInput struct {
	ID          string
	Name        string
	Type        enum.ProductType
	Price       float64
	Unit        string
	Stock       float64
	LowStock    float64
	Description string
}

func (in *SaveProductInput) validate() error {
	var fields []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !in.Type.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "type", Message: "Type must be kilo, sack or prepacked"})
	}
	if in.Price < 0 {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if in.Stock < 0 {
		fields = append(fields, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if in.LowStock < 0 {
		fields = append(fields, apperror.FieldError{Field: "low_stock", Message: "Low stock threshold cannot be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// SaveProduct creates a product, or updates it when ID is set
func (s *ProductService) SaveProduct(input *SaveProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	p := entity.Product{
		ID:          input.ID,
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Price:       input.Price,
		Unit:        input.Unit,
		Stock:       input.Stock,
		LowStock:    input.LowStock,
		Description: input.Description,
	}
	if p.Unit == "" {
		p.Unit = defaultUnit(p.Type)
	}

	if input.ID != "" {
		existing, ok := s.store.ProductByID(input.ID)
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		p.CreatedAt = existing.CreatedAt
	}

	saved := s.store.UpsertProduct(p)
	return &saved, nil
}

func defaultUnit(t enum.ProductType) string {
	switch t {
	case enum.ProductTypeKilo:
		return "kg"
	case enum.ProductTypeSack:
		return "sack"
	default:
		return "pc"
	}
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(id string) (*entity.Product, error) {
	p, ok := s.store.ProductByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	return &p, nil
}

// ListProducts lists products with optional name search
func (s *ProductService) ListProducts(params *pagination.PaginationParams, search string) *pagination.PaginatedResult[entity.Product] {
	products := s.store.Products()
	if search != "" {
		needle := strings.ToLower(search)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return pagination.Paginate(products, params)
}

// DeleteProduct removes a product. Historical transactions and restocks
// keep their snapshots of it.
func (s *ProductService) DeleteProduct(id string) error {
	if _, ok := s.store.ProductByID(id); !ok {
		return apperror.NewNotFoundError("Product")
	}
	s.store.DeleteProduct(id)
	return nil
}

// AdjustStock applies a manual stock correction
func (s *ProductService) AdjustStock(id string, delta float64) (*entity.Product, error) {
	p, ok := s.store.AdjustStock(id, delta)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	return &p, nil
}

// LowStockProducts returns products at or below their alert threshold
func (s *ProductService) LowStockProducts() []entity.Product {
	var out []entity.Product
	for _, p := range s.store.Products() {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
