package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

func TestSaveRestock_TopsUpStock(t *testing.T) {
	st := store.New()
	svc := NewSupplierService(st)
	product := st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Stock: 5})
	supplier, err := svc.SaveSupplier(&SaveSupplierInput{Name: "Ka Pedro"})
	require.NoError(t, err)

	restock, err := svc.SaveRestock(&SaveRestockInput{
		ProductID:  product.ID,
		Qty:        25,
		Cost:       1200,
		SupplierID: supplier.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, restock.ID)
	assert.NotEmpty(t, restock.Date)

	got, _ := st.ProductByID(product.ID)
	assert.Equal(t, 30.0, got.Stock)
}

func TestSaveRestock_Validation(t *testing.T) {
	st := store.New()
	svc := NewSupplierService(st)
	product := st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Stock: 5})

	_, err := svc.SaveRestock(&SaveRestockInput{ProductID: product.ID, Qty: 0})
	assert.Error(t, err, "zero quantity")

	_, err = svc.SaveRestock(&SaveRestockInput{ProductID: "missing", Qty: 5})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = svc.SaveRestock(&SaveRestockInput{ProductID: product.ID, Qty: 5, SupplierID: "missing"})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListRestocks_FilterByProduct(t *testing.T) {
	st := store.New()
	svc := NewSupplierService(st)
	p1 := st.UpsertProduct(entity.Product{Name: "A", Type: enum.ProductTypeKilo})
	p2 := st.UpsertProduct(entity.Product{Name: "B", Type: enum.ProductTypeSack})

	_, err := svc.SaveRestock(&SaveRestockInput{ProductID: p1.ID, Qty: 5})
	require.NoError(t, err)
	_, err = svc.SaveRestock(&SaveRestockInput{ProductID: p2.ID, Qty: 3})
	require.NoError(t, err)

	params := &pagination.PaginationParams{Page: 1, PerPage: 10}
	all := svc.ListRestocks(params, "")
	assert.Len(t, all.Items, 2)

	filtered := svc.ListRestocks(params, p1.ID)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, p1.ID, filtered.Items[0].ProductID)
}
