package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/ledger"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

func salesFixture(t *testing.T) (*SalesService, *store.Store, entity.Product, entity.Customer) {
	t.Helper()
	st := store.New()
	product := st.UpsertProduct(entity.Product{
		Name: "Jasmine", Type: enum.ProductTypeKilo, Price: 62, Unit: "kg", Stock: 10,
	})
	customer := st.UpsertCustomer(entity.Customer{Name: "Rosy"})
	return NewSalesService(st), st, product, customer
}

func TestCheckout_CashSale(t *testing.T) {
	svc, st, product, _ := salesFixture(t)

	result, err := svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 2.5}},
		PaymentMethod: enum.PaymentMethodCash,
		Tendered:      200,
	})
	require.NoError(t, err)

	txn := result.Transaction
	assert.Equal(t, 155.0, txn.Subtotal)
	assert.Equal(t, 155.0, txn.Total)
	assert.Equal(t, 200.0, txn.Tendered)
	assert.Equal(t, 45.0, txn.Change)
	assert.Equal(t, "Walk-in", txn.CustomerName)
	assert.Equal(t, 155.0, txn.Items[0].Subtotal)
	assert.Nil(t, result.Credit)

	// stock deducted
	got, _ := st.ProductByID(product.ID)
	assert.Equal(t, 7.5, got.Stock)
}

func TestCheckout_DiscountClampsTotal(t *testing.T) {
	svc, _, product, _ := salesFixture(t)

	result, err := svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 1}},
		Discount:      100,
		PaymentMethod: enum.PaymentMethodCash,
		Tendered:      0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Transaction.Total)
}

func TestCheckout_CashRejectsShortTender(t *testing.T) {
	svc, _, product, _ := salesFixture(t)

	_, err := svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 2}},
		PaymentMethod: enum.PaymentMethodCash,
		Tendered:      100,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCheckout_CreditOpensLedgerRecord(t *testing.T) {
	svc, st, product, customer := salesFixture(t)

	result, err := svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 5}},
		PaymentMethod: enum.PaymentMethodCredit,
		CustomerID:    customer.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Credit)

	credit := *result.Credit
	assert.Equal(t, result.Transaction.ID, credit.TransactionID)
	assert.Equal(t, customer.ID, credit.CustomerID)
	assert.Equal(t, "Rosy", credit.CustomerName)
	assert.Equal(t, 310.0, credit.TotalAmount)
	assert.Equal(t, 310.0, credit.Balance)
	assert.Equal(t, enum.CreditStatusActive, credit.Status)
	assert.Equal(t, ledger.DueDate(result.Transaction.CreatedAt), credit.DueDate)

	stored, ok := st.CreditByTransaction(result.Transaction.ID)
	require.True(t, ok)
	assert.Equal(t, credit.ID, stored.ID)
}

func TestCheckout_CreditRequiresCustomer(t *testing.T) {
	svc, _, product, _ := salesFixture(t)

	_, err := svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 1}},
		PaymentMethod: enum.PaymentMethodCredit,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCheckout_Validation(t *testing.T) {
	svc, _, product, _ := salesFixture(t)

	_, err := svc.Checkout(&CheckoutInput{PaymentMethod: enum.PaymentMethodCash})
	assert.Error(t, err, "empty cart")

	_, err = svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 0}},
		PaymentMethod: enum.PaymentMethodCash,
	})
	assert.Error(t, err, "zero quantity")

	_, err = svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: "missing", Qty: 1}},
		PaymentMethod: enum.PaymentMethodCash,
		Tendered:      1000,
	})
	assert.Error(t, err, "unknown product")

	_, err = svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 1}},
		PaymentMethod: enum.PaymentMethod("barter"),
	})
	assert.Error(t, err, "unknown payment method")
}

func TestCheckout_SnapshotsSurviveProductEdits(t *testing.T) {
	svc, st, product, _ := salesFixture(t)

	result, err := svc.Checkout(&CheckoutInput{
		Items:         []CheckoutItemInput{{ProductID: product.ID, Qty: 1}},
		PaymentMethod: enum.PaymentMethodCash,
		Tendered:      62,
	})
	require.NoError(t, err)

	product.Name = "Renamed"
	product.Price = 99
	st.UpsertProduct(product)

	txn, err := svc.GetTransaction(result.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jasmine", txn.Items[0].Name)
	assert.Equal(t, 62.0, txn.Items[0].Price)
}

func TestTodaySalesAndRange(t *testing.T) {
	st := store.New()
	svc := NewSalesService(st)

	now := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	st.SetTransactions([]entity.Transaction{
		{ID: "a", Total: 10, CreatedAt: now.Add(-time.Hour)},
		{ID: "b", Total: 20, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "c", Total: 30, CreatedAt: now.AddDate(0, 0, -10)},
	})

	today := svc.TodaySales()
	require.Len(t, today, 1)
	assert.Equal(t, "a", today[0].ID)

	ranged := svc.SalesByRange(now.AddDate(0, 0, -2), now)
	require.Len(t, ranged, 2)
	assert.Equal(t, "a", ranged[0].ID, "newest first")
	assert.Equal(t, "b", ranged[1].ID)

	// upper bound is exclusive
	beforeToday := svc.SalesByRange(now.AddDate(0, 0, -2), now.Add(-time.Hour))
	require.Len(t, beforeToday, 1)
	assert.Equal(t, "b", beforeToday[0].ID)
}
