package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/ledger"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestUpsertProduct_AssignsIDAndTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	p := s.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Price: 62, Stock: 10})
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, now, p.CreatedAt)

	p.Price = 65
	s.UpsertProduct(p)

	got, ok := s.ProductByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, 65.0, got.Price)
	assert.Len(t, s.Products(), 1)
}

func TestAdjustStock_ClampsAtZero(t *testing.T) {
	s := New()
	p := s.UpsertProduct(entity.Product{Name: "Sinandomeng", Type: enum.ProductTypeKilo, Stock: 5})

	updated, ok := s.AdjustStock(p.ID, -3.5)
	require.True(t, ok)
	assert.Equal(t, 1.5, updated.Stock)

	updated, ok = s.AdjustStock(p.ID, -10)
	require.True(t, ok)
	assert.Equal(t, 0.0, updated.Stock)

	_, ok = s.AdjustStock("missing", 1)
	assert.False(t, ok)
}

func TestAddTransaction_ReceiptSequence(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := day1
	s := NewWithClock(func() time.Time { return clock })

	t1 := s.AddTransaction(entity.Transaction{Total: 10})
	t2 := s.AddTransaction(entity.Transaction{Total: 20})
	assert.Equal(t, "#20240301-001", t1.ReceiptNo)
	assert.Equal(t, "#20240301-002", t2.ReceiptNo)

	// sequence resets at the day boundary
	clock = day1.AddDate(0, 0, 1)
	t3 := s.AddTransaction(entity.Transaction{Total: 30})
	assert.Equal(t, "#20240302-001", t3.ReceiptNo)
}

func TestAddTransaction_ComputesLineSubtotals(t *testing.T) {
	s := New()
	txn := s.AddTransaction(entity.Transaction{
		Items: []entity.LineItem{
			{ProductID: "p1", Price: 62, Qty: 2.5},
			{ProductID: "p2", Price: 1550, Qty: 1},
		},
	})
	assert.Equal(t, 155.0, txn.Items[0].Subtotal)
	assert.Equal(t, 1550.0, txn.Items[1].Subtotal)
	assert.NotEmpty(t, txn.ID)
}

func TestSubscribe_NotifiesMatchingSliceOnce(t *testing.T) {
	s := New()

	var productEvents, customerEvents int
	s.Subscribe(SliceProducts, func(Slice) { productEvents++ })
	unsub := s.Subscribe(SliceCustomers, func(Slice) { customerEvents++ })

	s.UpsertProduct(entity.Product{Name: "A", Type: enum.ProductTypeKilo})
	assert.Equal(t, 1, productEvents)
	assert.Equal(t, 0, customerEvents)

	s.UpsertCustomer(entity.Customer{Name: "Rosy"})
	assert.Equal(t, 1, customerEvents)

	unsub()
	s.UpsertCustomer(entity.Customer{Name: "She"})
	assert.Equal(t, 1, customerEvents)
}

func TestSubscribe_ListenersFireInRegistrationOrder(t *testing.T) {
	s := New()

	var order []string
	s.Subscribe(SliceProducts, func(Slice) { order = append(order, "first") })
	s.Subscribe(SliceProducts, func(Slice) { order = append(order, "second") })

	s.UpsertProduct(entity.Product{Name: "A", Type: enum.ProductTypeKilo})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAddCreditPayment(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	credit := s.UpsertCredit(entity.CreditRecord{
		TotalAmount: 500,
		Balance:     500,
		DueDate:     ledger.DueDate(now),
		Status:      enum.CreditStatusActive,
	})

	updated, err := s.AddCreditPayment(credit.ID, 200, "partial")
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.Balance)

	_, err = s.AddCreditPayment("missing", 10, "")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = s.AddCreditPayment(credit.ID, 1000, "")
	assert.ErrorIs(t, err, apperror.ErrExceedsBalance)
}

func TestRefreshCreditStatuses_NotifiesOnlyOnChange(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	s := NewWithClock(fixedClock(now))

	s.UpsertCredit(entity.CreditRecord{
		TotalAmount: 100,
		Balance:     100,
		DueDate:     now.AddDate(0, 0, -1),
		Status:      enum.CreditStatusActive,
	})

	var events int
	s.Subscribe(SliceCredits, func(Slice) { events++ })

	assert.True(t, s.RefreshCreditStatuses())
	assert.Equal(t, 1, events)

	// already swept: nothing changes, nothing fires
	assert.False(t, s.RefreshCreditStatuses())
	assert.Equal(t, 1, events)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New()
	s.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Price: 62, Stock: 8})

	data, err := s.MarshalSlice(SliceProducts)
	require.NoError(t, err)

	other := New()
	require.NoError(t, other.ApplySnapshot(SliceProducts, data))
	assert.Equal(t, s.Products(), other.Products())

	_, err = s.MarshalSlice(SliceOwner)
	assert.Error(t, err)
	assert.Error(t, s.ApplySnapshot(SliceOwner, []byte("{}")))
}

func TestSettings_DefaultsApplied(t *testing.T) {
	s := New()
	assert.Equal(t, "Bigasan ni Joshua", s.Settings().StoreName)

	s.SetSettings(entity.Settings{Address: "Batangas"})
	got := s.Settings()
	assert.Equal(t, "Batangas", got.Address)
	assert.Equal(t, "Bigasan ni Joshua", got.StoreName)
	assert.Equal(t, "Thank you for your purchase!", got.ReceiptNote)
}

func TestReset_KeepsOwner(t *testing.T) {
	s := New()
	s.SetOwner(entity.Owner{Username: "owner", PasswordHash: "hash"})
	s.UpsertProduct(entity.Product{Name: "A", Type: enum.ProductTypeKilo})
	s.UpsertCustomer(entity.Customer{Name: "Rosy"})

	s.Reset()

	assert.Empty(t, s.Products())
	assert.Empty(t, s.Customers())
	assert.Equal(t, "owner", s.Owner().Username)
	assert.Equal(t, "Bigasan ni Joshua", s.Settings().StoreName)
}

func TestSyncableSlices(t *testing.T) {
	assert.True(t, IsSyncable(SliceProducts))
	assert.False(t, IsSyncable(SliceOwner))
	assert.NotContains(t, SyncableSlices(), SliceOwner)
}
