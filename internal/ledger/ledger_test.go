package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

func newRecord(total float64, createdAt time.Time) entity.CreditRecord {
	return entity.CreditRecord{
		ID:          "cr-1",
		TotalAmount: total,
		AmountPaid:  0,
		Balance:     total,
		DueDate:     DueDate(createdAt),
		Status:      enum.CreditStatusActive,
		Payments:    []entity.Payment{},
		CreatedAt:   createdAt,
	}
}

func TestDueDate(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), DueDate(created))
}

func TestApplyPayment_Installments(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newRecord(500, created)

	c, err := ApplyPayment(c, 200, "first gives", created.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 200.0, c.AmountPaid)
	assert.Equal(t, 300.0, c.Balance)
	assert.Equal(t, enum.CreditStatusActive, c.Status)
	require.Len(t, c.Payments, 1)
	assert.NotEmpty(t, c.Payments[0].ID)

	c, err = ApplyPayment(c, 300, "", created.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 500.0, c.AmountPaid)
	assert.Equal(t, 0.0, c.Balance)
	assert.Equal(t, enum.CreditStatusPaid, c.Status)
	assert.Len(t, c.Payments, 2)
}

func TestApplyPayment_RejectsNonPositive(t *testing.T) {
	created := time.Now().UTC()
	c := newRecord(100, created)

	_, err := ApplyPayment(c, 0, "", created)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)

	_, err = ApplyPayment(c, -5, "", created)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}

func TestApplyPayment_RejectsOverpayBeyondEpsilon(t *testing.T) {
	created := time.Now().UTC()
	c := newRecord(100, created)

	_, err := ApplyPayment(c, 100.02, "", created)
	assert.ErrorIs(t, err, apperror.ErrExceedsBalance)

	// within the rounding epsilon the payment is accepted and the balance
	// clamps to zero
	c, err = ApplyPayment(c, 100.01, "", created)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Balance)
	assert.Equal(t, enum.CreditStatusPaid, c.Status)
}

func TestApplyPayment_PaidRecordRejectsFurtherPayments(t *testing.T) {
	created := time.Now().UTC()
	c := newRecord(50, created)

	c, err := ApplyPayment(c, 50, "", created)
	require.NoError(t, err)
	require.Equal(t, enum.CreditStatusPaid, c.Status)

	_, err = ApplyPayment(c, 1, "", created)
	assert.ErrorIs(t, err, apperror.ErrExceedsBalance)
}

func TestApplyPayment_LateSettlementIsPaidNotOverdue(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newRecord(100, created)
	c.Status = enum.CreditStatusOverdue

	afterDue := created.AddDate(0, 0, 30)
	c, err := ApplyPayment(c, 100, "", afterDue)
	require.NoError(t, err)
	assert.Equal(t, enum.CreditStatusPaid, c.Status)
}

func TestStatusFor(t *testing.T) {
	due := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(100)

	assert.Equal(t, enum.CreditStatusActive, StatusFor(total, decimal.NewFromInt(40), due, due.AddDate(0, 0, -1)))
	assert.Equal(t, enum.CreditStatusOverdue, StatusFor(total, decimal.NewFromInt(40), due, due.AddDate(0, 0, 1)))
	assert.Equal(t, enum.CreditStatusPaid, StatusFor(total, decimal.NewFromInt(100), due, due.AddDate(0, 0, 1)))
}

func TestRefresh(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	overdue := newRecord(100, now.AddDate(0, 0, -20))
	stillDue := newRecord(100, now.AddDate(0, 0, -5))
	paid := newRecord(100, now.AddDate(0, 0, -20))
	paid.Status = enum.CreditStatusPaid

	out, changed := Refresh([]entity.CreditRecord{overdue, stillDue, paid}, now)
	assert.True(t, changed)
	assert.Equal(t, enum.CreditStatusOverdue, out[0].Status)
	assert.Equal(t, enum.CreditStatusActive, out[1].Status)
	assert.Equal(t, enum.CreditStatusPaid, out[2].Status)

	// a second sweep is a no-op
	_, changed = Refresh(out, now)
	assert.False(t, changed)
}

func TestNewRecord(t *testing.T) {
	txn := entity.Transaction{
		ID:           "t-1",
		ReceiptNo:    "#20240301-001",
		CustomerID:   "c-1",
		CustomerName: "Rosy",
		Total:        350,
		CreatedAt:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	c := NewRecord(txn)
	assert.Equal(t, txn.ID, c.TransactionID)
	assert.Equal(t, 350.0, c.TotalAmount)
	assert.Equal(t, 350.0, c.Balance)
	assert.Equal(t, 0.0, c.AmountPaid)
	assert.Equal(t, enum.CreditStatusActive, c.Status)
	assert.Equal(t, txn.CreatedAt.AddDate(0, 0, DueDays), c.DueDate)
	assert.NotNil(t, c.Payments)
	assert.Empty(t, c.Payments)
}
