package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/utils"
)

// DueDays is the credit term: payment is due this many days after the sale.
const DueDays = 14

// balanceEpsilon tolerates float rounding when comparing a payment against
// the outstanding balance (0.01 currency unit).
var balanceEpsilon = decimal.NewFromFloat(0.01)

// DueDate returns the payment deadline for a credit sale created at the
// given time.
func DueDate(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 0, DueDays)
}

// StatusFor derives the credit status from the paid-vs-total position and
// the due date. Paid wins over overdue: a fully settled record is paid no
// matter how late the last installment arrived.
func StatusFor(total, paid decimal.Decimal, dueDate, now time.Time) enum.CreditStatus {
	if total.Sub(paid).LessThanOrEqual(decimal.Zero) {
		return enum.CreditStatusPaid
	}
	if now.After(dueDate) {
		return enum.CreditStatusOverdue
	}
	return enum.CreditStatusActive
}

// ApplyPayment records an installment against a credit record and recomputes
// its derived fields. The input record is not modified.
//
// Fails with apperror.ErrInvalidAmount for non-positive amounts and
// apperror.ErrExceedsBalance when the amount is more than the outstanding
// balance plus the rounding epsilon. A paid record has zero balance, so any
// further payment fails with ErrExceedsBalance.
func ApplyPayment(c entity.CreditRecord, amount float64, note string, now time.Time) (entity.CreditRecord, error) {
	amt := decimal.NewFromFloat(amount)
	if amt.LessThanOrEqual(decimal.Zero) {
		return c, apperror.ErrInvalidAmount
	}

	balance := decimal.NewFromFloat(c.Balance)
	if amt.GreaterThan(balance.Add(balanceEpsilon)) {
		return c, apperror.ErrExceedsBalance
	}

	payments := append(slices.Clone(c.Payments), entity.Payment{
		ID:     utils.NewID(),
		Amount: amount,
		Note:   note,
		Date:   now,
	})

	// Recompute the paid total from the full payment history rather than
	// incrementally, so a drifted record self-corrects on its next payment.
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(decimal.NewFromFloat(p.Amount))
	}

	total := decimal.NewFromFloat(c.TotalAmount)
	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	c.Payments = payments
	c.AmountPaid = paid.InexactFloat64()
	c.Balance = remaining.InexactFloat64()
	c.Status = StatusFor(total, paid, c.DueDate, now)
	return c, nil
}

// Refresh transitions every active record whose due date has passed to
// overdue. It returns the updated list and whether anything changed, so
// callers can skip the remote push on a no-op. Overdue records are never
// healed back to active here; only payments move them forward.
func Refresh(credits []entity.CreditRecord, now time.Time) ([]entity.CreditRecord, bool) {
	changed := false
	out := slices.Clone(credits)
	for i := range out {
		if out[i].Status == enum.CreditStatusActive && now.After(out[i].DueDate) {
			out[i].Status = enum.CreditStatusOverdue
			changed = true
		}
	}
	return out, changed
}

// NewRecord builds the credit record for a credit-paid transaction.
func NewRecord(txn entity.Transaction) entity.CreditRecord {
	return entity.CreditRecord{
		TransactionID: txn.ID,
		ReceiptNo:     txn.ReceiptNo,
		CustomerID:    txn.CustomerID,
		CustomerName:  txn.CustomerName,
		TotalAmount:   txn.Total,
		AmountPaid:    0,
		Balance:       txn.Total,
		DueDate:       DueDate(txn.CreatedAt),
		Status:        enum.CreditStatusActive,
		Payments:      []entity.Payment{},
	}
}
