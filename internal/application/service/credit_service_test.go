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
	"github.com/joshuadev/bigasan-pos/pkg/pagination"
)

func TestCreditService_AddPaymentAndOutstanding(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	st := store.NewWithClock(func() time.Time { return now })
	svc := NewCreditService(st)

	credit := st.UpsertCredit(entity.CreditRecord{
		CustomerID:  "c-1",
		TotalAmount: 500,
		Balance:     500,
		DueDate:     ledger.DueDate(now),
		Status:      enum.CreditStatusActive,
	})

	updated, err := svc.AddPayment(credit.ID, 200, "partial")
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.Balance)

	summary := svc.Outstanding()
	assert.Equal(t, 300.0, summary.TotalOutstanding)
	assert.Equal(t, 1, summary.ActiveCount)
	assert.Equal(t, 0, summary.OverdueCount)

	assert.Equal(t, 300.0, svc.CustomerOutstanding("c-1"))
	assert.Equal(t, 0.0, svc.CustomerOutstanding("c-2"))

	_, err = svc.AddPayment("missing", 10, "")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreditService_ListFiltersAndSorts(t *testing.T) {
	now := time.Now().UTC()
	st := store.New()
	svc := NewCreditService(st)

	st.SetCredits([]entity.CreditRecord{
		{ID: "late", CustomerID: "c-1", Status: enum.CreditStatusOverdue, DueDate: now.AddDate(0, 0, -5)},
		{ID: "soon", CustomerID: "c-1", Status: enum.CreditStatusActive, DueDate: now.AddDate(0, 0, 2)},
		{ID: "done", CustomerID: "c-2", Status: enum.CreditStatusPaid, DueDate: now.AddDate(0, 0, 1)},
	})

	params := &pagination.PaginationParams{Page: 1, PerPage: 10}

	all := svc.ListCredits(params, "", "")
	require.Len(t, all.Items, 3)
	assert.Equal(t, "late", all.Items[0].ID, "soonest due date first")

	active := svc.ListCredits(params, enum.CreditStatusActive, "")
	require.Len(t, active.Items, 1)
	assert.Equal(t, "soon", active.Items[0].ID)

	byCustomer := svc.ListCredits(params, "", "c-2")
	require.Len(t, byCustomer.Items, 1)
	assert.Equal(t, "done", byCustomer.Items[0].ID)
}

func TestCreditService_RefreshStatuses(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	st := store.NewWithClock(func() time.Time { return now })
	svc := NewCreditService(st)

	st.SetCredits([]entity.CreditRecord{
		{ID: "a", Status: enum.CreditStatusActive, DueDate: now.AddDate(0, 0, -1)},
	})

	assert.True(t, svc.RefreshStatuses())
	credits := st.Credits()
	assert.Equal(t, enum.CreditStatusOverdue, credits[0].Status)
	assert.False(t, svc.RefreshStatuses())
}
