package enum

// CreditStatus is the derived state of a credit sale.
//
// Transitions: active -> overdue (due date passes), active|overdue -> paid
// (cumulative payments reach the total). Paid is terminal; overdue never
// moves back to active.
type CreditStatus string

const (
	CreditStatusActive  CreditStatus = "active"
	CreditStatusOverdue CreditStatus = "overdue"
	CreditStatusPaid    CreditStatus = "paid"
)

// IsValid checks whether the credit status is one of the known values
func (s CreditStatus) IsValid() bool {
	switch s {
	case CreditStatusActive, CreditStatusOverdue, CreditStatusPaid:
		return true
	}
	return false
}
