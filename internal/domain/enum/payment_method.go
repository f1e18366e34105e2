package enum

// PaymentMethod is how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodGCash  PaymentMethod = "gcash" // digital wallet
	PaymentMethodCredit PaymentMethod = "credit"
)

// IsValid checks whether the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodGCash, PaymentMethodCredit:
		return true
	}
	return false
}
