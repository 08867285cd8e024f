package entity

import "time"

// Payment methods accepted for an expense. Cash is the default.
const (
	PaymentCash       = "cash"
	PaymentCard       = "card"
	PaymentUPI        = "upi"
	PaymentNetbanking = "netbanking"
	PaymentOther      = "other"
)

var paymentMethods = map[string]struct{}{
	PaymentCash:       {},
	PaymentCard:       {},
	PaymentUPI:        {},
	PaymentNetbanking: {},
	PaymentOther:      {},
}

// IsValidPaymentMethod reports whether m is one of the accepted payment methods.
func IsValidPaymentMethod(m string) bool {
	_, ok := paymentMethods[m]
	return ok
}

// Expense is a single spending record. Every expense belongs to exactly
// one user and references a category owned by that same user.
type Expense struct {
	ID            string
	UserID        string
	CategoryID    string
	Title         string
	Description   string
	Amount        float64
	Date          time.Time
	PaymentMethod string
	Tags          []string
	ReceiptURL    string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Category is the expanded {name, color, icon} projection, populated
	// by reads that join the category row.
	Category *CategoryRef
}
