package payment

import "context"

// Confirmation is the outcome of a payment intent lookup. The gateway
// protocol itself lives behind the provider; the core only consumes this.
type Confirmation struct {
	Confirmed   bool   `json:"confirmed"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type Port interface {
	ConfirmPayment(ctx context.Context, intentID string) (*Confirmation, error)
}
