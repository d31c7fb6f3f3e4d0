package pricing

import "errors"

// All money is integer cents; discount rates are basis points so the
// calculation stays exact end to end. Discounts compound in a fixed order:
// duration, then student, then renewal.
const (
	durationDiscount3MoBps  = 500  // 3+ months: 5%
	durationDiscount6MoBps  = 1000 // 6+ months: 10%
	durationDiscount12MoBps = 2000 // 12+ months: 20%

	studentDiscountBps = 1000 // 10%
	renewalDiscountBps = 500  // 5%
)

var (
	ErrInvalidBasePrice = errors.New("base price must be positive")
	ErrInvalidMonths    = errors.New("months must be positive")
)

// Quote is the full price breakdown for a membership purchase.
type Quote struct {
	BasePriceCents        int64 `json:"base_price_cents"`
	Months                int   `json:"months"`
	SubtotalCents         int64 `json:"subtotal_cents"`
	DurationDiscountCents int64 `json:"duration_discount_cents"`
	StudentDiscountCents  int64 `json:"student_discount_cents"`
	RenewalDiscountCents  int64 `json:"renewal_discount_cents"`
	TotalCents            int64 `json:"total_cents"`
}

func durationDiscountBps(months int) int64 {
	switch {
	case months >= 12:
		return durationDiscount12MoBps
	case months >= 6:
		return durationDiscount6MoBps
	case months >= 3:
		return durationDiscount3MoBps
	default:
		return 0
	}
}

func discount(amountCents, bps int64) int64 {
	return amountCents * bps / 10000
}

// Price computes the total for a plan purchase. The discount order is part of
// the contract: duration off the subtotal, student off the remainder, renewal
// off what is left after that.
func Price(basePriceCents int64, months int, isRenewal, hasStudentDiscount bool) (*Quote, error) {
	if basePriceCents <= 0 {
		return nil, ErrInvalidBasePrice
	}
	if months <= 0 {
		return nil, ErrInvalidMonths
	}

	q := &Quote{
		BasePriceCents: basePriceCents,
		Months:         months,
		SubtotalCents:  basePriceCents * int64(months),
	}

	running := q.SubtotalCents

	q.DurationDiscountCents = discount(running, durationDiscountBps(months))
	running -= q.DurationDiscountCents

	if hasStudentDiscount {
		q.StudentDiscountCents = discount(running, studentDiscountBps)
		running -= q.StudentDiscountCents
	}

	if isRenewal {
		q.RenewalDiscountCents = discount(running, renewalDiscountBps)
		running -= q.RenewalDiscountCents
	}

	q.TotalCents = running
	return q, nil
}
