package membership

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidState        = errors.New("invalid membership state transition")
	ErrSuspensionEndInPast = errors.New("suspension end date cannot be before today")
	ErrNotYetEnded         = errors.New("membership end date has not passed")
)

type Membership struct {
	ID               int        `db:"id" json:"id"`
	UserID           int        `db:"user_id" json:"user_id"`
	PlanID           int        `db:"plan_id" json:"plan_id"`
	StartDate        time.Time  `db:"start_date" json:"start_date"`
	EndDate          time.Time  `db:"end_date" json:"end_date"`
	Status           Status     `db:"status" json:"status"`
	SuspensionStart  *time.Time `db:"suspension_start" json:"suspension_start,omitempty"`
	SuspensionEnd    *time.Time `db:"suspension_end" json:"suspension_end,omitempty"`
	SuspensionReason *string    `db:"suspension_reason" json:"suspension_reason,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

type Plan struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	BasePriceCents int64     `db:"base_price_cents" json:"base_price_cents"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type PurchaseRequest struct {
	PlanID          int    `json:"plan_id" binding:"required"`
	Months          int    `json:"months" binding:"required,min=1,max=36"`
	StudentDiscount bool   `json:"student_discount"`
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type SuspendRequest struct {
	Reason string `json:"reason" binding:"required"`
	Until  string `json:"until" binding:"required"` // YYYY-MM-DD
}

// DateOnly truncates to a calendar date in UTC so day arithmetic is
// insensitive to the time-of-day the operation runs at.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// Suspend pauses an active membership until the given date.
func (m *Membership) Suspend(reason string, until, now time.Time) error {
	if m.Status != StatusActive {
		return fmt.Errorf("%w: cannot suspend a %s membership", ErrInvalidState, m.Status)
	}

	today := DateOnly(now)
	end := DateOnly(until)
	if end.Before(today) {
		return ErrSuspensionEndInPast
	}

	m.Status = StatusSuspended
	m.SuspensionStart = &today
	m.SuspensionEnd = &end
	m.SuspensionReason = &reason
	return nil
}

// Reactivate resumes a suspended membership and pushes the end date out by
// the number of suspended days, so members never lose paid time.
func (m *Membership) Reactivate() error {
	if m.Status != StatusSuspended {
		return fmt.Errorf("%w: cannot reactivate a %s membership", ErrInvalidState, m.Status)
	}

	if m.SuspensionStart != nil && m.SuspensionEnd != nil {
		suspendedDays := daysBetween(*m.SuspensionStart, *m.SuspensionEnd)
		m.EndDate = m.EndDate.AddDate(0, 0, suspendedDays)
	}

	m.Status = StatusActive
	m.SuspensionStart = nil
	m.SuspensionEnd = nil
	m.SuspensionReason = nil
	return nil
}

// Expire marks an active membership whose end date has passed. Calling it on
// an already expired membership is a no-op.
func (m *Membership) Expire(now time.Time) error {
	if m.Status == StatusExpired {
		return nil
	}
	if m.Status != StatusActive {
		return fmt.Errorf("%w: cannot expire a %s membership", ErrInvalidState, m.Status)
	}
	if !DateOnly(m.EndDate).Before(DateOnly(now)) {
		return ErrNotYetEnded
	}

	m.Status = StatusExpired
	return nil
}

// Cancel is terminal and valid from active or suspended.
func (m *Membership) Cancel() error {
	if m.Status != StatusActive && m.Status != StatusSuspended {
		return fmt.Errorf("%w: cannot cancel a %s membership", ErrInvalidState, m.Status)
	}

	m.Status = StatusCancelled
	m.SuspensionStart = nil
	m.SuspensionEnd = nil
	m.SuspensionReason = nil
	return nil
}
