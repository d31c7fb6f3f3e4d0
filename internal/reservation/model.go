package reservation

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeGroupClass       Type = "group_class"
	TypePersonalTraining Type = "personal_training"
	TypeSpecializedSpace Type = "specialized_space"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Reservation struct {
	ID          int       `db:"id" json:"id"`
	OwnerUserID int       `db:"owner_user_id" json:"owner_user_id"`
	Type        Type      `db:"type" json:"type"`
	TargetID    *int      `db:"target_id" json:"target_id,omitempty"`
	LocationID  int       `db:"location_id" json:"location_id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Status      Status    `db:"status" json:"status"`
	IsGroup     bool      `db:"is_group" json:"is_group"`
	MaxCapacity int       `db:"max_capacity" json:"max_capacity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Participant struct {
	ReservationID int       `db:"reservation_id" json:"reservation_id"`
	UserID        int       `db:"user_id" json:"user_id"`
	JoinedAt      time.Time `db:"joined_at" json:"joined_at"`
}

type ClassWithAvailability struct {
	Reservation
	ParticipantCount int  `db:"participant_count" json:"participant_count"`
	Available        int  `json:"available"`
	IsFull           bool `json:"is_full"`
}

type CreateClassRequest struct {
	LocationID  int    `json:"location_id" binding:"required"`
	TargetID    *int   `json:"target_id"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"required,min=1"`
}

type CreateReservationRequest struct {
	Type       Type   `json:"type" binding:"required"`
	LocationID int    `json:"location_id" binding:"required"`
	TargetID   int    `json:"target_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type JoinWithPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// PaymentRequiredError redirects a member to the paid-join path. It carries
// the fee so the client can render it; it is a signal, not a failure.
type PaymentRequiredError struct {
	FeeCents int64
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("payment of %d cents required to join this class", e.FeeCents)
}

// Overlaps reports whether two half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching at a boundary does not count.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
