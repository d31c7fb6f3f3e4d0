package reservation

import (
	"context"
	"time"
)

type Repository interface {
	// CreateGroupClass inserts the class and seeds the creator as its first
	// participant in one transaction.
	CreateGroupClass(ctx context.Context, ownerID, locationID int, targetID *int, start, end time.Time, maxCapacity int) (*Reservation, error)
	// CreateTargeted inserts a personal-training or specialized-space
	// reservation, failing with ErrTargetBusy when a confirmed reservation
	// on the same target and type overlaps the half-open interval
	// [start, end).
	CreateTargeted(ctx context.Context, ownerID int, rtype Type, locationID, targetID int, start, end time.Time) (*Reservation, error)
	// Join atomically checks capacity and appends the participant. The
	// reservation row is locked for the duration of the check-and-insert,
	// so concurrent joins against the same class serialize: with C free
	// slots and N concurrent callers exactly min(N,C) succeed.
	Join(ctx context.Context, reservationID, userID int, now time.Time) error
	GetByID(ctx context.Context, id int) (*Reservation, error)
	IsParticipant(ctx context.Context, reservationID, userID int) (bool, error)
	Cancel(ctx context.Context, id int) error
	ListParticipants(ctx context.Context, reservationID int) ([]Participant, error)
	CountParticipants(ctx context.Context, reservationID int) (int, error)
	ListByUser(ctx context.Context, userID int) ([]Reservation, error)
	ListUpcomingClasses(ctx context.Context, locationID int, now time.Time) ([]ClassWithAvailability, error)
}
