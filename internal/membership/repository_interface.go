package membership

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID, planID int, startDate, endDate time.Time) (*Membership, error)
	GetByID(ctx context.Context, id int) (*Membership, error)
	GetActiveForUser(ctx context.Context, userID int) (*Membership, error)
	ListByUser(ctx context.Context, userID int) ([]Membership, error)
	// UpdateLifecycle applies a transition under a per-row lock so concurrent
	// sweeps and requests on the same membership serialize.
	UpdateLifecycle(ctx context.Context, id int, apply func(*Membership) error) (*Membership, error)
	FindSuspensionsEnding(ctx context.Context, before time.Time) ([]int, error)
	FindExpiring(ctx context.Context, before time.Time) ([]int, error)

	GetPlan(ctx context.Context, id int) (*Plan, error)
	ListPlans(ctx context.Context) ([]Plan, error)
}
