package loyalty

import (
	"context"
	"time"
)

type Repository interface {
	GetProfile(ctx context.Context, userID int) (*Profile, error)
	GetOrCreateProfile(ctx context.Context, userID int) (*Profile, error)

	// LogActivity appends a ledger row and updates the profile totals and
	// tier in one transaction.
	LogActivity(ctx context.Context, userID int, activityType string, points int, date, expiresAt time.Time) (*Activity, error)
	// CancelActivity removes the points from available_points only;
	// total_points and tier are untouched. Idempotent.
	CancelActivity(ctx context.Context, activityID int) (*Activity, error)
	ListActivities(ctx context.Context, userID, limit, offset int) ([]Activity, error)

	FindExpirable(ctx context.Context, now time.Time) ([]int, error)
	// ExpireActivity marks a row expired and debits available_points.
	// Idempotent: an already expired row is left alone.
	ExpireActivity(ctx context.Context, activityID int) (bool, error)

	GetReward(ctx context.Context, id int) (*Reward, error)
	ListRewards(ctx context.Context) ([]Reward, error)
	// Redeem debits available points under a profile row lock and records
	// the redemption.
	Redeem(ctx context.Context, userID int, reward *Reward, code string, expiresAt time.Time) (*Redemption, error)

	RecomputeTiers(ctx context.Context) (int64, error)
}
