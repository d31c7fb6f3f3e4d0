package loyalty

import (
	"context"
	"errors"
	"time"

	"gymcore/internal/logger"

	"github.com/google/uuid"
)

var ErrRewardNotFound = errors.New("reward not found")

type ExpirySummary struct {
	Expired  int `json:"expired"`
	Failures int `json:"failures"`
}

type Service interface {
	GetProfile(ctx context.Context, userID int) (*Profile, error)
	TierFor(ctx context.Context, userID int) (Tier, error)
	LogActivity(ctx context.Context, userID int, activityType string, points int, date time.Time) (*Activity, error)
	CancelActivity(ctx context.Context, activityID int) (*Activity, error)
	ListActivities(ctx context.Context, userID, limit, offset int) ([]Activity, error)
	Redeem(ctx context.Context, userID int, req RedeemRequest) (*Redemption, error)
	ListRewards(ctx context.Context) ([]Reward, error)
	ProcessExpiredPoints(ctx context.Context) (*ExpirySummary, error)
	RecomputeTiers(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	return s.repo.GetOrCreateProfile(ctx, userID)
}

// TierFor reports the member's current tier; users without a profile yet are
// bronze rather than an error.
func (s *service) TierFor(ctx context.Context, userID int) (Tier, error) {
	p, err := s.repo.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Tier, nil
}

func (s *service) LogActivity(ctx context.Context, userID int, activityType string, points int, date time.Time) (*Activity, error) {
	expiresAt := date.AddDate(0, ExpiryMonths, 0)
	return s.repo.LogActivity(ctx, userID, activityType, points, date, expiresAt)
}

func (s *service) CancelActivity(ctx context.Context, activityID int) (*Activity, error) {
	// Cancelling only reduces available points. Lifetime points, and with
	// them the tier, intentionally keep counting cancelled activities.
	return s.repo.CancelActivity(ctx, activityID)
}

func (s *service) ListActivities(ctx context.Context, userID, limit, offset int) ([]Activity, error) {
	return s.repo.ListActivities(ctx, userID, limit, offset)
}

func (s *service) Redeem(ctx context.Context, userID int, req RedeemRequest) (*Redemption, error) {
	reward, err := s.repo.GetReward(ctx, req.RewardID)
	if err != nil {
		return nil, ErrRewardNotFound
	}

	code := uuid.NewString()
	expiresAt := time.Now().AddDate(0, 0, reward.ValidDays)

	return s.repo.Redeem(ctx, userID, reward, code, expiresAt)
}

func (s *service) ListRewards(ctx context.Context) ([]Reward, error) {
	return s.repo.ListRewards(ctx)
}

// ProcessExpiredPoints is the daily batch marking ledger rows past their
// expiry date. Re-running it is a no-op for rows already marked.
func (s *service) ProcessExpiredPoints(ctx context.Context) (*ExpirySummary, error) {
	ids, err := s.repo.FindExpirable(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	summary := &ExpirySummary{}
	for _, id := range ids {
		expired, err := s.repo.ExpireActivity(ctx, id)
		if err != nil {
			logger.Errorf("Point expiry: failed for activity %d: %v", id, err)
			summary.Failures++
			continue
		}
		if expired {
			summary.Expired++
		}
	}

	logger.Info("Point expiry sweep finished",
		"expired", summary.Expired,
		"failures", summary.Failures,
	)

	return summary, nil
}

func (s *service) RecomputeTiers(ctx context.Context) (int64, error) {
	return s.repo.RecomputeTiers(ctx)
}
