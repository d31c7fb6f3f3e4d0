package membership

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gymcore/internal/logger"
	"gymcore/internal/loyalty"
	"gymcore/internal/payment"
	"gymcore/internal/pricing"
	"gymcore/internal/user"
)

var (
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrNotOwner            = errors.New("can only manage your own membership")
	ErrPaymentNotConfirmed = errors.New("payment was not confirmed")
	ErrPaymentAmountWrong  = errors.New("confirmed payment amount does not match the quote")
	ErrInvalidUntilDate    = errors.New("until must be a YYYY-MM-DD date")
	ErrNoPriorMembership   = errors.New("no previous membership to renew")
)

const activityMembershipPurchase = "membership_purchase"

type Notifier interface {
	Queue(ctx context.Context, to, name, templateKey string, vars map[string]string) error
}

type PointsAwarder interface {
	LogActivity(ctx context.Context, userID int, activityType string, points int, date time.Time) (*loyalty.Activity, error)
}

type UserDirectory interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type SweepSummary struct {
	Reactivated int `json:"reactivated"`
	Expired     int `json:"expired"`
	Failures    int `json:"failures"`
}

type Service interface {
	Purchase(ctx context.Context, userID int, req PurchaseRequest) (*Membership, *pricing.Quote, error)
	Renew(ctx context.Context, userID int, req PurchaseRequest) (*Membership, *pricing.Quote, error)
	QuotePlan(ctx context.Context, planID, months int, isRenewal, student bool) (*pricing.Quote, error)
	Suspend(ctx context.Context, actorID int, actorRole string, membershipID int, req SuspendRequest) (*Membership, error)
	Reactivate(ctx context.Context, actorID int, actorRole string, membershipID int) (*Membership, error)
	Cancel(ctx context.Context, actorID int, actorRole string, membershipID int) (*Membership, error)
	ListForUser(ctx context.Context, userID int) ([]Membership, error)
	ListPlans(ctx context.Context) ([]Plan, error)
	RunDailySweep(ctx context.Context) (*SweepSummary, error)
}

type service struct {
	repo     Repository
	payments payment.Port
	points   PointsAwarder
	users    UserDirectory
	notifier Notifier
}

func NewService(repo Repository, payments payment.Port, points PointsAwarder, users UserDirectory, notifier Notifier) Service {
	return &service{
		repo:     repo,
		payments: payments,
		points:   points,
		users:    users,
		notifier: notifier,
	}
}

func (s *service) QuotePlan(ctx context.Context, planID, months int, isRenewal, student bool) (*pricing.Quote, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, ErrPlanNotFound
	}

	return pricing.Price(plan.BasePriceCents, months, isRenewal, student)
}

func (s *service) Purchase(ctx context.Context, userID int, req PurchaseRequest) (*Membership, *pricing.Quote, error) {
	return s.purchase(ctx, userID, req, false)
}

func (s *service) Renew(ctx context.Context, userID int, req PurchaseRequest) (*Membership, *pricing.Quote, error) {
	previous, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(previous) == 0 {
		return nil, nil, ErrNoPriorMembership
	}

	return s.purchase(ctx, userID, req, true)
}

func (s *service) purchase(ctx context.Context, userID int, req PurchaseRequest, isRenewal bool) (*Membership, *pricing.Quote, error) {
	quote, err := s.QuotePlan(ctx, req.PlanID, req.Months, isRenewal, req.StudentDiscount)
	if err != nil {
		return nil, nil, err
	}

	conf, err := s.payments.ConfirmPayment(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, nil, err
	}
	if !conf.Confirmed {
		return nil, nil, ErrPaymentNotConfirmed
	}
	if conf.AmountCents != quote.TotalCents {
		return nil, nil, ErrPaymentAmountWrong
	}

	start := DateOnly(time.Now())
	end := start.AddDate(0, req.Months, 0)

	m, err := s.repo.Create(ctx, userID, req.PlanID, start, end)
	if err != nil {
		return nil, nil, err
	}

	// One point per dollar spent. Failures here must not undo the purchase.
	if _, err := s.points.LogActivity(ctx, userID, activityMembershipPurchase, int(quote.TotalCents/100), start); err != nil {
		logger.Errorf("Failed to award purchase points for user %d: %v", userID, err)
	}

	s.notifyUser(ctx, userID, "membership_purchased", map[string]string{
		"end_date":    m.EndDate.Format("2006-01-02"),
		"total_cents": strconv.FormatInt(quote.TotalCents, 10),
	})

	return m, quote, nil
}

func (s *service) Suspend(ctx context.Context, actorID int, actorRole string, membershipID int, req SuspendRequest) (*Membership, error) {
	until, err := time.Parse("2006-01-02", req.Until)
	if err != nil {
		return nil, ErrInvalidUntilDate
	}

	m, err := s.applyOwned(ctx, actorID, actorRole, membershipID, func(m *Membership) error {
		return m.Suspend(req.Reason, until, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.notifyUser(ctx, m.UserID, "membership_suspended", map[string]string{
		"until":  req.Until,
		"reason": req.Reason,
	})

	return m, nil
}

func (s *service) Reactivate(ctx context.Context, actorID int, actorRole string, membershipID int) (*Membership, error) {
	m, err := s.applyOwned(ctx, actorID, actorRole, membershipID, func(m *Membership) error {
		return m.Reactivate()
	})
	if err != nil {
		return nil, err
	}

	s.notifyUser(ctx, m.UserID, "membership_reactivated", map[string]string{
		"end_date": m.EndDate.Format("2006-01-02"),
	})

	return m, nil
}

func (s *service) Cancel(ctx context.Context, actorID int, actorRole string, membershipID int) (*Membership, error) {
	m, err := s.applyOwned(ctx, actorID, actorRole, membershipID, func(m *Membership) error {
		return m.Cancel()
	})
	if err != nil {
		return nil, err
	}

	s.notifyUser(ctx, m.UserID, "membership_cancelled", nil)

	return m, nil
}

// applyOwned runs a lifecycle transition after checking the actor may touch
// the membership. The ownership check reads outside the lock; the transition
// itself re-reads under FOR UPDATE.
func (s *service) applyOwned(ctx context.Context, actorID int, actorRole string, membershipID int, apply func(*Membership) error) (*Membership, error) {
	existing, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, ErrMembershipNotFound
	}

	if existing.UserID != actorID && actorRole != "admin" {
		return nil, ErrNotOwner
	}

	return s.repo.UpdateLifecycle(ctx, membershipID, apply)
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Membership, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.repo.ListPlans(ctx)
}

// RunDailySweep reactivates memberships whose suspension window ended and
// expires memberships past their end date. A failing record is logged and
// skipped so it cannot block the rest of the batch.
func (s *service) RunDailySweep(ctx context.Context) (*SweepSummary, error) {
	today := DateOnly(time.Now())
	summary := &SweepSummary{}

	toReactivate, err := s.repo.FindSuspensionsEnding(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, id := range toReactivate {
		m, err := s.repo.UpdateLifecycle(ctx, id, func(m *Membership) error {
			return m.Reactivate()
		})
		if err != nil {
			logger.Errorf("Sweep: failed to reactivate membership %d: %v", id, err)
			summary.Failures++
			continue
		}
		summary.Reactivated++
		s.notifyUser(ctx, m.UserID, "membership_reactivated", map[string]string{
			"end_date": m.EndDate.Format("2006-01-02"),
		})
	}

	toExpire, err := s.repo.FindExpiring(ctx, today)
	if err != nil {
		return summary, err
	}
	for _, id := range toExpire {
		m, err := s.repo.UpdateLifecycle(ctx, id, func(m *Membership) error {
			return m.Expire(time.Now())
		})
		if err != nil {
			logger.Errorf("Sweep: failed to expire membership %d: %v", id, err)
			summary.Failures++
			continue
		}
		summary.Expired++
		s.notifyUser(ctx, m.UserID, "membership_expired", nil)
	}

	logger.Info("Lifecycle sweep finished",
		"reactivated", summary.Reactivated,
		"expired", summary.Expired,
		"failures", summary.Failures,
	)

	return summary, nil
}

func (s *service) notifyUser(ctx context.Context, userID int, templateKey string, vars map[string]string) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Errorf("Notify %s: user %d lookup failed: %v", templateKey, userID, err)
		return
	}

	if err := s.notifier.Queue(ctx, u.Email, u.Name, templateKey, vars); err != nil {
		logger.Errorf("Notify %s: queue failed for user %d: %v", templateKey, userID, err)
	}
}
