package reservation

import (
	"context"
	"errors"
	"time"

	"gymcore/internal/logger"
	"gymcore/internal/loyalty"
	"gymcore/internal/payment"
	"gymcore/internal/user"
)

var (
	ErrAdminOnly           = errors.New("only admins can create group classes")
	ErrStartNotFuture      = errors.New("start time must be in the future")
	ErrEndBeforeStart      = errors.New("end time must be after start time")
	ErrInvalidTimeFormat   = errors.New("times must be RFC3339")
	ErrInvalidType         = errors.New("type must be personal_training or specialized_space")
	ErrNotOwner            = errors.New("only the owner or an admin can cancel a reservation")
	ErrPaymentNotConfirmed = errors.New("payment was not confirmed")
	ErrPaymentTooSmall     = errors.New("confirmed payment does not cover the class fee")
)

const activityClassAttendance = "class_attendance"
const classAttendancePoints = 50

type Notifier interface {
	Queue(ctx context.Context, to, name, templateKey string, vars map[string]string) error
}

type PointsAwarder interface {
	LogActivity(ctx context.Context, userID int, activityType string, points int, date time.Time) (*loyalty.Activity, error)
}

type TierSource interface {
	TierFor(ctx context.Context, userID int) (loyalty.Tier, error)
}

type UserDirectory interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Service interface {
	CreateGroupClass(ctx context.Context, creatorID int, creatorRole string, req CreateClassRequest) (*Reservation, error)
	CreateTargeted(ctx context.Context, ownerID int, req CreateReservationRequest) (*Reservation, error)
	Join(ctx context.Context, userID, classID int) error
	JoinWithPayment(ctx context.Context, userID, classID int, paymentIntentID string) error
	Cancel(ctx context.Context, actorID int, actorRole string, reservationID int) error
	ListMine(ctx context.Context, userID int) ([]Reservation, error)
	ListUpcomingClasses(ctx context.Context, locationID int) ([]ClassWithAvailability, error)
	ListParticipants(ctx context.Context, reservationID int) ([]Participant, error)
}

type service struct {
	repo          Repository
	payments      payment.Port
	tiers         TierSource
	points        PointsAwarder
	users         UserDirectory
	notifier      Notifier
	classFeeCents int64
}

func NewService(
	repo Repository,
	payments payment.Port,
	tiers TierSource,
	points PointsAwarder,
	users UserDirectory,
	notifier Notifier,
	classFeeCents int64,
) Service {
	return &service{
		repo:          repo,
		payments:      payments,
		tiers:         tiers,
		points:        points,
		users:         users,
		notifier:      notifier,
		classFeeCents: classFeeCents,
	}
}

func parseWindow(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeFormat
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeFormat
	}
	if !start.After(now) {
		return time.Time{}, time.Time{}, ErrStartNotFuture
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}
	return start, end, nil
}

func (s *service) CreateGroupClass(ctx context.Context, creatorID int, creatorRole string, req CreateClassRequest) (*Reservation, error) {
	if creatorRole != "admin" {
		return nil, ErrAdminOnly
	}

	start, end, err := parseWindow(req.StartTime, req.EndTime, time.Now())
	if err != nil {
		return nil, err
	}

	return s.repo.CreateGroupClass(ctx, creatorID, req.LocationID, req.TargetID, start, end, req.MaxCapacity)
}

func (s *service) CreateTargeted(ctx context.Context, ownerID int, req CreateReservationRequest) (*Reservation, error) {
	if req.Type != TypePersonalTraining && req.Type != TypeSpecializedSpace {
		return nil, ErrInvalidType
	}

	start, end, err := parseWindow(req.StartTime, req.EndTime, time.Now())
	if err != nil {
		return nil, err
	}

	res, err := s.repo.CreateTargeted(ctx, ownerID, req.Type, req.LocationID, req.TargetID, start, end)
	if err != nil {
		return nil, err
	}

	s.notifyUser(ctx, ownerID, "reservation_confirmed", map[string]string{
		"start_time": res.StartTime.Format(time.RFC3339),
	})

	return res, nil
}

// Join enrolls the member into a group class. The class is vetted before the
// tier gate runs, so a member is never asked to pay for a class that is
// missing, cancelled, started or full. Diamond-tier members join free;
// everyone else is redirected to the paid path with the fee attached.
func (s *service) Join(ctx context.Context, userID, classID int) error {
	if err := s.vetClass(ctx, userID, classID); err != nil {
		return err
	}

	tier, err := s.tiers.TierFor(ctx, userID)
	if err != nil {
		return err
	}

	if tier != loyalty.TierDiamond {
		return &PaymentRequiredError{FeeCents: s.classFeeCents}
	}

	return s.join(ctx, userID, classID)
}

// JoinWithPayment is the paid path: the gate is bypassed once the payment
// collaborator confirms the intent covers the fee. The class is vetted
// before the payment is confirmed so a member is never charged for a class
// they cannot enter.
func (s *service) JoinWithPayment(ctx context.Context, userID, classID int, paymentIntentID string) error {
	if err := s.vetClass(ctx, userID, classID); err != nil {
		return err
	}

	conf, err := s.payments.ConfirmPayment(ctx, paymentIntentID)
	if err != nil {
		return err
	}
	if !conf.Confirmed {
		return ErrPaymentNotConfirmed
	}
	if conf.AmountCents < s.classFeeCents {
		return ErrPaymentTooSmall
	}

	return s.join(ctx, userID, classID)
}

// vetClass rejects joins that cannot succeed: unknown, cancelled or started
// classes, duplicate enrollments and full classes. These reads can still
// race a concurrent join; Repository.Join repeats them under the row lock
// and stays authoritative.
func (s *service) vetClass(ctx context.Context, userID, classID int) error {
	res, err := s.repo.GetByID(ctx, classID)
	if err != nil || !res.IsGroup {
		return ErrClassNotFound
	}
	if res.Status == StatusCancelled {
		return ErrClassCancelled
	}
	if !res.StartTime.After(time.Now()) {
		return ErrClassStarted
	}

	joined, err := s.repo.IsParticipant(ctx, classID, userID)
	if err != nil {
		return err
	}
	if joined {
		return ErrAlreadyJoined
	}

	count, err := s.repo.CountParticipants(ctx, classID)
	if err != nil {
		return err
	}
	if count >= res.MaxCapacity {
		return ErrClassFull
	}

	return nil
}

func (s *service) join(ctx context.Context, userID, classID int) error {
	if err := s.repo.Join(ctx, classID, userID, time.Now()); err != nil {
		return err
	}

	if _, err := s.points.LogActivity(ctx, userID, activityClassAttendance, classAttendancePoints, time.Now()); err != nil {
		logger.Errorf("Failed to award attendance points for user %d: %v", userID, err)
	}

	s.notifyUser(ctx, userID, "class_joined", nil)
	return nil
}

func (s *service) Cancel(ctx context.Context, actorID int, actorRole string, reservationID int) error {
	res, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return ErrClassNotFound
	}

	if res.OwnerUserID != actorID && actorRole != "admin" {
		return ErrNotOwner
	}

	if err := s.repo.Cancel(ctx, reservationID); err != nil {
		return err
	}

	s.notifyUser(ctx, res.OwnerUserID, "reservation_cancelled", map[string]string{
		"start_time": res.StartTime.Format(time.RFC3339),
	})

	return nil
}

func (s *service) ListMine(ctx context.Context, userID int) ([]Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListUpcomingClasses(ctx context.Context, locationID int) ([]ClassWithAvailability, error) {
	return s.repo.ListUpcomingClasses(ctx, locationID, time.Now())
}

func (s *service) ListParticipants(ctx context.Context, reservationID int) ([]Participant, error) {
	return s.repo.ListParticipants(ctx, reservationID)
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
