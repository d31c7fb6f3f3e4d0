package reservation

import (
	"context"
	"testing"
	"time"

	"gymcore/internal/loyalty"
	"gymcore/internal/payment"
	"gymcore/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationRepo struct{ mock.Mock }
type MockPaymentPort struct{ mock.Mock }
type MockTierSource struct{ mock.Mock }
type MockPointsAwarder struct{ mock.Mock }
type MockUserDirectory struct{ mock.Mock }
type MockNotifier struct{ mock.Mock }

func (m *MockReservationRepo) CreateGroupClass(ctx context.Context, ownerID, locationID int, targetID *int, start, end time.Time, maxCapacity int) (*Reservation, error) {
	args := m.Called(ctx, ownerID, locationID, targetID, start, end, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockReservationRepo) CreateTargeted(ctx context.Context, ownerID int, rtype Type, locationID, targetID int, start, end time.Time) (*Reservation, error) {
	args := m.Called(ctx, ownerID, rtype, locationID, targetID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockReservationRepo) Join(ctx context.Context, reservationID, userID int, now time.Time) error {
	return m.Called(ctx, reservationID, userID, now).Error(0)
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id int) (*Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockReservationRepo) IsParticipant(ctx context.Context, reservationID, userID int) (bool, error) {
	args := m.Called(ctx, reservationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepo) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationRepo) ListParticipants(ctx context.Context, reservationID int) ([]Participant, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Participant), args.Error(1)
}

func (m *MockReservationRepo) CountParticipants(ctx context.Context, reservationID int) (int, error) {
	args := m.Called(ctx, reservationID)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepo) ListByUser(ctx context.Context, userID int) ([]Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockReservationRepo) ListUpcomingClasses(ctx context.Context, locationID int, now time.Time) ([]ClassWithAvailability, error) {
	args := m.Called(ctx, locationID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassWithAvailability), args.Error(1)
}

func (m *MockPaymentPort) ConfirmPayment(ctx context.Context, intentID string) (*payment.Confirmation, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Confirmation), args.Error(1)
}

func (m *MockTierSource) TierFor(ctx context.Context, userID int) (loyalty.Tier, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(loyalty.Tier), args.Error(1)
}

func (m *MockPointsAwarder) LogActivity(ctx context.Context, userID int, activityType string, points int, date time.Time) (*loyalty.Activity, error) {
	args := m.Called(ctx, userID, activityType, points, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Activity), args.Error(1)
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockNotifier) Queue(ctx context.Context, to, name, templateKey string, vars map[string]string) error {
	return m.Called(ctx, to, name, templateKey, vars).Error(0)
}

type serviceMocks struct {
	repo     *MockReservationRepo
	payments *MockPaymentPort
	tiers    *MockTierSource
	points   *MockPointsAwarder
	users    *MockUserDirectory
	notifier *MockNotifier
}

func newServiceWithMocks(feeCents int64) (Service, *serviceMocks) {
	m := &serviceMocks{
		repo:     new(MockReservationRepo),
		payments: new(MockPaymentPort),
		tiers:    new(MockTierSource),
		points:   new(MockPointsAwarder),
		users:    new(MockUserDirectory),
		notifier: new(MockNotifier),
	}
	svc := NewService(m.repo, m.payments, m.tiers, m.points, m.users, m.notifier, feeCents)
	return svc, m
}

// stubClass registers GetByID/IsParticipant/CountParticipants expectations
// for a confirmed, not-yet-started group class.
func stubClass(m *serviceMocks, classID, capacity, enrolled int, alreadyJoined bool) {
	m.repo.On("GetByID", mock.Anything, classID).Return(&Reservation{
		ID:          classID,
		OwnerUserID: 1,
		Type:        TypeGroupClass,
		Status:      StatusConfirmed,
		IsGroup:     true,
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(25 * time.Hour),
		MaxCapacity: capacity,
	}, nil)
	m.repo.On("IsParticipant", mock.Anything, classID, mock.Anything).Return(alreadyJoined, nil)
	m.repo.On("CountParticipants", mock.Anything, classID).Return(enrolled, nil)
}

func TestService_Join_TierGate(t *testing.T) {
	t.Run("non-diamond member gets the fee back", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 4, false)
		m.tiers.On("TierFor", mock.Anything, 7).Return(loyalty.TierGold, nil)

		err := svc.Join(context.Background(), 7, 3)

		var payErr *PaymentRequiredError
		require.ErrorAs(t, err, &payErr)
		assert.Equal(t, int64(1500), payErr.FeeCents)
		m.repo.AssertNotCalled(t, "Join", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing class reported before the fee", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("GetByID", mock.Anything, 999).Return(nil, assert.AnError)

		err := svc.Join(context.Background(), 7, 999)

		assert.ErrorIs(t, err, ErrClassNotFound)
		m.tiers.AssertNotCalled(t, "TierFor", mock.Anything, mock.Anything)
	})

	t.Run("full class reported before the fee", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 5, 5, false)

		err := svc.Join(context.Background(), 7, 3)

		assert.ErrorIs(t, err, ErrClassFull)
		m.tiers.AssertNotCalled(t, "TierFor", mock.Anything, mock.Anything)
	})

	t.Run("duplicate enrollment reported before the fee", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 4, true)

		err := svc.Join(context.Background(), 7, 3)

		assert.ErrorIs(t, err, ErrAlreadyJoined)
		m.tiers.AssertNotCalled(t, "TierFor", mock.Anything, mock.Anything)
	})

	t.Run("diamond member joins free and earns points", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 4, false)
		m.tiers.On("TierFor", mock.Anything, 7).Return(loyalty.TierDiamond, nil)
		m.repo.On("Join", mock.Anything, 3, 7, mock.Anything).Return(nil)
		m.points.On("LogActivity", mock.Anything, 7, "class_attendance", 50, mock.Anything).Return(&loyalty.Activity{}, nil)
		m.users.On("FindByID", mock.Anything, 7).Return(&user.User{ID: 7, Email: "a@b.c", Name: "Ana"}, nil)
		m.notifier.On("Queue", mock.Anything, "a@b.c", "Ana", "class_joined", mock.Anything).Return(nil)

		err := svc.Join(context.Background(), 7, 3)

		require.NoError(t, err)
		m.repo.AssertExpectations(t)
		m.points.AssertExpectations(t)
	})

	t.Run("losing the race inside the lock surfaces conflict", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 9, false)
		m.tiers.On("TierFor", mock.Anything, 7).Return(loyalty.TierDiamond, nil)
		m.repo.On("Join", mock.Anything, 3, 7, mock.Anything).Return(ErrClassFull)

		err := svc.Join(context.Background(), 7, 3)

		assert.ErrorIs(t, err, ErrClassFull)
	})
}

func TestService_JoinWithPayment(t *testing.T) {
	t.Run("confirmed payment covering the fee joins", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 4, false)
		m.payments.On("ConfirmPayment", mock.Anything, "pi_1").Return(&payment.Confirmation{
			Confirmed:   true,
			AmountCents: 1500,
		}, nil)
		m.repo.On("Join", mock.Anything, 3, 7, mock.Anything).Return(nil)
		m.points.On("LogActivity", mock.Anything, 7, "class_attendance", 50, mock.Anything).Return(&loyalty.Activity{}, nil)
		m.users.On("FindByID", mock.Anything, 7).Return(&user.User{ID: 7, Email: "a@b.c", Name: "Ana"}, nil)
		m.notifier.On("Queue", mock.Anything, "a@b.c", "Ana", "class_joined", mock.Anything).Return(nil)

		require.NoError(t, svc.JoinWithPayment(context.Background(), 7, 3, "pi_1"))
	})

	t.Run("full class is never charged", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 5, 5, false)

		err := svc.JoinWithPayment(context.Background(), 7, 3, "pi_4")

		assert.ErrorIs(t, err, ErrClassFull)
		m.payments.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
	})

	t.Run("missing class is never charged", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("GetByID", mock.Anything, 999).Return(nil, assert.AnError)

		err := svc.JoinWithPayment(context.Background(), 7, 999, "pi_5")

		assert.ErrorIs(t, err, ErrClassNotFound)
		m.payments.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
	})

	t.Run("unconfirmed payment rejected", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 4, false)
		m.payments.On("ConfirmPayment", mock.Anything, "pi_2").Return(&payment.Confirmation{Confirmed: false}, nil)

		err := svc.JoinWithPayment(context.Background(), 7, 3, "pi_2")
		assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	})

	t.Run("payment below the fee rejected", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		stubClass(m, 3, 10, 4, false)
		m.payments.On("ConfirmPayment", mock.Anything, "pi_3").Return(&payment.Confirmation{
			Confirmed:   true,
			AmountCents: 1000,
		}, nil)

		err := svc.JoinWithPayment(context.Background(), 7, 3, "pi_3")
		assert.ErrorIs(t, err, ErrPaymentTooSmall)
	})
}

func TestService_CreateGroupClass(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	futureEnd := time.Now().Add(25 * time.Hour).Format(time.RFC3339)

	t.Run("member cannot create a class", func(t *testing.T) {
		svc, _ := newServiceWithMocks(1500)
		_, err := svc.CreateGroupClass(context.Background(), 7, "member", CreateClassRequest{
			LocationID: 1, StartTime: future, EndTime: futureEnd, MaxCapacity: 10,
		})
		assert.ErrorIs(t, err, ErrAdminOnly)
	})

	t.Run("start in the past rejected", func(t *testing.T) {
		svc, _ := newServiceWithMocks(1500)
		past := time.Now().Add(-time.Hour).Format(time.RFC3339)
		_, err := svc.CreateGroupClass(context.Background(), 1, "admin", CreateClassRequest{
			LocationID: 1, StartTime: past, EndTime: futureEnd, MaxCapacity: 10,
		})
		assert.ErrorIs(t, err, ErrStartNotFuture)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		svc, _ := newServiceWithMocks(1500)
		_, err := svc.CreateGroupClass(context.Background(), 1, "admin", CreateClassRequest{
			LocationID: 1, StartTime: futureEnd, EndTime: future, MaxCapacity: 10,
		})
		assert.ErrorIs(t, err, ErrEndBeforeStart)
	})

	t.Run("admin creates and is seeded as participant", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("CreateGroupClass", mock.Anything, 1, 1, (*int)(nil), mock.Anything, mock.Anything, 10).
			Return(&Reservation{ID: 3, OwnerUserID: 1, IsGroup: true, MaxCapacity: 10}, nil)

		res, err := svc.CreateGroupClass(context.Background(), 1, "admin", CreateClassRequest{
			LocationID: 1, StartTime: future, EndTime: futureEnd, MaxCapacity: 10,
		})

		require.NoError(t, err)
		assert.True(t, res.IsGroup)
	})
}

func TestService_CreateTargeted(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	futureEnd := time.Now().Add(25 * time.Hour).Format(time.RFC3339)

	t.Run("group_class type not allowed here", func(t *testing.T) {
		svc, _ := newServiceWithMocks(1500)
		_, err := svc.CreateTargeted(context.Background(), 7, CreateReservationRequest{
			Type: TypeGroupClass, LocationID: 1, TargetID: 2, StartTime: future, EndTime: futureEnd,
		})
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("busy trainer conflicts", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("CreateTargeted", mock.Anything, 7, TypePersonalTraining, 1, 2, mock.Anything, mock.Anything).
			Return(nil, ErrTargetBusy)

		_, err := svc.CreateTargeted(context.Background(), 7, CreateReservationRequest{
			Type: TypePersonalTraining, LocationID: 1, TargetID: 2, StartTime: future, EndTime: futureEnd,
		})
		assert.ErrorIs(t, err, ErrTargetBusy)
	})

	t.Run("successful reservation notifies the owner", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		start, _ := time.Parse(time.RFC3339, future)
		m.repo.On("CreateTargeted", mock.Anything, 7, TypeSpecializedSpace, 1, 2, mock.Anything, mock.Anything).
			Return(&Reservation{ID: 9, OwnerUserID: 7, StartTime: start}, nil)
		m.users.On("FindByID", mock.Anything, 7).Return(&user.User{ID: 7, Email: "a@b.c", Name: "Ana"}, nil)
		m.notifier.On("Queue", mock.Anything, "a@b.c", "Ana", "reservation_confirmed", mock.Anything).Return(nil)

		res, err := svc.CreateTargeted(context.Background(), 7, CreateReservationRequest{
			Type: TypeSpecializedSpace, LocationID: 1, TargetID: 2, StartTime: future, EndTime: futureEnd,
		})

		require.NoError(t, err)
		assert.Equal(t, 9, res.ID)
		m.notifier.AssertExpectations(t)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("owner cancels", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("GetByID", mock.Anything, 9).Return(&Reservation{ID: 9, OwnerUserID: 7}, nil)
		m.repo.On("Cancel", mock.Anything, 9).Return(nil)
		m.users.On("FindByID", mock.Anything, 7).Return(&user.User{ID: 7, Email: "a@b.c", Name: "Ana"}, nil)
		m.notifier.On("Queue", mock.Anything, "a@b.c", "Ana", "reservation_cancelled", mock.Anything).Return(nil)

		require.NoError(t, svc.Cancel(context.Background(), 7, "member", 9))
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("GetByID", mock.Anything, 9).Return(&Reservation{ID: 9, OwnerUserID: 7}, nil)

		err := svc.Cancel(context.Background(), 8, "member", 9)
		assert.ErrorIs(t, err, ErrNotOwner)
		m.repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("admin cancels anyone's reservation", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("GetByID", mock.Anything, 9).Return(&Reservation{ID: 9, OwnerUserID: 7}, nil)
		m.repo.On("Cancel", mock.Anything, 9).Return(nil)
		m.users.On("FindByID", mock.Anything, 7).Return(&user.User{ID: 7, Email: "a@b.c", Name: "Ana"}, nil)
		m.notifier.On("Queue", mock.Anything, "a@b.c", "Ana", "reservation_cancelled", mock.Anything).Return(nil)

		require.NoError(t, svc.Cancel(context.Background(), 99, "admin", 9))
	})

	t.Run("already cancelled", func(t *testing.T) {
		svc, m := newServiceWithMocks(1500)
		m.repo.On("GetByID", mock.Anything, 9).Return(&Reservation{ID: 9, OwnerUserID: 7}, nil)
		m.repo.On("Cancel", mock.Anything, 9).Return(ErrNotFoundOrAlreadyCanceled)

		err := svc.Cancel(context.Background(), 7, "member", 9)
		assert.ErrorIs(t, err, ErrNotFoundOrAlreadyCanceled)
	})
}
