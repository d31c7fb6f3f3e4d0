package notify

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"gymcore/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return NewWithClient(rdb, "noreply@gymcore.app", "GymCore")
}

func TestQueue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("notifications", `.*`).SetVal(1)

	svc := newTestService(db)

	err := svc.Queue(ctx, "user@example.com", "User", "membership_purchased", map[string]string{
		"end_date":    "2026-09-01",
		"total_cents": "270000",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("notifications", `.*`).SetErr(assert.AnError)

	svc := newTestService(db)

	err := svc.Queue(ctx, "user@example.com", "User", "class_joined", nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen("notifications").SetVal(7)

	svc := newTestService(db)

	assert.Equal(t, int64(7), svc.QueueLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRender(t *testing.T) {
	tests := []struct {
		template    string
		vars        map[string]string
		wantSubject string
		wantInBody  []string
	}{
		{
			template:    "membership_purchased",
			vars:        map[string]string{"end_date": "2026-09-01", "total_cents": "270000"},
			wantSubject: "Welcome to GymCore!",
			wantInBody:  []string{"2026-09-01", "270000"},
		},
		{
			template:    "membership_suspended",
			vars:        map[string]string{"until": "2026-03-15", "reason": "travel"},
			wantSubject: "Membership Suspended",
			wantInBody:  []string{"2026-03-15", "travel"},
		},
		{
			template:    "reservation_confirmed",
			vars:        map[string]string{"start_time": "2026-03-01T10:00:00Z"},
			wantSubject: "Reservation Confirmed",
			wantInBody:  []string{"2026-03-01T10:00:00Z"},
		},
		{
			template:    "something_unknown",
			wantSubject: "GymCore Update",
			wantInBody:  []string{"update on your account"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			subject, body := Render(tt.template, "Ana", tt.vars)

			assert.Equal(t, tt.wantSubject, subject)
			assert.Contains(t, body, "Ana")
			for _, want := range tt.wantInBody {
				assert.Contains(t, body, want)
			}
		})
	}
}
