package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("GET", "/plans", "200", 0.25)
	RecordHTTPRequest("GET", "/plans", "200", 0.1)
	RecordHTTPRequest("POST", "/memberships/purchase", "402", 0.05)

	okCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/plans", "200"))
	paymentCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/memberships/purchase", "402"))

	assert.Equal(t, float64(2), okCount)
	assert.Equal(t, float64(1), paymentCount)
}

func TestMembershipEvents(t *testing.T) {
	MembershipEventsTotal.Reset()

	MembershipEventsTotal.WithLabelValues("purchased").Inc()
	MembershipEventsTotal.WithLabelValues("purchased").Inc()
	MembershipEventsTotal.WithLabelValues("suspended").Inc()

	purchased := testutil.ToFloat64(MembershipEventsTotal.WithLabelValues("purchased"))
	suspended := testutil.ToFloat64(MembershipEventsTotal.WithLabelValues("suspended"))

	assert.Equal(t, float64(2), purchased)
	assert.Equal(t, float64(1), suspended)
}

func TestClassJoins(t *testing.T) {
	ClassJoinsTotal.Reset()

	ClassJoinsTotal.WithLabelValues("success").Inc()
	ClassJoinsTotal.WithLabelValues("payment_required").Inc()
	ClassJoinsTotal.WithLabelValues("full").Inc()
	ClassJoinsTotal.WithLabelValues("full").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(ClassJoinsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(ClassJoinsTotal.WithLabelValues("full")))
}

func TestRecordNotification(t *testing.T) {
	NotificationsSentTotal.Reset()

	RecordNotification("membership_purchased", "sent")
	RecordNotification("membership_purchased", "failed")
	RecordNotification("class_joined", "sent")

	sent := testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("membership_purchased", "sent"))
	failed := testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("membership_purchased", "failed"))

	assert.Equal(t, float64(1), sent)
	assert.Equal(t, float64(1), failed)
}

func TestNotificationQueueLength(t *testing.T) {
	NotificationQueueLength.Set(12)
	assert.Equal(t, float64(12), testutil.ToFloat64(NotificationQueueLength))

	NotificationQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(NotificationQueueLength))
}
