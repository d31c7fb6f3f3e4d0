package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	hour := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical windows", hour(0), hour(1), hour(0), hour(1), true},
		{"partial overlap", hour(0), hour(2), hour(1), hour(3), true},
		{"contained window", hour(0), hour(4), hour(1), hour(2), true},
		{"back to back does not overlap", hour(0), hour(1), hour(1), hour(2), false},
		{"disjoint", hour(0), hour(1), hour(2), hour(3), false},
		{"reversed back to back", hour(1), hour(2), hour(0), hour(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestPaymentRequiredError(t *testing.T) {
	var err error = &PaymentRequiredError{FeeCents: 1500}

	var payErr *PaymentRequiredError
	assert.True(t, errors.As(err, &payErr))
	assert.Equal(t, int64(1500), payErr.FeeCents)
	assert.Contains(t, err.Error(), "1500")
}
