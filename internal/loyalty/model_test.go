package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   Tier
	}{
		{0, TierBronze},
		{999, TierBronze},
		{1000, TierSilver},
		{2999, TierSilver},
		{3000, TierGold},
		{4999, TierGold},
		{5000, TierPlatinum},
		{9999, TierPlatinum},
		{10000, TierDiamond},
		{250000, TierDiamond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForPoints(tt.points), "points %d", tt.points)
	}
}

func TestTier_AtLeast(t *testing.T) {
	assert.True(t, TierDiamond.AtLeast(TierBronze))
	assert.True(t, TierGold.AtLeast(TierGold))
	assert.True(t, TierSilver.AtLeast(TierBronze))
	assert.False(t, TierBronze.AtLeast(TierSilver))
	assert.False(t, TierPlatinum.AtLeast(TierDiamond))
}
