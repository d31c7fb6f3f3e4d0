package loyalty

import "time"

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// Points expire 12 months after the activity that earned them.
const ExpiryMonths = 12

var tierRanks = map[Tier]int{
	TierBronze:   0,
	TierSilver:   1,
	TierGold:     2,
	TierPlatinum: 3,
	TierDiamond:  4,
}

// TierForPoints maps lifetime points to a tier. Thresholds are fixed:
// bronze <1000, silver <3000, gold <5000, platinum <10000, diamond above.
func TierForPoints(totalPoints int) Tier {
	switch {
	case totalPoints >= 10000:
		return TierDiamond
	case totalPoints >= 5000:
		return TierPlatinum
	case totalPoints >= 3000:
		return TierGold
	case totalPoints >= 1000:
		return TierSilver
	default:
		return TierBronze
	}
}

func (t Tier) AtLeast(other Tier) bool {
	return tierRanks[t] >= tierRanks[other]
}

type Profile struct {
	ID              int       `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	TotalPoints     int       `db:"total_points" json:"total_points"`
	AvailablePoints int       `db:"available_points" json:"available_points"`
	Tier            Tier      `db:"tier" json:"tier"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type Activity struct {
	ID           int       `db:"id" json:"id"`
	ProfileID    int       `db:"profile_id" json:"profile_id"`
	UserID       int       `db:"user_id" json:"user_id"`
	ActivityType string    `db:"activity_type" json:"activity_type"`
	Points       int       `db:"points" json:"points"`
	ActivityDate time.Time `db:"activity_date" json:"activity_date"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	Cancelled    bool      `db:"cancelled" json:"cancelled"`
	Expired      bool      `db:"expired" json:"expired"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Reward struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	PointsCost int       `db:"points_cost" json:"points_cost"`
	MinTier    Tier      `db:"min_tier" json:"min_tier"`
	ValidDays  int       `db:"valid_days" json:"valid_days"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Redemption struct {
	ID         int       `db:"id" json:"id"`
	ProfileID  int       `db:"profile_id" json:"profile_id"`
	UserID     int       `db:"user_id" json:"user_id"`
	RewardID   int       `db:"reward_id" json:"reward_id"`
	PointsCost int       `db:"points_cost" json:"points_cost"`
	Code       string    `db:"code" json:"code"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type LogActivityRequest struct {
	UserID       int    `json:"user_id" binding:"required"`
	ActivityType string `json:"activity_type" binding:"required"`
	Points       int    `json:"points" binding:"required,min=1"`
}

type RedeemRequest struct {
	RewardID int `json:"reward_id" binding:"required"`
}
