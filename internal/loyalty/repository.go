package loyalty

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrActivityNotFound   = errors.New("loyalty activity not found")
	ErrInsufficientPoints = errors.New("insufficient available points")
	ErrTierNotMet         = errors.New("loyalty tier requirement not met")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const profileColumns = `id, user_id, total_points, available_points, tier, created_at, updated_at`
const activityColumns = `id, profile_id, user_id, activity_type, points, activity_date, expires_at, cancelled, expired, created_at`

func (r *repository) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM loyalty_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetOrCreateProfile(ctx context.Context, userID int) (*Profile, error) {
	p, err := r.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	p = &Profile{}
	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO loyalty_profiles (user_id)
		 VALUES ($1)
		 RETURNING `+profileColumns,
		userID,
	).StructScan(p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) lockProfile(ctx context.Context, tx *sqlx.Tx, userID int) (*Profile, error) {
	var p Profile
	err := tx.QueryRowxContext(ctx,
		`SELECT `+profileColumns+`
		 FROM loyalty_profiles
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(&p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowxContext(ctx,
				`INSERT INTO loyalty_profiles (user_id)
				 VALUES ($1)
				 RETURNING `+profileColumns,
				userID,
			).StructScan(&p)
			if err != nil {
				return nil, err
			}
			return &p, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) LogActivity(ctx context.Context, userID int, activityType string, points int, date, expiresAt time.Time) (*Activity, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := r.lockProfile(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	var a Activity
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO loyalty_activities (profile_id, user_id, activity_type, points, activity_date, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+activityColumns,
		p.ID, userID, activityType, points, date, expiresAt,
	).StructScan(&a)
	if err != nil {
		return nil, err
	}

	newTotal := p.TotalPoints + points
	_, err = tx.ExecContext(ctx,
		`UPDATE loyalty_profiles
		 SET total_points = $1, available_points = available_points + $2, tier = $3, updated_at = NOW()
		 WHERE id = $4`,
		newTotal, points, TierForPoints(newTotal), p.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) CancelActivity(ctx context.Context, activityID int) (*Activity, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var a Activity
	err = tx.QueryRowxContext(ctx,
		`SELECT `+activityColumns+`
		 FROM loyalty_activities
		 WHERE id = $1
		 FOR UPDATE`,
		activityID,
	).StructScan(&a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	if a.Cancelled {
		return &a, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE loyalty_activities SET cancelled = TRUE WHERE id = $1`,
		a.ID,
	)
	if err != nil {
		return nil, err
	}

	// Expired points already left available_points; only debit live ones.
	if !a.Expired {
		_, err = tx.ExecContext(ctx,
			`UPDATE loyalty_profiles
			 SET available_points = available_points - $1, updated_at = NOW()
			 WHERE id = $2`,
			a.Points, a.ProfileID,
		)
		if err != nil {
			return nil, err
		}
	}

	a.Cancelled = true
	return &a, tx.Commit()
}

func (r *repository) ListActivities(ctx context.Context, userID, limit, offset int) ([]Activity, error) {
	if limit <= 0 {
		limit = 50
	}

	var activities []Activity
	err := r.db.SelectContext(ctx, &activities, `
		SELECT `+activityColumns+`
		FROM loyalty_activities
		WHERE user_id = $1
		ORDER BY activity_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return activities, err
}

func (r *repository) FindExpirable(ctx context.Context, now time.Time) ([]int, error) {
	var ids []int
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM loyalty_activities
		WHERE expires_at <= $1 AND expired = FALSE
		ORDER BY id
	`, now)
	return ids, err
}

func (r *repository) ExpireActivity(ctx context.Context, activityID int) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var a Activity
	err = tx.QueryRowxContext(ctx,
		`SELECT `+activityColumns+`
		 FROM loyalty_activities
		 WHERE id = $1
		 FOR UPDATE`,
		activityID,
	).StructScan(&a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrActivityNotFound
		}
		return false, err
	}

	if a.Expired {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE loyalty_activities SET expired = TRUE WHERE id = $1`,
		a.ID,
	)
	if err != nil {
		return false, err
	}

	if !a.Cancelled {
		_, err = tx.ExecContext(ctx,
			`UPDATE loyalty_profiles
			 SET available_points = available_points - $1, updated_at = NOW()
			 WHERE id = $2`,
			a.Points, a.ProfileID,
		)
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

func (r *repository) GetReward(ctx context.Context, id int) (*Reward, error) {
	var reward Reward
	err := r.db.GetContext(ctx, &reward, `
		SELECT id, name, points_cost, min_tier, valid_days, active, created_at
		FROM rewards
		WHERE id = $1 AND active = TRUE
	`, id)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *repository) ListRewards(ctx context.Context) ([]Reward, error) {
	var rewards []Reward
	err := r.db.SelectContext(ctx, &rewards, `
		SELECT id, name, points_cost, min_tier, valid_days, active, created_at
		FROM rewards
		WHERE active = TRUE
		ORDER BY points_cost
	`)
	return rewards, err
}

func (r *repository) Redeem(ctx context.Context, userID int, reward *Reward, code string, expiresAt time.Time) (*Redemption, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := r.lockProfile(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if p.AvailablePoints < reward.PointsCost {
		return nil, ErrInsufficientPoints
	}
	if !p.Tier.AtLeast(reward.MinTier) {
		return nil, ErrTierNotMet
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE loyalty_profiles
		 SET available_points = available_points - $1, updated_at = NOW()
		 WHERE id = $2`,
		reward.PointsCost, p.ID,
	)
	if err != nil {
		return nil, err
	}

	var redemption Redemption
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO loyalty_redemptions (profile_id, user_id, reward_id, points_cost, code, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, profile_id, user_id, reward_id, points_cost, code, expires_at, created_at`,
		p.ID, userID, reward.ID, reward.PointsCost, code, expiresAt,
	).StructScan(&redemption)
	if err != nil {
		return nil, err
	}

	return &redemption, tx.Commit()
}

func (r *repository) RecomputeTiers(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE loyalty_profiles
		SET tier = CASE
			WHEN total_points >= 10000 THEN 'diamond'
			WHEN total_points >= 5000 THEN 'platinum'
			WHEN total_points >= 3000 THEN 'gold'
			WHEN total_points >= 1000 THEN 'silver'
			ELSE 'bronze'
		END,
		updated_at = NOW()
		WHERE tier <> CASE
			WHEN total_points >= 10000 THEN 'diamond'
			WHEN total_points >= 5000 THEN 'platinum'
			WHEN total_points >= 3000 THEN 'gold'
			WHEN total_points >= 1000 THEN 'silver'
			ELSE 'bronze'
		END
	`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
