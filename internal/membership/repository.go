package membership

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const membershipColumns = `id, user_id, plan_id, start_date, end_date, status, suspension_start, suspension_end, suspension_reason, created_at, updated_at`

func (r *repository) Create(ctx context.Context, userID, planID int, startDate, endDate time.Time) (*Membership, error) {
	query := `
		INSERT INTO memberships (user_id, plan_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING ` + membershipColumns

	var m Membership
	err := r.db.GetContext(ctx, &m, query, userID, planID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetActiveForUser(ctx context.Context, userID int) (*Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1 AND status = 'active'
		ORDER BY end_date DESC
		LIMIT 1
	`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, userID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var memberships []Membership
	err := r.db.SelectContext(ctx, &memberships, query, userID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) UpdateLifecycle(ctx context.Context, id int, apply func(*Membership) error) (*Membership, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var m Membership
	err = tx.QueryRowxContext(ctx,
		`SELECT `+membershipColumns+`
		 FROM memberships
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	).StructScan(&m)
	if err != nil {
		return nil, err
	}

	if err := apply(&m); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE memberships
		 SET end_date = $1,
		     status = $2,
		     suspension_start = $3,
		     suspension_end = $4,
		     suspension_reason = $5,
		     updated_at = NOW()
		 WHERE id = $6`,
		m.EndDate, m.Status, m.SuspensionStart, m.SuspensionEnd, m.SuspensionReason, m.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindSuspensionsEnding(ctx context.Context, before time.Time) ([]int, error) {
	var ids []int
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM memberships
		WHERE status = 'suspended' AND suspension_end < $1
		ORDER BY id
	`, before)
	return ids, err
}

func (r *repository) FindExpiring(ctx context.Context, before time.Time) ([]int, error) {
	var ids []int
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM memberships
		WHERE status = 'active' AND end_date < $1
		ORDER BY id
	`, before)
	return ids, err
}

func (r *repository) GetPlan(ctx context.Context, id int) (*Plan, error) {
	var p Plan
	err := r.db.GetContext(ctx, &p, `
		SELECT id, name, description, base_price_cents, active, created_at
		FROM plans
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, `
		SELECT id, name, description, base_price_cents, active, created_at
		FROM plans
		WHERE active = TRUE
		ORDER BY base_price_cents
	`)
	return plans, err
}
