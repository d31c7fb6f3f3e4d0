package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrClassNotFound             = errors.New("class not found")
	ErrClassStarted              = errors.New("class has already started")
	ErrClassFull                 = errors.New("class is full")
	ErrAlreadyJoined             = errors.New("user is already enrolled in this class")
	ErrClassCancelled            = errors.New("class has been cancelled")
	ErrTargetBusy                = errors.New("target already has an overlapping reservation")
	ErrNotFoundOrAlreadyCanceled = errors.New("reservation not found or already cancelled")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const reservationColumns = `id, owner_user_id, type, target_id, location_id, start_time, end_time, status, is_group, max_capacity, created_at`

func (r *repository) CreateGroupClass(ctx context.Context, ownerID, locationID int, targetID *int, start, end time.Time, maxCapacity int) (*Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var res Reservation
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO reservations (owner_user_id, type, target_id, location_id, start_time, end_time, status, is_group, max_capacity)
		 VALUES ($1, 'group_class', $2, $3, $4, $5, 'confirmed', TRUE, $6)
		 RETURNING `+reservationColumns,
		ownerID, targetID, locationID, start, end, maxCapacity,
	).StructScan(&res)
	if err != nil {
		return nil, err
	}

	// The creator always holds the first slot.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservation_participants (reservation_id, user_id)
		 VALUES ($1, $2)`,
		res.ID, ownerID,
	)
	if err != nil {
		return nil, err
	}

	return &res, tx.Commit()
}

func (r *repository) CreateTargeted(ctx context.Context, ownerID int, rtype Type, locationID, targetID int, start, end time.Time) (*Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Serialize overlap checks per target; otherwise two racing creates
	// could both pass the check.
	_, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock($1)`,
		targetID,
	)
	if err != nil {
		return nil, err
	}

	// Target ids are scoped per type: trainer 5 and space 5 are different
	// resources, so the type is part of the busy check.
	var overlapping bool
	err = tx.QueryRowxContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE target_id = $1
			  AND type = $2
			  AND status = 'confirmed'
			  AND start_time < $4
			  AND $3 < end_time
		)`,
		targetID, rtype, start, end,
	).Scan(&overlapping)
	if err != nil {
		return nil, err
	}
	if overlapping {
		return nil, ErrTargetBusy
	}

	var res Reservation
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO reservations (owner_user_id, type, target_id, location_id, start_time, end_time, status, is_group, max_capacity)
		 VALUES ($1, $2, $3, $4, $5, $6, 'confirmed', FALSE, 1)
		 RETURNING `+reservationColumns,
		ownerID, rtype, targetID, locationID, start, end,
	).StructScan(&res)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservation_participants (reservation_id, user_id)
		 VALUES ($1, $2)`,
		res.ID, ownerID,
	)
	if err != nil {
		return nil, err
	}

	return &res, tx.Commit()
}

func (r *repository) Join(ctx context.Context, reservationID, userID int, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var res Reservation
	err = tx.QueryRowxContext(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations
		 WHERE id = $1 AND is_group = TRUE
		 FOR UPDATE`,
		reservationID,
	).StructScan(&res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClassNotFound
		}
		return err
	}

	if res.Status == StatusCancelled {
		return ErrClassCancelled
	}
	if !res.StartTime.After(now) {
		return ErrClassStarted
	}

	var alreadyJoined bool
	err = tx.QueryRowxContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM reservation_participants
			WHERE reservation_id = $1 AND user_id = $2
		)`,
		reservationID, userID,
	).Scan(&alreadyJoined)
	if err != nil {
		return err
	}
	if alreadyJoined {
		return ErrAlreadyJoined
	}

	var count int
	err = tx.QueryRowxContext(ctx,
		`SELECT COUNT(*) FROM reservation_participants WHERE reservation_id = $1`,
		reservationID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count >= res.MaxCapacity {
		return ErrClassFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservation_participants (reservation_id, user_id)
		 VALUES ($1, $2)`,
		reservationID, userID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reservation, error) {
	var res Reservation
	err := r.db.GetContext(ctx, &res, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) IsParticipant(ctx context.Context, reservationID, userID int) (bool, error) {
	var joined bool
	err := r.db.GetContext(ctx, &joined, `
		SELECT EXISTS(
			SELECT 1 FROM reservation_participants
			WHERE reservation_id = $1 AND user_id = $2
		)
	`, reservationID, userID)
	return joined, err
}

func (r *repository) Cancel(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFoundOrAlreadyCanceled
	}

	return nil
}

func (r *repository) ListParticipants(ctx context.Context, reservationID int) ([]Participant, error) {
	var participants []Participant
	err := r.db.SelectContext(ctx, &participants, `
		SELECT reservation_id, user_id, joined_at
		FROM reservation_participants
		WHERE reservation_id = $1
		ORDER BY joined_at
	`, reservationID)
	return participants, err
}

func (r *repository) CountParticipants(ctx context.Context, reservationID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM reservation_participants WHERE reservation_id = $1
	`, reservationID)
	return count, err
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, `
		SELECT r.id, r.owner_user_id, r.type, r.target_id, r.location_id, r.start_time, r.end_time, r.status, r.is_group, r.max_capacity, r.created_at
		FROM reservations r
		JOIN reservation_participants p ON p.reservation_id = r.id
		WHERE p.user_id = $1
		ORDER BY r.start_time DESC
	`, userID)
	return reservations, err
}

func (r *repository) ListUpcomingClasses(ctx context.Context, locationID int, now time.Time) ([]ClassWithAvailability, error) {
	var classes []ClassWithAvailability
	err := r.db.SelectContext(ctx, &classes, `
		SELECT r.id, r.owner_user_id, r.type, r.target_id, r.location_id, r.start_time, r.end_time, r.status, r.is_group, r.max_capacity, r.created_at,
		       COUNT(p.user_id) AS participant_count
		FROM reservations r
		LEFT JOIN reservation_participants p ON p.reservation_id = r.id
		WHERE r.location_id = $1
		  AND r.is_group = TRUE
		  AND r.status = 'confirmed'
		  AND r.start_time > $2
		GROUP BY r.id
		ORDER BY r.start_time
	`, locationID, now)
	if err != nil {
		return nil, err
	}

	for i := range classes {
		classes[i].Available = classes[i].MaxCapacity - classes[i].ParticipantCount
		classes[i].IsFull = classes[i].Available <= 0
	}

	return classes, nil
}
