package location

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrLocationNotFound = errors.New("location not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, address, city string) (*Location, error) {
	query := `
		INSERT INTO locations (name, address, city)
		VALUES ($1, $2, $3)
		RETURNING id, name, address, city, active, created_at
	`

	var loc Location
	err := r.db.GetContext(ctx, &loc, query, name, address, city)
	if err != nil {
		return nil, err
	}

	return &loc, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Location, error) {
	query := `
		SELECT id, name, address, city, active, created_at
		FROM locations
		WHERE id = $1
	`

	var loc Location
	err := r.db.GetContext(ctx, &loc, query, id)
	if err != nil {
		return nil, err
	}

	return &loc, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Location, error) {
	query := `
		SELECT id, name, address, city, active, created_at
		FROM locations
		WHERE active = TRUE
		ORDER BY name
	`

	var locations []Location
	err := r.db.SelectContext(ctx, &locations, query)
	if err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE locations
		SET active = FALSE
		WHERE id = $1 AND active = TRUE
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}
