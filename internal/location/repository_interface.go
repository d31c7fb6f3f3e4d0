package location

import "context"

type Repository interface {
	Create(ctx context.Context, name, address, city string) (*Location, error)
	GetByID(ctx context.Context, id int) (*Location, error)
	ListActive(ctx context.Context) ([]Location, error)
	Deactivate(ctx context.Context, id int) error
}
