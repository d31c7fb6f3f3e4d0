package location

import "context"

type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetByID(ctx context.Context, id int) (*Location, error)
	ListActive(ctx context.Context) ([]Location, error)
	Deactivate(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	return s.repo.Create(ctx, req.Name, req.Address, req.City)
}

func (s *service) GetByID(ctx context.Context, id int) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActive(ctx context.Context) ([]Location, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) Deactivate(ctx context.Context, id int) error {
	return s.repo.Deactivate(ctx, id)
}
