package review

import (
	"context"

	"coderr/internal/domain"
	"coderr/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Exists(ctx context.Context, businessID, reviewerID int64) (bool, error)
	List(ctx context.Context, f repository.ReviewFilters) ([]domain.Review, error)
	Update(ctx context.Context, rv *domain.Review, rating *int, description *string) error
	Delete(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	IsBusiness(ctx context.Context, userID int64) (bool, error)
}
