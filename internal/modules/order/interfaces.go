package order

import (
	"context"
	"time"

	"coderr/internal/domain"
)

type OrderRepository interface {
	CreateFromDetail(ctx context.Context, detailID, customerID int64, now time.Time) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error
	Delete(ctx context.Context, id int64) error
	CountForBusiness(ctx context.Context, businessID int64, status domain.OrderStatus) (int64, error)
}

type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
