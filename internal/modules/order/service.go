package order

import (
	"context"
	"errors"
	"time"

	"coderr/internal/domain"
	"coderr/internal/pkg/validator"
	"coderr/internal/repository"
)

type Service struct {
	orders OrderRepository
	users  UserRepository
	now    func() time.Time
}

func NewService(orders OrderRepository, users UserRepository) *Service {
	return &Service{
		orders: orders,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) { s.now = now }

// List returns the orders where the caller is either party.
func (s *Service) List(ctx context.Context, caller *domain.Caller) ([]domain.Order, error) {
	return s.orders.ListForUser(ctx, caller.UserID)
}

// Create snapshots the referenced tier into a new in-progress order for a customer caller.
func (s *Service) Create(ctx context.Context, caller *domain.Caller, req CreateOrderRequest) (*domain.Order, error) {
	if !caller.IsCustomer() {
		return nil, ErrNotCustomer
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, errs
	}

	o, err := s.orders.CreateFromDetail(ctx, *req.OfferDetailID, caller.UserID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}
	return o, nil
}

// UpdateStatus is reserved for the business party of the order.
func (s *Service) UpdateStatus(ctx context.Context, caller *domain.Caller, id int64, req UpdateStatusRequest) (*domain.Order, error) {
	o, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller == nil || caller.UserID != o.BusinessUserID {
		return nil, ErrForbidden
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, errs
	}

	if err := s.orders.UpdateStatus(ctx, id, *req.Status, s.now()); err != nil {
		return nil, mapNotFound(err)
	}
	return s.get(ctx, id)
}

// Delete is restricted to platform administrators.
func (s *Service) Delete(ctx context.Context, caller *domain.Caller, id int64) error {
	if caller == nil || !caller.IsAdmin {
		return ErrNotAdmin
	}
	return mapNotFound(s.orders.Delete(ctx, id))
}

func (s *Service) CountInProgress(ctx context.Context, businessID int64) (int64, error) {
	return s.count(ctx, businessID, domain.OrderInProgress)
}

func (s *Service) CountCompleted(ctx context.Context, businessID int64) (int64, error) {
	return s.count(ctx, businessID, domain.OrderCompleted)
}

func (s *Service) count(ctx context.Context, businessID int64, status domain.OrderStatus) (int64, error) {
	ok, err := s.users.Exists(ctx, businessID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrBusinessNotFound
	}
	return s.orders.CountForBusiness(ctx, businessID, status)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return o, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
