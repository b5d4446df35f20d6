package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"coderr/internal/domain"
	"coderr/internal/pkg/validator"
	"coderr/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) CreateFromDetail(ctx context.Context, detailID, customerID int64, now time.Time) (*domain.Order, error) {
	args := m.Called(ctx, detailID, customerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrders) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *mockOrders) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrders) CountForBusiness(ctx context.Context, businessID int64, status domain.OrderStatus) (int64, error) {
	args := m.Called(ctx, businessID, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var (
	customer = &domain.Caller{UserID: 2, Role: domain.RoleCustomer}
	business = &domain.Caller{UserID: 1, Role: domain.RoleBusiness}
)

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := new(mockOrders)
	orders.On("CreateFromDetail", mock.Anything, int64(10), int64(2), now).
		Return(&domain.Order{ID: 1, CustomerUserID: 2, BusinessUserID: 1, Status: domain.OrderInProgress}, nil)
	orders.On("CreateFromDetail", mock.Anything, int64(99), int64(2), now).Return(nil, repository.ErrNotFound)

	svc := NewService(orders, new(mockUsers))
	svc.SetClock(func() time.Time { return now })

	o, err := svc.Create(context.Background(), customer, CreateOrderRequest{OfferDetailID: ptr(int64(10))})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderInProgress, o.Status)

	_, err = svc.Create(context.Background(), customer, CreateOrderRequest{OfferDetailID: ptr(int64(99))})
	assert.ErrorIs(t, err, ErrDetailNotFound)

	_, err = svc.Create(context.Background(), business, CreateOrderRequest{OfferDetailID: ptr(int64(10))})
	assert.ErrorIs(t, err, ErrNotCustomer)

	_, err = svc.Create(context.Background(), customer, CreateOrderRequest{})
	var fields validator.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "offer_detail_id")
}

func TestService_UpdateStatus(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	orders := new(mockOrders)
	orders.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, CustomerUserID: 2, BusinessUserID: 1}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), domain.OrderCompleted, now).Return(nil)

	svc := NewService(orders, new(mockUsers))
	svc.SetClock(func() time.Time { return now })
	completed := UpdateStatusRequest{Status: ptr(domain.OrderCompleted)}

	_, err := svc.UpdateStatus(context.Background(), business, 404, completed)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), customer, 1, completed)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateStatus(context.Background(), business, 1, UpdateStatusRequest{Status: ptr(domain.OrderStatus("shipped"))})
	var fields validator.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, `"shipped" is not a valid choice.`, fields["status"])

	_, err = svc.UpdateStatus(context.Background(), business, 1, completed)
	require.NoError(t, err)
	orders.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1), domain.OrderCompleted, now)
}

func TestService_Delete_AdminOnly(t *testing.T) {
	orders := new(mockOrders)
	orders.On("Delete", mock.Anything, int64(1)).Return(nil)
	orders.On("Delete", mock.Anything, int64(2)).Return(repository.ErrNotFound)
	svc := NewService(orders, new(mockUsers))

	assert.ErrorIs(t, svc.Delete(context.Background(), business, 1), ErrNotAdmin)

	admin := &domain.Caller{UserID: 9, IsAdmin: true}
	assert.NoError(t, svc.Delete(context.Background(), admin, 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, 2), ErrNotFound)
}

func TestService_Counts(t *testing.T) {
	orders := new(mockOrders)
	orders.On("CountForBusiness", mock.Anything, int64(1), domain.OrderInProgress).Return(int64(3), nil)
	orders.On("CountForBusiness", mock.Anything, int64(1), domain.OrderCompleted).Return(int64(1), nil)
	users := new(mockUsers)
	users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	users.On("Exists", mock.Anything, int64(77)).Return(false, nil)
	svc := NewService(orders, users)

	n, err := svc.CountInProgress(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = svc.CountCompleted(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.CountInProgress(context.Background(), 77)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
