package repository

import (
	"context"
	"time"

	"coderr/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateFromDetail snapshots tier detailID into a new order for customerID.
// The tier lookup and the insert share one transaction.
func (r *OrderRepository) CreateFromDetail(ctx context.Context, detailID, customerID int64, now time.Time) (*domain.Order, error) {
	var order *domain.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var detail domain.OfferDetail
		if err := tx.First(&detail, detailID).Error; err != nil {
			return err
		}

		var offer domain.Offer
		if err := tx.Select("id", "user_id").First(&offer, detail.OfferID).Error; err != nil {
			return err
		}

		// Копия тарифа: дальнейшие изменения оффера заказ не затрагивают
		order = domain.NewOrderFromDetail(detail, customerID, offer.UserID, now)
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, translate(err, "create order")
	}
	return order, nil
}

// ListForUser returns every order where userID is the customer or the business party, newest first.
func (r *OrderRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var items []domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, translate(err, "list orders")
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err, "get order")
	}
	return &o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return translate(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update order status")
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete order")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete order")
	}
	return nil
}

func (r *OrderRepository) CountForBusiness(ctx context.Context, businessID int64, status domain.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("business_user_id = ? AND status = ?", businessID, status).
		Count(&n).Error
	return n, translate(err, "count orders")
}
