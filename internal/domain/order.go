package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	return s == OrderInProgress || s == OrderCompleted || s == OrderCancelled
}

// Order copies the purchased tier. It keeps no reference to the tier row.
type Order struct {
	ID                 int64                       `gorm:"primaryKey"`
	CustomerUserID     int64                       `gorm:"not null;index"`
	BusinessUserID     int64                       `gorm:"not null;index:idx_orders_business_status"`
	Title              string                      `gorm:"size:255;not null"`
	Revisions          int                         `gorm:"not null;default:0"`
	DeliveryTimeInDays int                         `gorm:"not null;default:0"`
	Price              decimal.Decimal             `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          OfferType                   `gorm:"size:20;not null"`
	Status             OrderStatus                 `gorm:"size:20;not null;default:in_progress;index:idx_orders_business_status"`
	CreatedAt          time.Time                   `gorm:"index"`
	UpdatedAt          time.Time
}

// NewOrderFromDetail snapshots a tier into a fresh in-progress order.
func NewOrderFromDetail(d OfferDetail, customerID, businessID int64, now time.Time) *Order {
	features := make([]string, len(d.Features))
	copy(features, d.Features)

	return &Order{
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           datatypes.JSONSlice[string](features),
		OfferType:          d.OfferType,
		Status:             OrderInProgress,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
