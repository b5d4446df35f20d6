package order

import (
	"coderr/internal/domain"
	"coderr/internal/pkg/response"
)

type CreateOrderRequest struct {
	OfferDetailID *int64 `json:"offer_detail_id" validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status *domain.OrderStatus `json:"status" validate:"required,oneof=in_progress completed cancelled"`
}

type OrderResponse struct {
	ID                 int64              `json:"id"`
	CustomerUser       int64              `json:"customer_user"`
	BusinessUser       int64              `json:"business_user"`
	Title              string             `json:"title"`
	Revisions          int                `json:"revisions"`
	DeliveryTimeInDays int                `json:"delivery_time_in_days"`
	Price              string             `json:"price"`
	Features           []string           `json:"features"`
	OfferType          domain.OfferType   `json:"offer_type"`
	Status             domain.OrderStatus `json:"status"`
	CreatedAt          response.Timestamp `json:"created_at"`
	UpdatedAt          response.Timestamp `json:"updated_at"`
}

type OrderCountResponse struct {
	OrderCount int64 `json:"order_count"`
}

type CompletedOrderCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

func toResponse(o *domain.Order) OrderResponse {
	features := []string(o.Features)
	if features == nil {
		features = []string{}
	}
	return OrderResponse{
		ID:                 o.ID,
		CustomerUser:       o.CustomerUserID,
		BusinessUser:       o.BusinessUserID,
		Title:              o.Title,
		Revisions:          o.Revisions,
		DeliveryTimeInDays: o.DeliveryTimeInDays,
		Price:              o.Price.StringFixed(2),
		Features:           features,
		OfferType:          o.OfferType,
		Status:             o.Status,
		CreatedAt:          response.Time(o.CreatedAt),
		UpdatedAt:          response.Time(o.UpdatedAt),
	}
}
