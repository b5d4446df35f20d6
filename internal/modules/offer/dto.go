package offer

import (
	"encoding/json"
	"reflect"

	"coderr/internal/domain"
	"coderr/internal/pkg/response"

	"github.com/shopspring/decimal"
)

// Price is a tier price in a request body. It accepts a JSON number or a numeric string.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) *Price { return &Price{Decimal: d} }

// UnmarshalJSON reports malformed input as a type error so the binder can name the field.
func (p *Price) UnmarshalJSON(b []byte) error {
	if err := p.Decimal.UnmarshalJSON(b); err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(p.Decimal)}
	}
	return nil
}

type DetailRequest struct {
	Title              string           `json:"title" validate:"required,max=255"`
	Revisions          *int             `json:"revisions" validate:"required,gte=0"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"required,gte=0"`
	Price              *Price           `json:"price" validate:"required"`
	Features           []string         `json:"features"`
	OfferType          domain.OfferType `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

type CreateOfferRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	Details     []DetailRequest `json:"details" validate:"dive"`
}

// DetailPatch updates one tier, located by OfferType. Nil fields stay unchanged.
type DetailPatch struct {
	OfferType          domain.OfferType `json:"offer_type"`
	Title              *string          `json:"title" validate:"omitempty,max=255"`
	Revisions          *int             `json:"revisions" validate:"omitempty,gte=0"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"omitempty,gte=0"`
	Price              *Price           `json:"price"`
	Features           *[]string        `json:"features"`
}

type UpdateOfferRequest struct {
	Title       *string       `json:"title" validate:"omitempty,max=255"`
	Description *string       `json:"description"`
	Details     []DetailPatch `json:"details" validate:"dive"`
}

type DetailLink struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// SummaryResponse is the list and retrieve representation of an offer.
type SummaryResponse struct {
	ID              int64              `json:"id"`
	User            int64              `json:"user"`
	Title           string             `json:"title"`
	Image           *string            `json:"image"`
	Description     string             `json:"description"`
	CreatedAt       response.Timestamp `json:"created_at"`
	UpdatedAt       response.Timestamp `json:"updated_at"`
	Details         []DetailLink       `json:"details"`
	MinPrice        string             `json:"min_price"`
	MinDeliveryTime int                `json:"min_delivery_time"`
	UserDetails     UserDetails        `json:"user_details"`
}

type DetailResponse struct {
	ID                 int64            `json:"id"`
	Title              string           `json:"title"`
	Revisions          int              `json:"revisions"`
	DeliveryTimeInDays int              `json:"delivery_time_in_days"`
	Price              string           `json:"price"`
	Features           []string         `json:"features"`
	OfferType          domain.OfferType `json:"offer_type"`
}

// OfferResponse is returned by create and update with full tier bodies.
type OfferResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Image       *string          `json:"image"`
	Description string           `json:"description"`
	Details     []DetailResponse `json:"details"`
}

func toDetailResponse(d *domain.OfferDetail) DetailResponse {
	features := []string(d.Features)
	if features == nil {
		features = []string{}
	}
	return DetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price.StringFixed(2),
		Features:           features,
		OfferType:          d.OfferType,
	}
}

func toOfferResponse(o *domain.Offer, image *string) OfferResponse {
	details := make([]DetailResponse, 0, len(o.Details))
	for i := range o.Details {
		details = append(details, toDetailResponse(&o.Details[i]))
	}
	return OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Image:       image,
		Description: o.Description,
		Details:     details,
	}
}

func toSummaryResponse(s *domain.OfferSummary, image *string, detailURL func(id int64) string) SummaryResponse {
	links := make([]DetailLink, 0, len(s.Details))
	for _, d := range s.Details {
		links = append(links, DetailLink{ID: d.ID, URL: detailURL(d.ID)})
	}
	return SummaryResponse{
		ID:              s.ID,
		User:            s.UserID,
		Title:           s.Title,
		Image:           image,
		Description:     s.Description,
		CreatedAt:       response.Time(s.CreatedAt),
		UpdatedAt:       response.Time(s.UpdatedAt),
		Details:         links,
		MinPrice:        s.MinPrice.StringFixed(2),
		MinDeliveryTime: s.MinDeliveryTime,
		UserDetails: UserDetails{
			FirstName: s.Owner.FirstName,
			LastName:  s.Owner.LastName,
			Username:  s.Owner.Username,
		},
	}
}
