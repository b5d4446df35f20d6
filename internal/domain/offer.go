package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OfferType string

const (
	OfferBasic    OfferType = "basic"
	OfferStandard OfferType = "standard"
	OfferPremium  OfferType = "premium"
)

var OfferTypes = []OfferType{OfferBasic, OfferStandard, OfferPremium}

func (t OfferType) Valid() bool {
	return t == OfferBasic || t == OfferStandard || t == OfferPremium
}

type Offer struct {
	ID          int64         `gorm:"primaryKey"`
	UserID      int64         `gorm:"not null;index"`
	Title       string        `gorm:"size:255;not null"`
	Image       *string       `gorm:"size:255"`
	Description string        `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time     `gorm:"index"`
	UpdatedAt   time.Time
	Details     []OfferDetail `gorm:"constraint:OnDelete:CASCADE"`
}

// OfferDetail is one pricing tier of an offer. Each offer has one tier per OfferType.
type OfferDetail struct {
	ID                 int64                       `gorm:"primaryKey"`
	OfferID            int64                       `gorm:"not null;uniqueIndex:idx_offer_details_offer_type"`
	Title              string                      `gorm:"size:255;not null"`
	Revisions          int                         `gorm:"not null;default:0"`
	DeliveryTimeInDays int                         `gorm:"not null;default:0"`
	Price              decimal.Decimal             `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          OfferType                   `gorm:"size:20;not null;uniqueIndex:idx_offer_details_offer_type"`
}

func (o *Offer) DetailByType(t OfferType) *OfferDetail {
	for i := range o.Details {
		if o.Details[i].OfferType == t {
			return &o.Details[i]
		}
	}
	return nil
}

type OwnerDetails struct {
	FirstName string
	LastName  string
	Username  string
}

// OfferSummary is an offer together with the aggregates computed from its tiers.
type OfferSummary struct {
	Offer
	MinPrice        decimal.Decimal
	MinDeliveryTime int
	Owner           OwnerDetails
}

// OfferDetailUpdate is a partial tier update matched by OfferType.
type OfferDetailUpdate struct {
	OfferType          OfferType
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
	Features           []string
	FeaturesSet        bool
}

type OfferUpdate struct {
	Title       *string
	Description *string
	Image       *string
	Details     []OfferDetailUpdate
	UpdatedAt   time.Time
}
