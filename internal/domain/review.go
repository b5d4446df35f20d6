package domain

import "time"

type Review struct {
	ID             int64  `gorm:"primaryKey"`
	BusinessUserID int64  `gorm:"not null;uniqueIndex:idx_reviews_business_reviewer"`
	ReviewerID     int64  `gorm:"not null;uniqueIndex:idx_reviews_business_reviewer;index"`
	Rating         int    `gorm:"not null"`
	Description    string `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Stats struct {
	ReviewCount          int64
	AverageRating        float64
	BusinessProfileCount int64
	OfferCount           int64
}
