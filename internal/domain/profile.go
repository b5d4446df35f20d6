package domain

import "time"

type Profile struct {
	ID           int64   `gorm:"primaryKey"`
	UserID       int64   `gorm:"not null;uniqueIndex"`
	User         User    `gorm:"constraint:OnDelete:CASCADE"`
	FirstName    string  `gorm:"size:150;not null;default:''"`
	LastName     string  `gorm:"size:150;not null;default:''"`
	Location     string  `gorm:"size:255;not null;default:''"`
	Tel          string  `gorm:"size:50;not null;default:''"`
	Description  string  `gorm:"type:text;not null;default:''"`
	WorkingHours string  `gorm:"size:100;not null;default:''"`
	Type         Role    `gorm:"size:20;not null;default:customer;index"`
	File         *string `gorm:"size:255"`
	CreatedAt    time.Time
}

// ProfileUpdate carries the owner-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Location     *string
	Tel          *string
	Description  *string
	WorkingHours *string
	Email        *string
	File         *string
}
