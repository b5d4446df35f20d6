package repository

import (
	"context"

	"coderr/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, translate(err, "get profile")
	}
	return &p, nil
}

func (r *ProfileRepository) ListByType(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	var items []domain.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("type = ?", role).
		Order("id ASC").
		Find(&items).Error
	return items, translate(err, "list profiles")
}

func (r *ProfileRepository) CountByType(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("type = ?", role).Count(&n).Error
	return n, translate(err, "count profiles")
}

// IsBusiness reports whether userID has a business profile.
func (r *ProfileRepository) IsBusiness(ctx context.Context, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ? AND type = ?", userID, domain.RoleBusiness).
		Count(&n).Error
	return n > 0, translate(err, "check business profile")
}

// Update applies the non-nil fields of upd. Email lives on the user row and is updated in the same transaction.
func (r *ProfileRepository) Update(ctx context.Context, userID int64, upd domain.ProfileUpdate) error {
	fields := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	set("first_name", upd.FirstName)
	set("last_name", upd.LastName)
	set("location", upd.Location)
	set("tel", upd.Tel)
	set("description", upd.Description)
	set("working_hours", upd.WorkingHours)
	set("file", upd.File)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&domain.Profile{}).Where("user_id = ?", userID).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		if upd.Email != nil {
			res := tx.Model(&domain.User{}).Where("id = ?", userID).Update("email", normalizeEmail(*upd.Email))
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	return translate(err, "update profile")
}
