package repository

import (
	"context"
	"math"

	"coderr/internal/domain"

	"gorm.io/gorm"
)

type ReviewFilters struct {
	BusinessUserID *int64
	ReviewerID     *int64
	Ordering       string
}

var reviewOrderings = map[string]string{
	"updated_at":  "updated_at ASC, id ASC",
	"-updated_at": "updated_at DESC, id DESC",
	"rating":      "rating ASC, id ASC",
	"-rating":     "rating DESC, id DESC",
}

const defaultReviewOrdering = "-updated_at"

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return translate(r.db.WithContext(ctx).Create(rv).Error, "create review")
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, translate(err, "get review")
	}
	return &rv, nil
}

func (r *ReviewRepository) Exists(ctx context.Context, businessID, reviewerID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessID, reviewerID).
		Count(&n).Error
	return n > 0, translate(err, "check review exists")
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilters) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{})
	if f.BusinessUserID != nil {
		q = q.Where("business_user_id = ?", *f.BusinessUserID)
	}
	if f.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *f.ReviewerID)
	}

	order, ok := reviewOrderings[f.Ordering]
	if !ok {
		order = reviewOrderings[defaultReviewOrdering]
	}

	var items []domain.Review
	err := q.Order(order).Find(&items).Error
	return items, translate(err, "list reviews")
}

// Update writes rating and/or description. Nil leaves the column unchanged.
func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review, rating *int, description *string) error {
	fields := map[string]any{"updated_at": rv.UpdatedAt}
	if rating != nil {
		fields["rating"] = *rating
		rv.Rating = *rating
	}
	if description != nil {
		fields["description"] = *description
		rv.Description = *description
	}

	res := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", rv.ID).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "update review")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update review")
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete review")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete review")
	}
	return nil
}

// RatingSummary returns the review count and the average rating rounded to one decimal.
// The average is 0 when there are no reviews.
func (r *ReviewRepository) RatingSummary(ctx context.Context) (int64, float64, error) {
	var row struct {
		Total     int64
		AvgRating *float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COUNT(*) AS total, CAST(AVG(rating) AS FLOAT) AS avg_rating").
		Scan(&row).Error
	if err != nil {
		return 0, 0, translate(err, "rating summary")
	}
	if row.AvgRating == nil {
		return row.Total, 0, nil
	}
	return row.Total, math.Round(*row.AvgRating*10) / 10, nil
}
