package review

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coderr/internal/domain"
	"coderr/internal/pkg/validator"
	"coderr/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	profiles ProfileRepository
	now      func() time.Time
}

func NewService(reviews ReviewRepository, profiles ProfileRepository) *Service {
	return &Service{
		reviews:  reviews,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) { s.now = now }

// ParseFilters reads business_user_id, reviewer_id and ordering from the query.
func ParseFilters(q url.Values) (repository.ReviewFilters, error) {
	var f repository.ReviewFilters
	errs := validator.FieldErrors{}

	parse := func(name string) *int64 {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return nil
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs[name] = msgInvalidValue
			return nil
		}
		return &id
	}
	f.BusinessUserID = parse("business_user_id")
	f.ReviewerID = parse("reviewer_id")
	f.Ordering = q.Get("ordering")

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, f repository.ReviewFilters) ([]domain.Review, error) {
	return s.reviews.List(ctx, f)
}

// Create records a customer's single review of a business user.
func (s *Service) Create(ctx context.Context, caller *domain.Caller, req CreateReviewRequest) (*domain.Review, error) {
	if !caller.IsCustomer() {
		return nil, ErrNotCustomer
	}

	errs := validator.FieldErrors{}
	if req.BusinessUser == nil {
		errs["business_user"] = msgRequired
	}
	if req.Rating == nil {
		errs["rating"] = msgRequired
	} else if !validRating(*req.Rating) {
		errs["rating"] = msgRatingRange
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Отзыв можно оставить только бизнес-пользователю
	ok, err := s.profiles.IsBusiness(ctx, *req.BusinessUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validator.Field("business_user", msgNotBusinessUser)
	}

	exists, err := s.reviews.Exists(ctx, *req.BusinessUser, caller.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validator.Field(nonFieldErrors, msgAlreadyReviewed)
	}

	now := s.now()
	rv := &domain.Review{
		BusinessUserID: *req.BusinessUser,
		ReviewerID:     caller.UserID,
		Rating:         *req.Rating,
		Description:    req.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		// Гонка: уникальный индекс (business_user_id, reviewer_id)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validator.Field(nonFieldErrors, msgAlreadyReviewed)
		}
		return nil, err
	}
	return rv, nil
}

// Update is limited to the reviewer. Missing reviews are reported before ownership.
func (s *Service) Update(ctx context.Context, caller *domain.Caller, id int64, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil && !validRating(*req.Rating) {
		return nil, validator.Field("rating", msgRatingRange)
	}

	rv.UpdatedAt = s.now()
	if err := s.reviews.Update(ctx, rv, req.Rating, req.Description); err != nil {
		return nil, mapNotFound(err)
	}
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, caller *domain.Caller, id int64) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}
	return mapNotFound(s.reviews.Delete(ctx, id))
}

func (s *Service) owned(ctx context.Context, caller *domain.Caller, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if caller == nil || caller.UserID != rv.ReviewerID {
		return nil, ErrForbidden
	}
	return rv, nil
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
