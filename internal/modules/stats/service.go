package stats

import (
	"context"

	"coderr/internal/domain"
)

type ReviewRepository interface {
	RatingSummary(ctx context.Context) (int64, float64, error)
}

type ProfileRepository interface {
	CountByType(ctx context.Context, role domain.Role) (int64, error)
}

type OfferRepository interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	reviews  ReviewRepository
	profiles ProfileRepository
	offers   OfferRepository
}

func NewService(reviews ReviewRepository, profiles ProfileRepository, offers OfferRepository) *Service {
	return &Service{reviews: reviews, profiles: profiles, offers: offers}
}

// BaseInfo computes the platform counters fresh on every call.
func (s *Service) BaseInfo(ctx context.Context) (*domain.Stats, error) {
	count, avg, err := s.reviews.RatingSummary(ctx)
	if err != nil {
		return nil, err
	}
	businesses, err := s.profiles.CountByType(ctx, domain.RoleBusiness)
	if err != nil {
		return nil, err
	}
	offers, err := s.offers.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		ReviewCount:          count,
		AverageRating:        avg,
		BusinessProfileCount: businesses,
		OfferCount:           offers,
	}, nil
}
