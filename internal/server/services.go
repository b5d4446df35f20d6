package server

import (
	"time"

	"coderr/internal/config"
	"coderr/internal/modules/auth"
	"coderr/internal/modules/offer"
	"coderr/internal/modules/order"
	"coderr/internal/modules/profile"
	"coderr/internal/modules/review"
	"coderr/internal/modules/stats"
	"coderr/internal/pkg/jwt"
	"coderr/internal/pkg/storage"
	"coderr/internal/repository"

	"gorm.io/gorm"
)

// Services holds the wired application services. cmd/api and cmd/seed share it.
type Services struct {
	Users    *repository.UserRepository
	Tokens   *jwt.Service
	Media    *storage.Media
	Auth     *auth.Service
	Profiles *profile.Service
	Offers   *offer.Service
	Orders   *order.Service
	Reviews  *review.Service
	Stats    *stats.Service
}

func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	media := storage.NewMedia(cfg.MediaRoot, cfg.MediaURL)

	return &Services{
		Users:    userRepo,
		Tokens:   tokens,
		Media:    media,
		Auth:     auth.NewService(userRepo, tokens),
		Profiles: profile.NewService(profileRepo, userRepo, media),
		Offers:   offer.NewService(offerRepo, media),
		Orders:   order.NewService(orderRepo, userRepo),
		Reviews:  review.NewService(reviewRepo, profileRepo),
		Stats:    stats.NewService(reviewRepo, profileRepo, offerRepo),
	}
}

// SetClock makes every service stamp records with now.
func (s *Services) SetClock(now func() time.Time) {
	s.Auth.SetClock(now)
	s.Offers.SetClock(now)
	s.Orders.SetClock(now)
	s.Reviews.SetClock(now)
}
