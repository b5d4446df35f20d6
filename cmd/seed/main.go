package main

import (
	"context"
	"fmt"
	"log"

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/modules/auth"
	"coderr/internal/modules/offer"
	"coderr/internal/modules/order"
	"coderr/internal/modules/review"
	"coderr/internal/pkg/logger"
	"coderr/internal/server"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const demoPassword = "asdasd"

type seeded struct {
	caller *domain.Caller
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, database.NewGormLogger(lg, false))
	if err != nil {
		lg.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	lg.Info("cleaning old data")
	if err := clean(db); err != nil {
		lg.Fatal("cleanup failed", zap.Error(err))
	}

	ctx := context.Background()
	svc := server.NewServices(db, cfg)

	// ================== USERS ==================
	admin := mustRegister(ctx, svc, lg, "admin", domain.RoleCustomer)
	if err := db.Model(&domain.User{}).Where("id = ?", admin.caller.UserID).Update("is_admin", true).Error; err != nil {
		lg.Fatal("promote admin failed", zap.Error(err))
	}

	businesses := []seeded{
		mustRegister(ctx, svc, lg, "andrey", domain.RoleBusiness),
		mustRegister(ctx, svc, lg, "studio_nord", domain.RoleBusiness),
	}
	customers := []seeded{
		mustRegister(ctx, svc, lg, "asel", domain.RoleCustomer),
		mustRegister(ctx, svc, lg, "bekzat", domain.RoleCustomer),
	}

	// ================== OFFERS ==================
	titles := []string{"Website design", "Logo and brand kit", "Product photography"}
	var details []int64
	for i, title := range titles {
		owner := businesses[i%len(businesses)]
		o, err := svc.Offers.Create(ctx, owner.caller, demoOffer(title, int64(i+1)), nil)
		if err != nil {
			lg.Fatal("create offer failed", zap.String("title", title), zap.Error(err))
		}
		details = append(details, o.Details[0].ID, o.Details[2].ID)
	}
	lg.Info("offers created", zap.Int("count", len(titles)))

	// ================== ORDERS ==================
	for i, detailID := range details {
		c := customers[i%len(customers)]
		o, err := svc.Orders.Create(ctx, c.caller, order.CreateOrderRequest{OfferDetailID: &detailID})
		if err != nil {
			lg.Fatal("create order failed", zap.Error(err))
		}
		if i%2 == 1 {
			status := domain.OrderCompleted
			biz := &domain.Caller{UserID: o.BusinessUserID, Role: domain.RoleBusiness}
			if _, err := svc.Orders.UpdateStatus(ctx, biz, o.ID, order.UpdateStatusRequest{Status: &status}); err != nil {
				lg.Fatal("complete order failed", zap.Error(err))
			}
		}
	}
	lg.Info("orders created", zap.Int("count", len(details)))

	// ================== REVIEWS ==================
	for i, c := range customers {
		for j, b := range businesses {
			rating := 3 + (i+j)%3
			_, err := svc.Reviews.Create(ctx, c.caller, review.CreateReviewRequest{
				BusinessUser: &b.caller.UserID,
				Rating:       &rating,
				Description:  fmt.Sprintf("Worked with %s, rating %d", b.caller.Username, rating),
			})
			if err != nil {
				lg.Fatal("create review failed", zap.Error(err))
			}
		}
	}

	stats, err := svc.Stats.BaseInfo(ctx)
	if err != nil {
		lg.Fatal("stats failed", zap.Error(err))
	}
	lg.Info("seed complete",
		zap.Int64("reviews", stats.ReviewCount),
		zap.Float64("average_rating", stats.AverageRating),
		zap.Int64("business_profiles", stats.BusinessProfileCount),
		zap.Int64("offers", stats.OfferCount),
		zap.String("password", demoPassword),
	)
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"reviews", "orders", "offer_details", "offers", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func mustRegister(ctx context.Context, svc *server.Services, lg *zap.Logger, username string, role domain.Role) seeded {
	res, err := svc.Auth.Register(ctx, auth.RegisterRequest{
		Username:         username,
		Email:            username + "@coderr.dev",
		Password:         demoPassword,
		RepeatedPassword: demoPassword,
		Type:             role,
	})
	if err != nil {
		lg.Fatal("register failed", zap.String("username", username), zap.Error(err))
	}
	lg.Info("user created", zap.String("username", username), zap.String("type", string(role)))

	return seeded{caller: &domain.Caller{UserID: res.UserID, Username: res.Username, Role: role}}
}

func demoOffer(title string, scale int64) offer.CreateOfferRequest {
	tier := func(t domain.OfferType, price int64, days, revisions int, features ...string) offer.DetailRequest {
		return offer.DetailRequest{
			Title:              title + " " + string(t),
			Revisions:          &revisions,
			DeliveryTimeInDays: &days,
			Price:              offer.NewPrice(decimal.NewFromInt(price * scale)),
			Features:           features,
			OfferType:          t,
		}
	}

	return offer.CreateOfferRequest{
		Title:       title,
		Description: "Demo offer: " + title,
		Details: []offer.DetailRequest{
			tier(domain.OfferBasic, 100, 7, 1, "Draft"),
			tier(domain.OfferStandard, 200, 5, 3, "Draft", "Source files"),
			tier(domain.OfferPremium, 500, 3, 5, "Draft", "Source files", "Priority support"),
		},
	}
}
