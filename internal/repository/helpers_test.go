package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"coderr/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true},
	)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Offer{},
		&domain.OfferDetail{},
		&domain.Order{},
		&domain.Review{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *domain.User {
	t.Helper()

	u := &domain.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	p := &domain.Profile{Type: role, FirstName: strings.ToUpper(username[:1]) + username[1:], LastName: "Test"}
	require.NoError(t, NewUserRepository(db).CreateWithProfile(context.Background(), u, p))
	return u
}

func tiers(prices [3]string, days [3]int) []domain.OfferDetail {
	out := make([]domain.OfferDetail, 3)
	for i, typ := range domain.OfferTypes {
		out[i] = domain.OfferDetail{
			Title:              string(typ) + " tier",
			Revisions:          i,
			DeliveryTimeInDays: days[i],
			Price:              decimal.RequireFromString(prices[i]),
			Features:           []string{"logo", string(typ)},
			OfferType:          typ,
		}
	}
	return out
}

func seedOffer(t *testing.T, db *gorm.DB, ownerID int64, title string, created time.Time, prices [3]string, days [3]int) *domain.Offer {
	t.Helper()

	o := &domain.Offer{
		UserID:      ownerID,
		Title:       title,
		Description: "about " + title,
		CreatedAt:   created,
		UpdatedAt:   created,
		Details:     tiers(prices, days),
	}
	require.NoError(t, NewOfferRepository(db).Create(context.Background(), o))
	return o
}
