package database

import (
	"strings"

	"coderr/internal/domain"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func Connect(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormLogger, TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		zap.L().Info("connecting to postgres")
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		return db, errors.Wrap(err, "open postgres")
	}

	zap.L().Info("using sqlite", zap.String("dsn", dsn))

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	return db, errors.Wrap(err, "open sqlite")
}

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Profile{},
		&domain.Offer{},
		&domain.OfferDetail{},
		&domain.Order{},
		&domain.Review{},
	}
}

func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(Models()...), "auto migrate")
}
