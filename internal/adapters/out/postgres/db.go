package postgres

import (
	"fmt"

	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/paymentrepo"
	"parcelhub/internal/adapters/out/postgres/riderrepo"
	"parcelhub/internal/adapters/out/postgres/trackingrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a libpq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects with unique violations translated to gorm.ErrDuplicatedKey,
// which the repositories rely on to report conflicts.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&riderrepo.RiderDTO{},
		&paymentrepo.PaymentDTO{},
		&trackingrepo.EntryDTO{},
		&userrepo.UserDTO{},
	)
}
