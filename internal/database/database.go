package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the cgo-free "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"grandresort/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every entity. Status-event tables
// are migrated alongside their parents so the audit-trail foreign keys exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.Table{},
		&domain.Garden{},
		&domain.MenuCategory{},
		&domain.MenuItem{},
		&domain.Booking{},
		&domain.BookingStatusEvent{},
		&domain.Order{},
		&domain.OrderStatusEvent{},
		&domain.Payment{},
		&domain.PaymentStatusEvent{},
		&domain.Notification{},
	)
}
