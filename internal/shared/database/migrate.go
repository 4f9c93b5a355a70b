package database

import (
	"gatekeeper/internal/bookings"
	"gatekeeper/internal/checkins"
	"gatekeeper/internal/tickets"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookings.Booking{},
		&tickets.Ticket{},
		&checkins.CheckIn{},
	)
}
