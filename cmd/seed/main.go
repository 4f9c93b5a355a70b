package main

import (
	"fmt"
	"log"

	"gatekeeper/internal/bookings"
	"gatekeeper/internal/shared/config"
	"gatekeeper/internal/shared/database"
	"gatekeeper/internal/tickets"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Gatekeeper database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding demo bookings and tickets...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"check_ins",
		"tickets",
		"bookings",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll creates one confirmed group booking with four individual children,
// one standalone individual booking, and one pending booking for testing the
// booking-state rejections.
func (s *Seeder) SeedAll() error {
	if err := s.seedGroupBooking(); err != nil {
		return err
	}
	if err := s.seedIndividualBooking(); err != nil {
		return err
	}
	return s.seedPendingBooking()
}

func (s *Seeder) seedGroupBooking() error {
	db := s.db.GetPostgreSQL()

	booking := &bookings.Booking{
		Reference: "BK-GROUP-0001",
		EventName: "Riverside Open Air 2026",
		Status:    string(bookings.StatusConfirmed),
	}
	if err := db.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create group booking: %w", err)
	}

	group := &tickets.Ticket{
		Token:        "GRP-" + uuid.New().String(),
		BookingID:    booking.ID,
		Role:         string(tickets.RoleGroup),
		TotalPersons: 4,
		Status:       string(tickets.StatusValid),
		IssueSeq:     0,
	}
	if err := db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group ticket: %w", err)
	}

	for i := 1; i <= 4; i++ {
		child := &tickets.Ticket{
			Token:        "IND-" + uuid.New().String(),
			BookingID:    booking.ID,
			GroupID:      &group.ID,
			Role:         string(tickets.RoleIndividual),
			TotalPersons: 1,
			Status:       string(tickets.StatusValid),
			SeatLabel:    fmt.Sprintf("A-%d", i),
			IssueSeq:     i,
		}
		if err := db.Create(child).Error; err != nil {
			return fmt.Errorf("failed to create child ticket %d: %w", i, err)
		}
	}

	fmt.Printf("  group booking %s: master token %s + 4 children\n", booking.Reference, group.Token)
	return nil
}

func (s *Seeder) seedIndividualBooking() error {
	db := s.db.GetPostgreSQL()

	booking := &bookings.Booking{
		Reference: "BK-SOLO-0001",
		EventName: "Riverside Open Air 2026",
		Status:    string(bookings.StatusConfirmed),
	}
	if err := db.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create solo booking: %w", err)
	}

	ticket := &tickets.Ticket{
		Token:        "IND-" + uuid.New().String(),
		BookingID:    booking.ID,
		Role:         string(tickets.RoleIndividual),
		TotalPersons: 1,
		Status:       string(tickets.StatusValid),
		SeatLabel:    "B-7",
		IssueSeq:     0,
	}
	if err := db.Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to create solo ticket: %w", err)
	}

	fmt.Printf("  solo booking %s: token %s\n", booking.Reference, ticket.Token)
	return nil
}

func (s *Seeder) seedPendingBooking() error {
	db := s.db.GetPostgreSQL()

	booking := &bookings.Booking{
		Reference: "BK-PEND-0001",
		EventName: "Riverside Open Air 2026",
		Status:    string(bookings.StatusPending),
	}
	if err := db.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create pending booking: %w", err)
	}

	ticket := &tickets.Ticket{
		Token:        "IND-" + uuid.New().String(),
		BookingID:    booking.ID,
		Role:         string(tickets.RoleIndividual),
		TotalPersons: 1,
		Status:       string(tickets.StatusValid),
		SeatLabel:    "C-2",
		IssueSeq:     0,
	}
	if err := db.Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to create pending ticket: %w", err)
	}

	fmt.Printf("  pending booking %s: token %s (should reject with BOOKING_NOT_CONFIRMED)\n", booking.Reference, ticket.Token)
	return nil
}
