package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TicketCanceller marks every ticket of a booking CANCELLED. Implemented by
// the tickets repository; declared here to avoid a circular dependency.
type TicketCanceller interface {
	CancelBookingTickets(ctx context.Context, bookingID uuid.UUID) error
}

// Service covers the booking-side writes the admission engine performs on
// behalf of external collaborators: observing a booking and cancelling it
// (payment refunds, fraud holds) together with its tickets.
type Service interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
}

type service struct {
	repo    Repository
	tickets TicketCanceller
}

func NewService(repo Repository, tickets TicketCanceller) Service {
	return &service{repo: repo, tickets: tickets}
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CancelBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if !Status(booking.Status).CanBeCancelled() {
		return nil, fmt.Errorf("booking %s cannot be cancelled from status %s", id, booking.Status)
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled, &now); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	// Cancelled tickets stop admitting immediately; the ticket rows carry
	// the terminal status so a later scan fails closed even if the booking
	// read were stale.
	if err := s.tickets.CancelBookingTickets(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to cancel booking tickets: %w", err)
	}

	booking.Cancel()
	return booking, nil
}
