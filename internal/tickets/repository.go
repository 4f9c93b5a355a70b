package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatekeeper/internal/bookings"
	"gatekeeper/internal/checkins"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope is the view of one booking's tickets inside a held booking lock.
// Everything read or written through it belongs to the same transaction;
// the lock is released when the InBookingTx callback returns.
type Scope interface {
	Booking() *bookings.Booking
	// Tickets returns every ticket of the locked booking in issuance order.
	Tickets() []*Ticket
	UpdateTicket(ctx context.Context, ticket *Ticket) error
	AppendCheckIn(ctx context.Context, record *checkins.CheckIn) error
}

// Boundary serializes admission work per booking: the callback runs inside a
// transaction that holds a FOR UPDATE lock on the booking row, so two scans
// against the same booking cannot interleave, while scans against different
// bookings proceed in parallel.
type Boundary interface {
	InBookingTx(ctx context.Context, bookingID uuid.UUID, fn func(scope Scope) error) error
}

type Repository interface {
	Boundary

	FindByToken(ctx context.Context, token string) (*Ticket, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Ticket, error)
	CancelBookingTickets(ctx context.Context, bookingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByToken(ctx context.Context, token string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Ticket, error) {
	var list []*Ticket
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("issue_seq ASC").
		Find(&list).Error

	return list, err
}

// CancelBookingTickets marks every non-cancelled ticket of the booking
// CANCELLED. Invoked by the booking-cancellation collaborator; admission
// never calls it.
func (r *repository) CancelBookingTickets(ctx context.Context, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("booking_id = ?", bookingID).
		Where("status <> ?", StatusCancelled).
		Updates(map[string]interface{}{
			"status":     StatusCancelled,
			"updated_at": time.Now(),
		}).Error
}

// txScope implements Scope over an open transaction.
type txScope struct {
	tx      *gorm.DB
	booking *bookings.Booking
	tickets []*Ticket
}

func (s *txScope) Booking() *bookings.Booking {
	return s.booking
}

func (s *txScope) Tickets() []*Ticket {
	return s.tickets
}

func (s *txScope) UpdateTicket(ctx context.Context, ticket *Ticket) error {
	return s.tx.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"admitted_count": ticket.AdmittedCount,
			"status":         ticket.Status,
			"updated_at":     ticket.UpdatedAt,
		}).Error
}

func (s *txScope) AppendCheckIn(ctx context.Context, record *checkins.CheckIn) error {
	return s.tx.WithContext(ctx).Create(record).Error
}

// InBookingTx runs fn inside a transaction holding an exclusive lock on the
// booking row. The booking and its tickets are read after the lock is
// acquired, so fn always sees the latest committed state. A detected
// serialization conflict is retried once; every other failure rolls back
// with nothing applied.
func (r *repository) InBookingTx(ctx context.Context, bookingID uuid.UUID, fn func(scope Scope) error) error {
	run := func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var booking bookings.Booking
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", bookingID).
				First(&booking).Error

			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				return fmt.Errorf("failed to lock booking: %w", err)
			}

			var list []*Ticket
			if err := tx.
				Where("booking_id = ?", bookingID).
				Order("issue_seq ASC").
				Find(&list).Error; err != nil {
				return fmt.Errorf("failed to load booking tickets: %w", err)
			}

			return fn(&txScope{tx: tx, booking: &booking, tickets: list})
		})
	}

	err := run()
	if isSerializationConflict(err) {
		err = run()
	}
	return err
}

// isSerializationConflict matches the Postgres retryable conflict classes:
// serialization_failure (40001) and deadlock_detected (40P01).
func isSerializationConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
