package admission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gatekeeper/internal/bookings"
	"gatekeeper/internal/checkins"
	"gatekeeper/internal/tickets"
	"gatekeeper/pkg/cache"
	"gatekeeper/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	statusCacheKeyPrefix = "gatekeeper:admission:status:"
	statusCacheTTL       = 5 * time.Second
)

// Service is the admission engine surface: one mutating scan operation and
// one read-only status projection.
type Service interface {
	Scan(ctx context.Context, req ScanRequest, staffID *uuid.UUID) (*ScanResponse, error)
	Status(ctx context.Context, token string) (*StatusResponse, error)
}

type service struct {
	tickets  tickets.Repository
	bookings bookings.Repository
	ledger   checkins.Repository
	cache    cache.Service
	producer checkins.EventProducer
	log      *logger.Logger
}

// NewService creates the admission service. cache and producer may be nil;
// scans then run uncached and unpublished but otherwise identically.
func NewService(
	ticketRepo tickets.Repository,
	bookingRepo bookings.Repository,
	ledger checkins.Repository,
	cacheService cache.Service,
	producer checkins.EventProducer,
	log *logger.Logger,
) Service {
	return &service{
		tickets:  ticketRepo,
		bookings: bookingRepo,
		ledger:   ledger,
		cache:    cacheService,
		producer: producer,
		log:      log,
	}
}

// Scan admits persons through the scanned credential. The whole read-
// validate-reconcile-write sequence runs inside the booking-scoped lock, so
// concurrent scans against the same booking serialize and a retry after
// commit fails closed on the already-admitted checks.
func (s *service) Scan(ctx context.Context, req ScanRequest, staffID *uuid.UUID) (*ScanResponse, error) {
	scanned, err := s.tickets.FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newScanError(KindInvalidCredential, "no ticket matches the scanned credential")
		}
		return nil, fmt.Errorf("failed to resolve credential: %w", err)
	}

	var (
		result *Reconciliation
		ledger *checkins.CheckIn
	)

	err = s.tickets.InBookingTx(ctx, scanned.BookingID, func(scope tickets.Scope) error {
		// Re-resolve on the locked snapshot; the unlocked read above is
		// only the routing step.
		var current *tickets.Ticket
		for _, t := range scope.Tickets() {
			if t.ID == scanned.ID {
				current = t
				break
			}
		}
		if current == nil {
			return newScanError(KindInvalidCredential, "ticket disappeared from its booking")
		}

		if scanErr := ValidateScan(current, scope.Booking()); scanErr != nil {
			return scanErr
		}

		rec, scanErr := Reconcile(current, scope.Tickets(), req.requestedPersons())
		if scanErr != nil {
			return scanErr
		}

		for _, t := range rec.Updated {
			if err := scope.UpdateTicket(ctx, t); err != nil {
				return fmt.Errorf("failed to persist ticket %s: %w", t.ID, err)
			}
		}

		entry := &checkins.CheckIn{
			TicketID:       current.ID,
			StaffID:        staffID,
			PersonsEntered: rec.PersonsEntered,
		}
		if err := scope.AppendCheckIn(ctx, entry); err != nil {
			return fmt.Errorf("failed to append check-in record: %w", err)
		}

		result = rec
		ledger = entry
		return nil
	})

	if err != nil {
		var scanErr *ScanError
		if errors.As(err, &scanErr) {
			s.log.LogScanRejected(ctx, req.Token, string(scanErr.Kind))
			return nil, scanErr
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newScanError(KindInvalidCredential, "booking for this credential no longer exists")
		}
		return nil, fmt.Errorf("scan transaction failed: %w", err)
	}

	s.afterCommit(ctx, result, ledger)

	booking, err := s.bookings.GetByID(ctx, result.Scanned.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking after scan: %w", err)
	}

	outcome := OutcomePartial
	if result.Scanned.IsFullyAdmitted() {
		outcome = OutcomeCompleted
	}

	s.log.LogScanAdmitted(ctx, req.Token, result.PersonsEntered, result.Scanned.AdmittedCount, result.Scanned.TotalPersons)

	return &ScanResponse{
		Role:               result.Scanned.Role,
		TotalPersons:       result.Scanned.TotalPersons,
		PreviouslyAdmitted: result.PreviouslyAdmitted,
		NowAdmitted:        result.Scanned.AdmittedCount,
		Remaining:          result.Scanned.Remaining(),
		Status:             outcome,
		Booking:            booking.ToSummary(),
	}, nil
}

// afterCommit handles the best-effort side channels: cache invalidation for
// every touched credential and the Kafka admission event. Neither may fail
// the committed scan.
func (s *service) afterCommit(ctx context.Context, rec *Reconciliation, entry *checkins.CheckIn) {
	if s.cache != nil {
		for _, t := range rec.Updated {
			if err := s.cache.Delete(ctx, statusCacheKeyPrefix+t.Token); err != nil {
				s.log.Warn("failed to invalidate status cache", slog.String("token", t.Token), slog.Any("error", err))
			}
		}
	}

	if s.producer != nil {
		event := &checkins.AdmissionEvent{
			TicketID:       rec.Scanned.ID.String(),
			BookingID:      rec.Scanned.BookingID.String(),
			PersonsEntered: rec.PersonsEntered,
			AdmittedTotal:  rec.Scanned.AdmittedCount,
			AdmittedAt:     entry.CreatedAt,
		}
		if err := s.producer.PublishAdmission(ctx, event); err != nil {
			s.log.Warn("failed to publish admission event", slog.Any("error", err))
		}
	}
}

// Status returns the current admission snapshot and newest-first ledger for
// one credential. Reads go through a short-lived cache that every scan
// invalidates, so snapshots only ever move forward.
func (s *service) Status(ctx context.Context, token string) (*StatusResponse, error) {
	fetch := func() (*StatusResponse, error) {
		return s.loadStatus(ctx, token)
	}

	if s.cache == nil {
		return fetch()
	}

	var resp StatusResponse
	err := s.cache.GetOrSet(ctx, statusCacheKeyPrefix+token, statusCacheTTL, func() (interface{}, error) {
		return fetch()
	}, &resp)
	if err != nil {
		var scanErr *ScanError
		if errors.As(err, &scanErr) {
			return nil, scanErr
		}
		return nil, err
	}
	return &resp, nil
}

func (s *service) loadStatus(ctx context.Context, token string) (*StatusResponse, error) {
	ticket, err := s.tickets.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newScanError(KindInvalidCredential, "no ticket matches the scanned credential")
		}
		return nil, fmt.Errorf("failed to resolve credential: %w", err)
	}

	booking, err := s.bookings.GetByID(ctx, ticket.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	records, err := s.ledger.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-in history: %w", err)
	}

	history := make([]checkins.HistoryEntry, 0, len(records))
	for i := range records {
		history = append(history, records[i].ToHistoryEntry())
	}

	return &StatusResponse{
		Token:         ticket.Token,
		Role:          ticket.Role,
		TotalPersons:  ticket.TotalPersons,
		AdmittedCount: ticket.AdmittedCount,
		Remaining:     ticket.Remaining(),
		Status:        ticket.Status,
		SeatLabel:     ticket.SeatLabel,
		Booking:       booking.ToSummary(),
		History:       history,
	}, nil
}
