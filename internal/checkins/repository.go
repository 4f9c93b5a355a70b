package checkins

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts a ledger row outside any scan transaction. Scan-path
	// inserts go through the booking-scoped transaction instead so the
	// ledger row commits atomically with the ticket updates.
	Create(ctx context.Context, record *CheckIn) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]CheckIn, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *CheckIn) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]CheckIn, error) {
	var records []CheckIn
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&records).Error

	return records, err
}
