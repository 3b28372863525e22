// Package audit provides database operations for audit events.
package audit

import (
	"time"

	"gorm.io/gorm"

	"librarian/internal/entities"
)

// Repository handles audit-event database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent appends an audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	return r.db.Create(event).Error
}

// ListRecent returns the newest events, capped at limit.
func (r *Repository) ListRecent(limit int) ([]entities.AuditEvent, error) {
	var events []entities.AuditEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// PurgeOlderThan removes events created before the cutoff and returns how
// many rows were deleted.
func (r *Repository) PurgeOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
