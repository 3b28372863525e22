// Package audit records mutations as append-only events and optionally
// dumps raw upstream payloads to disk for later inspection.
package audit

import (
	"log"

	"librarian/internal/database/audit"
	"librarian/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
// Audit failures never interfere with the request that triggered them.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogBookAdded records a book creation.
func (s *Service) LogBookAdded(bookID uint, title string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventBook,
		Action:      "book_add",
		EntityType:  "book",
		EntityID:    &bookID,
		Description: "Added book: " + title,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogPatronAdded records a patron registration.
func (s *Service) LogPatronAdded(patronID uint, name string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventPatron,
		Action:      "patron_add",
		EntityType:  "patron",
		EntityID:    &patronID,
		Description: "Added patron: " + name,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogBorrow records a checkout attempt.
func (s *Service) LogBorrow(bookID uint, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCirculation,
		Action:      "book_borrow",
		EntityType:  "book",
		EntityID:    &bookID,
		Description: "Borrowed book",
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogReturn records a return attempt.
func (s *Service) LogReturn(borrowID uint, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCirculation,
		Action:      "book_return",
		EntityType:  "borrow",
		EntityID:    &borrowID,
		Description: "Returned book",
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogRegistration records a user registration.
func (s *Service) LogRegistration(userID uint, username string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventUser,
		Action:      "user_register",
		EntityType:  "user",
		EntityID:    &userID,
		Description: "Registered user: " + username,
		Status:      entities.AuditStatusSuccess,
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
