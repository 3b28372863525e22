package entities

import "time"

// Book is a single title in the local collection. Books are never deleted;
// circulation only flips the Available flag.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:100" json:"title"`
	Author    string    `gorm:"not null;size:100" json:"author"`
	Category  string    `gorm:"not null;size:100" json:"category"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Patron struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex;size:100" json:"email"`
	Borrows   []Borrow  `gorm:"foreignKey:PatronID" json:"borrows,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Borrow links one book to one patron for the period between checkout and
// return. Dates are stored as submitted (free-text), matching the form input.
type Borrow struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	BookID     uint    `gorm:"not null;index" json:"book_id"`
	PatronID   uint    `gorm:"not null;index" json:"patron_id"`
	BorrowDate string  `gorm:"not null;size:100" json:"borrow_date"`
	ReturnDate *string `gorm:"size:100" json:"return_date,omitempty"`
	Book       Book    `gorm:"foreignKey:BookID" json:"-"`
	Patron     Patron  `gorm:"foreignKey:PatronID" json:"-"`
}

// User is a registered account. The password is stored exactly as submitted.
// SECURITY DEFECT: no hashing is applied. Nothing reads this field back today
// (there is no login flow), but it must not ship like this if one is added.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null;uniqueIndex;size:100" json:"username"`
	Email     string    `gorm:"not null;uniqueIndex;size:100" json:"email"`
	Password  string    `gorm:"not null;size:100" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditEventType string

const (
	AuditEventBook        AuditEventType = "book"
	AuditEventPatron      AuditEventType = "patron"
	AuditEventCirculation AuditEventType = "circulation"
	AuditEventUser        AuditEventType = "user"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is an append-only record of a mutation, swept past retention
// by the scheduler.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"` // e.g. "book_add", "book_borrow"
	EntityType  string         `gorm:"size:50" json:"entity_type"`
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Description string         `gorm:"size:500" json:"description"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
