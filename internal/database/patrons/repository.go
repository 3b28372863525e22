// Package patrons provides database operations for library patrons.
package patrons

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"librarian/internal/entities"
)

// ErrNotFound is returned when no patron exists with the given ID.
var ErrNotFound = errors.New("patron not found")

// Repository handles all patron database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new patrons repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new patron. Email uniqueness is enforced at the column
// level; a duplicate surfaces as a database error.
func (r *Repository) Create(name, email string) (*entities.Patron, error) {
	patron := &entities.Patron{
		Name:  name,
		Email: email,
	}

	if err := r.db.Create(patron).Error; err != nil {
		return nil, fmt.Errorf("failed to create patron: %w", err)
	}

	return patron, nil
}

// GetAll returns every registered patron.
func (r *Repository) GetAll() ([]entities.Patron, error) {
	var patrons []entities.Patron
	err := r.db.Order("id").Find(&patrons).Error
	return patrons, err
}

// GetByID retrieves a patron by ID, returning ErrNotFound for missing rows.
func (r *Repository) GetByID(id uint) (*entities.Patron, error) {
	var patron entities.Patron
	err := r.db.First(&patron, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patron, nil
}

// GetByEmail retrieves a patron by email address.
func (r *Repository) GetByEmail(email string) (*entities.Patron, error) {
	var patron entities.Patron
	err := r.db.Where("email = ?", email).First(&patron).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patron, nil
}
