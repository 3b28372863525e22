// Package borrows provides database operations for borrow records.
package borrows

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"librarian/internal/entities"
)

// ErrNotFound is returned when no borrow record exists with the given ID.
var ErrNotFound = errors.New("borrow record not found")

// Repository handles all borrow-record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new borrow record for a checked-out book.
func (r *Repository) Create(bookID, patronID uint, borrowDate string) (*entities.Borrow, error) {
	borrow := &entities.Borrow{
		BookID:     bookID,
		PatronID:   patronID,
		BorrowDate: borrowDate,
	}

	if err := r.db.Create(borrow).Error; err != nil {
		return nil, fmt.Errorf("failed to create borrow record: %w", err)
	}

	return borrow, nil
}

// GetByID retrieves a borrow record by ID, returning ErrNotFound for
// missing rows.
func (r *Repository) GetByID(id uint) (*entities.Borrow, error) {
	var borrow entities.Borrow
	err := r.db.First(&borrow, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// GetAll returns every borrow record, open and closed.
func (r *Repository) GetAll() ([]entities.Borrow, error) {
	var borrows []entities.Borrow
	err := r.db.Order("id").Find(&borrows).Error
	return borrows, err
}

// GetOpen returns borrow records that have not been closed yet, with
// their book and patron loaded for display.
func (r *Repository) GetOpen() ([]entities.Borrow, error) {
	var borrows []entities.Borrow
	err := r.db.Preload("Book").Preload("Patron").
		Where("return_date IS NULL").Order("id").Find(&borrows).Error
	return borrows, err
}

// Delete removes a borrow record outright, leaving no history.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Borrow{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete borrow record %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close marks a borrow record returned by setting its return date, keeping
// the row as circulation history.
func (r *Repository) Close(id uint, returnDate string) error {
	result := r.db.Model(&entities.Borrow{}).
		Where("id = ?", id).
		Update("return_date", returnDate)
	if result.Error != nil {
		return fmt.Errorf("failed to close borrow record %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
