// Package books provides database operations for the book collection.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(id)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"librarian/internal/entities"
)

var (
	// ErrNotFound is returned when no book exists with the given ID.
	ErrNotFound = errors.New("book not found")

	// ErrUnavailable is returned by Reserve when the book exists but is
	// already checked out.
	ErrUnavailable = errors.New("book is not available")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book. New books are always available.
func (r *Repository) Create(title, author, category string) (*entities.Book, error) {
	book := &entities.Book{
		Title:     title,
		Author:    author,
		Category:  category,
		Available: true,
	}

	if err := r.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// GetAll returns every book in the collection.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id").Find(&books).Error
	return books, err
}

// GetAvailable returns only the books that can currently be borrowed.
func (r *Repository) GetAvailable() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("available = ?", true).Order("id").Find(&books).Error
	return books, err
}

// GetByID retrieves a book by ID, returning ErrNotFound for missing rows.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Reserve marks a book unavailable, but only if it is currently available.
// The guard lives in the WHERE clause so two concurrent reservations of the
// same book cannot both succeed. Returns ErrNotFound if no such book exists
// and ErrUnavailable if it is already checked out.
func (r *Repository) Reserve(id uint) error {
	result := r.db.Model(&entities.Book{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)
	if result.Error != nil {
		return fmt.Errorf("failed to reserve book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrUnavailable
	}
	return nil
}

// Release marks a book available again after a return.
func (r *Repository) Release(id uint) error {
	result := r.db.Model(&entities.Book{}).
		Where("id = ?", id).
		Update("available", true)
	if result.Error != nil {
		return fmt.Errorf("failed to release book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
