package borrows

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"librarian/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_borrows_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Patron{}, &entities.Borrow{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createFixtures(t *testing.T, db *gorm.DB) (*entities.Book, *entities.Patron) {
	t.Helper()
	book := &entities.Book{Title: "T", Author: "A", Category: "C", Available: true}
	require.NoError(t, db.Create(book).Error)
	patron := &entities.Patron{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(patron).Error)
	return book, patron
}

func TestRepository_Create(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, patron := createFixtures(t, db)

	borrow, err := repo.Create(book.ID, patron.ID, "2024-01-01")
	require.NoError(t, err)
	assert.NotZero(t, borrow.ID)

	var stored entities.Borrow
	require.NoError(t, db.First(&stored, borrow.ID).Error)
	assert.Equal(t, book.ID, stored.BookID)
	assert.Equal(t, patron.ID, stored.PatronID)
	assert.Equal(t, "2024-01-01", stored.BorrowDate)
	assert.Nil(t, stored.ReturnDate)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, patron := createFixtures(t, db)
	borrow, err := repo.Create(book.ID, patron.ID, "2024-01-01")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(borrow.ID))

	var count int64
	db.Model(&entities.Borrow{}).Count(&count)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, repo.Delete(borrow.ID), ErrNotFound)
}

func TestRepository_Close(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, patron := createFixtures(t, db)
	borrow, err := repo.Create(book.ID, patron.ID, "2024-01-01")
	require.NoError(t, err)

	require.NoError(t, repo.Close(borrow.ID, "2024-02-01"))

	var stored entities.Borrow
	require.NoError(t, db.First(&stored, borrow.ID).Error)
	require.NotNil(t, stored.ReturnDate)
	assert.Equal(t, "2024-02-01", *stored.ReturnDate)

	assert.ErrorIs(t, repo.Close(99999, "2024-02-01"), ErrNotFound)
}

func TestRepository_GetOpen(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, patron := createFixtures(t, db)
	open, err := repo.Create(book.ID, patron.ID, "2024-01-01")
	require.NoError(t, err)
	closed, err := repo.Create(book.ID, patron.ID, "2024-01-02")
	require.NoError(t, err)
	require.NoError(t, repo.Close(closed.ID, "2024-02-01"))

	borrows, err := repo.GetOpen()
	require.NoError(t, err)
	require.Len(t, borrows, 1)
	assert.Equal(t, open.ID, borrows[0].ID)
	assert.Equal(t, book.Title, borrows[0].Book.Title)
	assert.Equal(t, patron.Name, borrows[0].Patron.Name)
}
