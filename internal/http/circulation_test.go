package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/database"
	"librarian/internal/database/books"
	"librarian/internal/database/borrows"
	"librarian/internal/database/patrons"
	"librarian/internal/entities"
)

func setupCirculationTest(t *testing.T, keepHistory bool) (*database.Database, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_circulation_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	controller := NewCirculationController(
		books.NewRepository(db.DB),
		patrons.NewRepository(db.DB),
		borrows.NewRepository(db.DB),
		nil,
		nil,
		keepHistory,
	)

	router := gin.New()
	router.POST("/borrow_book", controller.BorrowBook)
	router.POST("/return_book/:id", controller.ReturnBook)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, router, cleanup
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestCirculation_BorrowAndReturn(t *testing.T) {
	db, router, cleanup := setupCirculationTest(t, false)
	defer cleanup()

	book := &entities.Book{Title: "T", Author: "A", Category: "C", Available: true}
	require.NoError(t, db.DB.Create(book).Error)
	patron := &entities.Patron{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.DB.Create(patron).Error)

	// Borrow flips availability and creates exactly one record
	w := postForm(router, "/borrow_book", url.Values{
		"book_id":     {"1"},
		"patron_id":   {"1"},
		"borrow_date": {"2024-01-01"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var stored entities.Book
	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.False(t, stored.Available)

	var borrowRows []entities.Borrow
	require.NoError(t, db.DB.Find(&borrowRows).Error)
	require.Len(t, borrowRows, 1)
	assert.Equal(t, book.ID, borrowRows[0].BookID)
	assert.Equal(t, patron.ID, borrowRows[0].PatronID)
	assert.Equal(t, "2024-01-01", borrowRows[0].BorrowDate)

	// Return restores availability and removes the record
	w = postForm(router, "/return_book/1", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)

	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.True(t, stored.Available)

	var count int64
	db.DB.Model(&entities.Borrow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCirculation_BorrowUnavailableBook(t *testing.T) {
	db, router, cleanup := setupCirculationTest(t, false)
	defer cleanup()

	book := &entities.Book{Title: "T", Author: "A", Category: "C", Available: false}
	require.NoError(t, db.DB.Create(book).Error)
	patron := &entities.Patron{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.DB.Create(patron).Error)

	w := postForm(router, "/borrow_book", url.Values{
		"book_id":     {"1"},
		"patron_id":   {"1"},
		"borrow_date": {"2024-01-01"},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	// No borrow record, no state change
	var count int64
	db.DB.Model(&entities.Borrow{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var stored entities.Book
	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.False(t, stored.Available)
}

func TestCirculation_BorrowUnknownBook(t *testing.T) {
	db, router, cleanup := setupCirculationTest(t, false)
	defer cleanup()

	w := postForm(router, "/borrow_book", url.Values{
		"book_id":     {"42"},
		"patron_id":   {"1"},
		"borrow_date": {"2024-01-01"},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	var count int64
	db.DB.Model(&entities.Borrow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCirculation_ReturnUnknownBorrow(t *testing.T) {
	db, router, cleanup := setupCirculationTest(t, false)
	defer cleanup()

	book := &entities.Book{Title: "T", Author: "A", Category: "C", Available: false}
	require.NoError(t, db.DB.Create(book).Error)

	w := postForm(router, "/return_book/999", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)

	// No error, no state change
	var stored entities.Book
	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.False(t, stored.Available)
}

func TestCirculation_ReturnKeepsHistoryWhenConfigured(t *testing.T) {
	db, router, cleanup := setupCirculationTest(t, true)
	defer cleanup()

	book := &entities.Book{Title: "T", Author: "A", Category: "C", Available: false}
	require.NoError(t, db.DB.Create(book).Error)
	patron := &entities.Patron{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.DB.Create(patron).Error)
	borrow := &entities.Borrow{BookID: book.ID, PatronID: patron.ID, BorrowDate: "2024-01-01"}
	require.NoError(t, db.DB.Create(borrow).Error)

	w := postForm(router, "/return_book/1", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)

	var stored entities.Book
	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.True(t, stored.Available)

	// Row survives with its return date stamped
	var storedBorrow entities.Borrow
	require.NoError(t, db.DB.First(&storedBorrow, borrow.ID).Error)
	require.NotNil(t, storedBorrow.ReturnDate)
	assert.NotEmpty(t, *storedBorrow.ReturnDate)
}

func TestCirculation_ResubmittedReturnDoesNotRelease(t *testing.T) {
	db, router, cleanup := setupCirculationTest(t, true)
	defer cleanup()

	book := &entities.Book{Title: "T", Author: "A", Category: "C", Available: false}
	require.NoError(t, db.DB.Create(book).Error)
	patron := &entities.Patron{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, db.DB.Create(patron).Error)

	// A closed borrow from an earlier checkout, and a newer open one
	// currently holding the book
	returned := "2024-02-01"
	closed := &entities.Borrow{BookID: book.ID, PatronID: patron.ID, BorrowDate: "2024-01-01", ReturnDate: &returned}
	require.NoError(t, db.DB.Create(closed).Error)
	open := &entities.Borrow{BookID: book.ID, PatronID: patron.ID, BorrowDate: "2024-02-02"}
	require.NoError(t, db.DB.Create(open).Error)

	// Stale form resubmission for the closed record
	w := postForm(router, "/return_book/1", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)

	// The open checkout keeps the book unavailable
	var stored entities.Book
	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.False(t, stored.Available)

	var storedOpen entities.Borrow
	require.NoError(t, db.DB.First(&storedOpen, open.ID).Error)
	assert.Nil(t, storedOpen.ReturnDate)
}
