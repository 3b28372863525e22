package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"librarian/internal/audit"
	"librarian/internal/database/books"
	"librarian/internal/database/borrows"
	"librarian/internal/database/patrons"
	"librarian/internal/sessions"
)

// CirculationController handles borrowing and returning books.
type CirculationController struct {
	books       *books.Repository
	patrons     *patrons.Repository
	borrows     *borrows.Repository
	sessions    *sessions.Manager
	audit       *audit.Service
	keepHistory bool
}

func NewCirculationController(
	bookRepo *books.Repository,
	patronRepo *patrons.Repository,
	borrowRepo *borrows.Repository,
	sm *sessions.Manager,
	auditService *audit.Service,
	keepHistory bool,
) *CirculationController {
	return &CirculationController{
		books:       bookRepo,
		patrons:     patronRepo,
		borrows:     borrowRepo,
		sessions:    sm,
		audit:       auditService,
		keepHistory: keepHistory,
	}
}

// BorrowPage renders the checkout form: available books and all patrons.
func (controller *CirculationController) BorrowPage(c *gin.Context) {
	availableBooks, err := controller.books.GetAvailable()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	allPatrons, err := controller.patrons.GetAll()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading patrons: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "borrow_book", gin.H{
		"Books":     availableBooks,
		"Patrons":   allPatrons,
		"Flash":     popFlash(c, controller.sessions),
		"CSRFToken": sessions.GetCSRFToken(c),
	})
}

// BorrowBook checks a book out. The availability flip is a single
// conditional update, so two simultaneous checkouts of the same book
// cannot both succeed. A missing or unavailable book is reported with a
// soft message and the request still redirects to the listing.
func (controller *CirculationController) BorrowBook(c *gin.Context) {
	bookID, ok := parseFormID(c, "book_id")
	if !ok {
		setFlash(c, controller.sessions, sessions.FlashError, "Invalid book selection.")
		redirectToIndex(c)
		return
	}
	patronID, ok := parseFormID(c, "patron_id")
	if !ok {
		setFlash(c, controller.sessions, sessions.FlashError, "Invalid patron selection.")
		redirectToIndex(c)
		return
	}
	borrowDate := c.PostForm("borrow_date")

	if err := controller.books.Reserve(bookID); err != nil {
		if controller.audit != nil {
			controller.audit.LogBorrow(bookID, err)
		}
		switch {
		case errors.Is(err, books.ErrNotFound):
			setFlash(c, controller.sessions, sessions.FlashError, "Book not found.")
		case errors.Is(err, books.ErrUnavailable):
			setFlash(c, controller.sessions, sessions.FlashError, "Book is not available.")
		default:
			c.String(http.StatusInternalServerError, "Error borrowing book: %s", err.Error())
			return
		}
		redirectToIndex(c)
		return
	}

	if _, err := controller.borrows.Create(bookID, patronID, borrowDate); err != nil {
		// Roll the availability flip back so the book is not stranded
		// as checked out without a borrow record.
		if releaseErr := controller.books.Release(bookID); releaseErr != nil {
			log.Printf("Failed to release book %d after borrow insert error: %v", bookID, releaseErr)
		}
		if controller.audit != nil {
			controller.audit.LogBorrow(bookID, err)
		}
		c.String(http.StatusInternalServerError, "Error borrowing book: %s", err.Error())
		return
	}

	if controller.audit != nil {
		controller.audit.LogBorrow(bookID, nil)
	}

	redirectToIndex(c)
}

// ReturnBook checks a book back in. Depending on configuration the borrow
// record is either deleted (matching the historical behavior) or closed by
// stamping its return date. An unknown borrow ID is reported with a soft
// message; the request still redirects.
func (controller *CirculationController) ReturnBook(c *gin.Context) {
	borrowID, ok := parseIDParam(c, "id")
	if !ok {
		setFlash(c, controller.sessions, sessions.FlashError, "Invalid borrow record.")
		redirectToIndex(c)
		return
	}

	borrow, err := controller.borrows.GetByID(borrowID)
	if err != nil {
		if controller.audit != nil {
			controller.audit.LogReturn(borrowID, err)
		}
		if errors.Is(err, borrows.ErrNotFound) {
			setFlash(c, controller.sessions, sessions.FlashError, "Borrow record not found.")
			redirectToIndex(c)
			return
		}
		c.String(http.StatusInternalServerError, "Error returning book: %s", err.Error())
		return
	}

	// A closed borrow can be resubmitted when history is kept; releasing
	// the book again would clobber a newer open checkout of the same title.
	if borrow.ReturnDate != nil {
		setFlash(c, controller.sessions, sessions.FlashError, "Book already returned.")
		redirectToIndex(c)
		return
	}

	if err := controller.books.Release(borrow.BookID); err != nil {
		// The borrow record still points somewhere; log and carry on so
		// the record itself gets resolved.
		log.Printf("Failed to release book %d on return of borrow %d: %v", borrow.BookID, borrowID, err)
	}

	if controller.keepHistory {
		err = controller.borrows.Close(borrowID, time.Now().Format("2006-01-02"))
	} else {
		err = controller.borrows.Delete(borrowID)
	}
	if err != nil {
		if controller.audit != nil {
			controller.audit.LogReturn(borrowID, err)
		}
		c.String(http.StatusInternalServerError, "Error returning book: %s", err.Error())
		return
	}

	if controller.audit != nil {
		controller.audit.LogReturn(borrowID, nil)
	}

	redirectToIndex(c)
}
