package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian/internal/audit"
	"librarian/internal/catalog"
	"librarian/internal/database/books"
	"librarian/internal/database/borrows"
	"librarian/internal/sessions"
)

// BooksController serves the combined book listing and the add-book form.
type BooksController struct {
	books    *books.Repository
	borrows  *borrows.Repository
	catalog  CatalogClient
	sessions *sessions.Manager
	audit    *audit.Service
}

func NewBooksController(repo *books.Repository, borrowRepo *borrows.Repository, catalogClient CatalogClient, sm *sessions.Manager, auditService *audit.Service) *BooksController {
	return &BooksController{
		books:    repo,
		borrows:  borrowRepo,
		catalog:  catalogClient,
		sessions: sm,
		audit:    auditService,
	}
}

// Index renders every local book plus whatever the catalog returns. The
// catalog contribution degrades to empty on any upstream failure, so the
// page always lists at least the local collection.
func (controller *BooksController) Index(c *gin.Context) {
	localBooks, err := controller.books.GetAll()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	entries := make([]catalog.Entry, 0, len(localBooks))
	for _, book := range localBooks {
		entries = append(entries, catalog.Entry{
			ID:        book.ID,
			Title:     book.Title,
			Author:    book.Author,
			Category:  book.Category,
			Available: book.Available,
		})
	}

	if controller.catalog != nil {
		entries = append(entries, controller.catalog.FetchBooks(c.Request.Context())...)
	}

	openBorrows, err := controller.borrows.GetOpen()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading borrows: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"Books":     entries,
		"Borrows":   openBorrows,
		"Flash":     popFlash(c, controller.sessions),
		"CSRFToken": sessions.GetCSRFToken(c),
	})
}

// AddBookPage renders the add-book form.
func (controller *BooksController) AddBookPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_book", gin.H{
		"Flash":     popFlash(c, controller.sessions),
		"CSRFToken": sessions.GetCSRFToken(c),
	})
}

// AddBook inserts a new book and redirects to the listing. New books are
// always available.
func (controller *BooksController) AddBook(c *gin.Context) {
	title := c.PostForm("title")
	author := c.PostForm("author")
	category := c.PostForm("category")

	book, err := controller.books.Create(title, author, category)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error adding book: %s", err.Error())
		return
	}

	if controller.audit != nil {
		controller.audit.LogBookAdded(book.ID, book.Title)
	}

	redirectToIndex(c)
}
