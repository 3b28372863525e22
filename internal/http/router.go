package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"librarian/internal/database/books"
	"librarian/internal/database/borrows"
	"librarian/internal/database/patrons"
	"librarian/internal/database/users"
	"librarian/internal/sessions"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(sessions.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(sessions.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
	}

	// Load HTML templates
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	// Create repositories over the shared database handle
	bookRepo := books.NewRepository(cfg.Database.DB)
	patronRepo := patrons.NewRepository(cfg.Database.DB)
	borrowRepo := borrows.NewRepository(cfg.Database.DB)
	userRepo := users.NewRepository(cfg.Database.DB)

	// Create controllers
	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(bookRepo, borrowRepo, cfg.Catalog, cfg.SessionManager, cfg.AuditService)
	patronsController := NewPatronsController(patronRepo, cfg.SessionManager, cfg.AuditService)
	circulationController := NewCirculationController(
		bookRepo,
		patronRepo,
		borrowRepo,
		cfg.SessionManager,
		cfg.AuditService,
		cfg.KeepHistory,
	)
	usersController := NewUsersController(userRepo, cfg.SessionManager, cfg.AuditService)

	// Listing
	router.GET("/", booksController.Index)

	// Registration
	router.GET("/register", usersController.RegisterPage)
	router.POST("/register", usersController.Register)

	// Collection management
	router.GET("/add_book", booksController.AddBookPage)
	router.POST("/add_book", booksController.AddBook)
	router.GET("/add_patron", patronsController.AddPatronPage)
	router.POST("/add_patron", patronsController.AddPatron)

	// Circulation
	router.GET("/borrow_book", circulationController.BorrowPage)
	router.POST("/borrow_book", circulationController.BorrowBook)
	router.POST("/return_book/:id", circulationController.ReturnBook)

	// Health endpoint
	router.GET("/health", health.Status)

	return router
}
