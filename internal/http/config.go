package http

import (
	"context"

	"librarian/internal/audit"
	"librarian/internal/catalog"
	"librarian/internal/database"
	"librarian/internal/sessions"
)

// CatalogClient supplies external entries for the combined book listing.
type CatalogClient interface {
	FetchBooks(ctx context.Context) []catalog.Entry
}

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. Controllers receive everything through here;
// nothing reaches for process-global state.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	Catalog      CatalogClient
	AuditService *audit.Service

	// Sessions and CSRF (optional; flash messages degrade to no-ops
	// when the session manager is absent)
	SessionManager *sessions.Manager
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Circulation policy: close borrow records on return instead of
	// deleting them
	KeepHistory bool

	// Application info
	Version string
}
