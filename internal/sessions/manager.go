// Package sessions provides cookie sessions for one-shot flash messages,
// plus CSRF protection for the HTML forms.
package sessions

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"librarian/internal/config"
)

// Session data keys
const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashKind = "flash_kind"
)

// FlashKind distinguishes success notices from validation errors.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message shown to the user once after a redirect.
type Flash struct {
	Message string
	Kind    FlashKind
}

// Manager wraps scs.SessionManager with flash-message helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager backed by the SQLite
// database. The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// PutFlash stores a one-shot message to be shown on the next page render.
func (m *Manager) PutFlash(r *http.Request, kind FlashKind, message string) {
	m.Put(r.Context(), sessionKeyFlash, message)
	m.Put(r.Context(), sessionKeyFlashKind, string(kind))
}

// PopFlash removes and returns the pending flash message, if any.
func (m *Manager) PopFlash(r *http.Request) *Flash {
	message := m.PopString(r.Context(), sessionKeyFlash)
	if message == "" {
		return nil
	}
	kind := FlashKind(m.PopString(r.Context(), sessionKeyFlashKind))
	if kind == "" {
		kind = FlashSuccess
	}
	return &Flash{Message: message, Kind: kind}
}

// GenerateSecret creates a random 32-byte secret for CSRF signing.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
