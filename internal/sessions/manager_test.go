package sessions

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/config"
)

func setupManager(t *testing.T) (*Manager, func()) {
	t.Helper()
	dbPath := "./test_sessions_" + t.Name() + ".db"

	sqlDB, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)

	sm, err := NewManager(sqlDB, config.Session{
		Lifetime:      time.Hour,
		SecureCookies: false,
	})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return sm, cleanup
}

func TestManager_FlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sm, cleanup := setupManager(t)
	defer cleanup()

	router := gin.New()
	router.Use(sm.LoadSave())
	router.POST("/set", func(c *gin.Context) {
		sm.PutFlash(c.Request, FlashError, "Passwords do not match.")
		c.Status(http.StatusOK)
	})
	router.GET("/get", func(c *gin.Context) {
		flash := sm.PopFlash(c.Request)
		if flash == nil {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, "%s:%s", flash.Kind, flash.Message)
	})

	// Set the flash; grab the session cookie from the response
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/set", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// First read pops the message
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/get", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)
	assert.Equal(t, "error:Passwords do not match.", w.Body.String())

	// Second read finds nothing: flash is one-shot
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/get", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	router.ServeHTTP(w2, req2)
	assert.Equal(t, "none", w2.Body.String())
}

func TestManager_PopFlash_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sm, cleanup := setupManager(t)
	defer cleanup()

	router := gin.New()
	router.Use(sm.LoadSave())
	router.GET("/get", func(c *gin.Context) {
		assert.Nil(t, sm.PopFlash(c.Request))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/get", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	// 32 bytes hex-encoded
	assert.Len(t, secret, 64)

	secret2, err := GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, secret2)
}
