package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"librarian/internal/sessions"
)

// parseIDParam extracts an unsigned integer ID from URL parameters.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseFormID extracts an unsigned integer ID from a posted form field.
func parseFormID(c *gin.Context, field string) (uint, bool) {
	idStr := c.PostForm(field)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// setFlash stores a one-shot message when sessions are configured.
func setFlash(c *gin.Context, sm *sessions.Manager, kind sessions.FlashKind, message string) {
	if sm == nil {
		return
	}
	sm.PutFlash(c.Request, kind, message)
}

// popFlash retrieves and clears the pending flash message, if any.
func popFlash(c *gin.Context, sm *sessions.Manager) *sessions.Flash {
	if sm == nil {
		return nil
	}
	return sm.PopFlash(c.Request)
}

// redirectToIndex sends the browser back to the book listing.
func redirectToIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}
