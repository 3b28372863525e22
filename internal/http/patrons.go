package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian/internal/audit"
	"librarian/internal/database/patrons"
	"librarian/internal/sessions"
)

// PatronsController serves the add-patron form.
type PatronsController struct {
	patrons  *patrons.Repository
	sessions *sessions.Manager
	audit    *audit.Service
}

func NewPatronsController(repo *patrons.Repository, sm *sessions.Manager, auditService *audit.Service) *PatronsController {
	return &PatronsController{
		patrons:  repo,
		sessions: sm,
		audit:    auditService,
	}
}

// AddPatronPage renders the add-patron form.
func (controller *PatronsController) AddPatronPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_patron", gin.H{
		"Flash":     popFlash(c, controller.sessions),
		"CSRFToken": sessions.GetCSRFToken(c),
	})
}

// AddPatron inserts a new patron and redirects to the listing. Email
// uniqueness is enforced by the schema; a duplicate surfaces as a soft
// error rather than a failed page.
func (controller *PatronsController) AddPatron(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")

	patron, err := controller.patrons.Create(name, email)
	if err != nil {
		setFlash(c, controller.sessions, sessions.FlashError, "Could not add patron: email may already be registered.")
		c.Redirect(http.StatusFound, "/add_patron")
		return
	}

	if controller.audit != nil {
		controller.audit.LogPatronAdded(patron.ID, patron.Name)
	}

	redirectToIndex(c)
}
