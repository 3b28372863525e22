package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian/internal/audit"
	"librarian/internal/database/users"
	"librarian/internal/sessions"
)

// UsersController serves account registration.
type UsersController struct {
	users    *users.Repository
	sessions *sessions.Manager
	audit    *audit.Service
}

func NewUsersController(repo *users.Repository, sm *sessions.Manager, auditService *audit.Service) *UsersController {
	return &UsersController{
		users:    repo,
		sessions: sm,
		audit:    auditService,
	}
}

// RegisterPage renders the registration form.
func (controller *UsersController) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register", gin.H{
		"Flash":     popFlash(c, controller.sessions),
		"CSRFToken": sessions.GetCSRFToken(c),
	})
}

// Register creates a new account. Mismatched passwords and taken
// usernames/emails flash an error and return the user to the form; a
// successful registration flashes a notice and lands on the listing.
func (controller *UsersController) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	if password != confirmPassword {
		setFlash(c, controller.sessions, sessions.FlashError, "Passwords do not match.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user, err := controller.users.Create(username, email, password)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			setFlash(c, controller.sessions, sessions.FlashError, "Username or email already exists.")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		c.String(http.StatusInternalServerError, "Error registering user: %s", err.Error())
		return
	}

	if controller.audit != nil {
		controller.audit.LogRegistration(user.ID, user.Username)
	}

	setFlash(c, controller.sessions, sessions.FlashSuccess, "Registration successful. Please log in.")
	redirectToIndex(c)
}
