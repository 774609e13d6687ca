package controller

import (
	"fmt"
	"net/http"

	"github.com/talky-chat/talky-api/models"
)

// UsersHandler is a web handler
func UsersHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)

	ctl := UsersController{}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "POST"})
		return
	case "POST":
		ctl.Create(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// UsersController is a web controller
type UsersController struct{}

// Create handles POST. The same endpoint serves first sign-in and repeat
// sign-in: the service upserts, and an existing record keeps its username.
func (ctl *UsersController) Create(c *models.Context) {
	m := models.UserType{}

	err := c.Fill(&m)
	if err != nil {
		c.RespondWithErrorMessage(
			fmt.Sprintf("The post data is invalid: %v", err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	m, status, err := users.CreateOrUpdateUser(c.Request.Context(), m)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(m)
}
