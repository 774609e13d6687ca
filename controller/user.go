package controller

import (
	"net/http"

	"github.com/talky-chat/talky-api/models"
)

// UserHandler is a web handler
func UserHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)

	ctl := UserController{}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "HEAD", "GET"})
		return
	case "HEAD":
		ctl.Read(c)
	case "GET":
		ctl.Read(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// UserController is a web controller
type UserController struct{}

// Read handles GET
func (ctl *UserController) Read(c *models.Context) {
	m, status, err := users.GetUserProfile(
		c.Request.Context(),
		c.RouteVars["user_id"],
	)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(m)
}
