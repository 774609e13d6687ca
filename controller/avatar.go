package controller

import (
	"fmt"
	"io"
	"net/http"

	e "github.com/talky-chat/talky-api/errors"
	"github.com/talky-chat/talky-api/models"
)

// AvatarHandler is a web handler
func AvatarHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)

	ctl := AvatarController{}

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

// AvatarController is a web controller
type AvatarController struct{}

// AvatarResponse is the payload returned for a successful upload
type AvatarResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Create handles POST. The image arrives as the multipart field "profile".
func (ctl *AvatarController) Create(c *models.Context) {
	file, header, err := c.Request.FormFile("profile")
	if err != nil {
		c.RespondWithErrorDetail(
			e.New(
				"AvatarController.Create",
				e.FileRequired,
				"a file must be supplied in the 'profile' field",
			),
			http.StatusBadRequest,
		)
		return
	}
	defer file.Close()

	if header.Size > models.MaxFileSize {
		c.RespondWithErrorDetail(
			e.New(
				"AvatarController.Create",
				e.FileTooLarge,
				fmt.Sprintf(
					"files must be below %d bytes in size",
					models.MaxFileSize,
				),
			),
			http.StatusRequestEntityTooLarge,
		)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, models.MaxFileSize))
	if err != nil {
		c.RespondWithErrorMessage(
			fmt.Sprintf("could not read the uploaded file: %v", err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	pictureURL, status, err := users.UploadProfilePicture(
		c.Request.Context(),
		c.RouteVars["user_id"],
		content,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(AvatarResponse{ImageURL: pictureURL})
}
