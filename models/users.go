package models

import (
	"database/sql"
	"net/http"
	"strings"

	e "github.com/talky-chat/talky-api/errors"
)

// UserType encapsulates a user in the system. The id is assigned by the
// authentication provider and is immutable once the row exists.
type UserType struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`

	ProfilePicURLNullable sql.NullString `json:"-"`
	ProfilePicURL         string         `json:"profilePictureUrl,omitempty"`
}

// Validate checks that a given user has all the required information to be
// created or updated successfully
func (m *UserType) Validate() (int, error) {

	if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.PhoneNumber) == "" {
		return http.StatusBadRequest, e.New(
			"UserType.Validate",
			e.MissingFields,
			"An id and a phone number must be provided",
		)
	}

	return http.StatusOK, nil
}

// DefaultUsername is the placeholder display name given to users created
// without one.
func DefaultUsername(id string) string {
	return "User_" + id
}
