package models

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	h "github.com/talky-chat/talky-api/helpers"
)

// Storer is the persistence contract for user records. It is satisfied by
// PgStore and by test doubles.
type Storer interface {
	// UpsertUser creates the record if the id is unknown, otherwise updates
	// only the phone number. The username is never overwritten on the update
	// path, so a display name set earlier survives repeat calls.
	UpsertUser(ctx context.Context, m UserType) (int, error)

	// SetProfilePicture updates only the picture column. It is a silent
	// no-op for an unknown id; callers must ensure the record exists first.
	SetProfilePicture(ctx context.Context, id string, pictureURL string) (int, error)

	// GetUser fetches a user by id, returning http.StatusNotFound when no
	// row exists.
	GetUser(ctx context.Context, id string) (UserType, int, error)
}

// PgStore is the PostgreSQL-backed Storer.
type PgStore struct{}

// UpsertUser creates or updates a user record
func (s *PgStore) UpsertUser(ctx context.Context, m UserType) (int, error) {
	db, err := h.GetConnection()
	if err != nil {
		return http.StatusInternalServerError, err
	}

	return upsertUser(ctx, db, m)
}

func upsertUser(ctx context.Context, q h.Er, m UserType) (int, error) {
	// A single statement so that concurrent calls for the same id cannot
	// interleave between an existence check and the write. On conflict only
	// the phone number moves.
	_, err := q.ExecContext(ctx, `
INSERT INTO users (
    id, username, phone_number, profile_pic
) VALUES (
    $1, $2, $3, NULL
)
ON CONFLICT (id)
DO UPDATE SET phone_number = EXCLUDED.phone_number`,
		m.ID,
		m.Username,
		m.PhoneNumber,
	)
	if err != nil {
		return http.StatusInternalServerError,
			fmt.Errorf("database query failed: %v", err.Error())
	}

	return http.StatusOK, nil
}

// SetProfilePicture updates the picture column for a user
func (s *PgStore) SetProfilePicture(
	ctx context.Context,
	id string,
	pictureURL string,
) (
	int,
	error,
) {
	db, err := h.GetConnection()
	if err != nil {
		return http.StatusInternalServerError, err
	}

	_, err = db.ExecContext(ctx, `
UPDATE users
   SET profile_pic = $2
 WHERE id = $1`,
		id,
		pictureURL,
	)
	if err != nil {
		return http.StatusInternalServerError,
			fmt.Errorf("database query failed: %v", err.Error())
	}

	return http.StatusOK, nil
}

// GetUser will fetch a user for a given ID
func (s *PgStore) GetUser(ctx context.Context, id string) (UserType, int, error) {
	db, err := h.GetConnection()
	if err != nil {
		return UserType{}, http.StatusInternalServerError, err
	}

	return getUser(ctx, db, id)
}

func getUser(ctx context.Context, q h.Er, id string) (UserType, int, error) {
	var m UserType
	err := q.QueryRowContext(ctx, `
SELECT id
      ,username
      ,phone_number
      ,profile_pic
  FROM users
 WHERE id = $1`,
		id,
	).Scan(
		&m.ID,
		&m.Username,
		&m.PhoneNumber,
		&m.ProfilePicURLNullable,
	)
	if err == sql.ErrNoRows {
		return UserType{}, http.StatusNotFound,
			fmt.Errorf("Resource with id %v not found", id)
	} else if err != nil {
		return UserType{}, http.StatusInternalServerError,
			fmt.Errorf("database query failed: %v", err.Error())
	}

	if m.ProfilePicURLNullable.Valid {
		m.ProfilePicURL = m.ProfilePicURLNullable.String
	}

	return m, http.StatusOK, nil
}
