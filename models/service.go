package models

import (
	"context"
	"net/http"
	"strings"
	"time"

	e "github.com/talky-chat/talky-api/errors"
)

// Per-call deadlines for the outbound dependencies. The cache client carries
// its own, shorter timeout inside the cache package; a slow cache falls back
// to the store rather than failing the request.
const (
	storeTimeout  = 5 * time.Second
	uploadTimeout = 30 * time.Second
)

// UserService orchestrates the record store, the upload path and the cache.
type UserService struct {
	Store Storer
	Files Uploader
}

// CreateOrUpdateUser validates and upserts a user record. A blank username
// is defaulted on creation; on the update path the store keeps whatever
// username it already has and only the phone number moves.
//
// The cache is deliberately left untouched here, neither invalidated nor
// repopulated. A create or update is usually followed by a picture upload,
// so eager repopulation would be wasted work, and the next read-through
// refreshes the entry anyway. Staleness is bounded by the entry TTL.
func (s *UserService) CreateOrUpdateUser(
	ctx context.Context,
	m UserType,
) (
	UserType,
	int,
	error,
) {
	if status, err := m.Validate(); err != nil {
		return UserType{}, status, err
	}

	if strings.TrimSpace(m.Username) == "" {
		m.Username = DefaultUsername(m.ID)
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if status, err := s.Store.UpsertUser(sctx, m); err != nil {
		return UserType{}, status, err
	}

	// The submitted fields are echoed back. On the update path the stored
	// username may differ; the fetch path reports the stored truth.
	return m, http.StatusOK, nil
}

// UploadProfilePicture stores the blob, points the user record at the new
// URL, and then patches any warm cache entry. The record is only updated
// after a successful upload, so a storage failure leaves no partial state.
// A failure updating the record after the blob is stored still fails the
// request: success means both the blob and the record are in place. The
// cache patch is best effort and can never fail the operation.
func (s *UserService) UploadProfilePicture(
	ctx context.Context,
	id string,
	content []byte,
	mimeType string,
) (
	string,
	int,
	error,
) {
	if strings.TrimSpace(id) == "" || len(content) == 0 {
		return "", http.StatusBadRequest, e.New(
			"UserService.UploadProfilePicture",
			e.MissingFields,
			"An id and file content must be provided",
		)
	}

	uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	pictureURL, status, err := s.Files.Upload(uctx, id, content, mimeType)
	if err != nil {
		return "", status, err
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if status, err := s.Store.SetProfilePicture(sctx, id, pictureURL); err != nil {
		return "", status, err
	}

	PatchUserCachePicture(id, pictureURL)

	return pictureURL, http.StatusOK, nil
}

// GetUserProfile is the read-through path. A cache hit returns without
// touching the record store at all. On a miss the store is read and, when
// the user exists, the cache is populated before returning so that the next
// read is a hit. Not-found is never cached: every miss for an unknown id
// re-queries the store.
func (s *UserService) GetUserProfile(
	ctx context.Context,
	id string,
) (
	UserType,
	int,
	error,
) {
	if strings.TrimSpace(id) == "" {
		return UserType{}, http.StatusBadRequest, e.New(
			"UserService.GetUserProfile",
			e.MissingFields,
			"An id must be provided",
		)
	}

	if m, ok := GetUserCache(id); ok {
		return m, http.StatusOK, nil
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	m, status, err := s.Store.GetUser(sctx, id)
	if err != nil {
		return UserType{}, status, err
	}

	SetUserCache(m)

	return m, http.StatusOK, nil
}
