package models

import (
	"fmt"

	c "github.com/talky-chat/talky-api/cache"
)

// This file contains setup and helper functions for caching model objects
// with memcache. It should only contain functions specifically for dealing
// with models; anything else should go in the cache package.

var mcUserKeys = map[int]string{
	c.CacheDetail: "user:%s",
}

const mcTTL int32 = 60 * 60 * 24 // 1 day

// GetUserCache returns the cached snapshot of a user, if one is held. A miss
// says nothing about whether the user exists; the record store is
// authoritative.
func GetUserCache(id string) (UserType, bool) {
	mcKey := fmt.Sprintf(mcUserKeys[c.CacheDetail], id)
	if val, ok := c.Get(mcKey, UserType{}); ok {
		return val.(UserType), true
	}

	return UserType{}, false
}

// SetUserCache overwrites the cached snapshot of a user with a fresh TTL.
// Entries are always written whole; there is no partial update of a cached
// value.
func SetUserCache(m UserType) {
	c.Set(fmt.Sprintf(mcUserKeys[c.CacheDetail], m.ID), m, mcTTL)
}

// PurgeUserCache removes a user from the cache
func PurgeUserCache(id string) {
	for _, mcKeyFmt := range mcUserKeys {
		c.Delete(fmt.Sprintf(mcKeyFmt, id))
	}
}

// PatchUserCachePicture folds a new profile picture URL into an already
// cached user. The full cached record is read, the one field changed, and
// the whole value rewritten (resetting the TTL) so that sibling fields are
// never silently preserved from an older snapshot. If the user is not
// cached this is a no-op: the next read-through miss fetches the fresh
// record, picture included, from the store.
//
// The read-modify-write is not atomic against a concurrent SetUserCache or
// PurgeUserCache for the same key. Last write wins and any staleness is
// bounded by the TTL, with the store remaining authoritative.
func PatchUserCachePicture(id string, pictureURL string) {
	m, ok := GetUserCache(id)
	if !ok {
		return
	}

	m.ProfilePicURL = pictureURL
	SetUserCache(m)
}
