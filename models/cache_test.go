package models

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	c "github.com/talky-chat/talky-api/cache"
)

// fakeCacheClient is an in-memory cache.Client that honours expirations
// against a manually advanced clock, emulating memcached's TTL behaviour.
type fakeCacheClient struct {
	now   time.Time
	items map[string]fakeCacheItem
}

type fakeCacheItem struct {
	value   []byte
	expires time.Time
}

func newFakeCacheClient() *fakeCacheClient {
	return &fakeCacheClient{
		now:   time.Now(),
		items: map[string]fakeCacheItem{},
	}
}

func (f *fakeCacheClient) Get(key string) (*memcache.Item, error) {
	item, ok := f.items[key]
	if !ok || (!item.expires.IsZero() && f.now.After(item.expires)) {
		return nil, memcache.ErrCacheMiss
	}

	return &memcache.Item{Key: key, Value: item.value}, nil
}

func (f *fakeCacheClient) Set(item *memcache.Item) error {
	var expires time.Time
	if item.Expiration > 0 {
		expires = f.now.Add(time.Duration(item.Expiration) * time.Second)
	}

	f.items[item.Key] = fakeCacheItem{
		value:   append([]byte(nil), item.Value...),
		expires: expires,
	}

	return nil
}

func (f *fakeCacheClient) Delete(key string) error {
	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(f.items, key)

	return nil
}

func (f *fakeCacheClient) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestUserCacheRoundTrip(t *testing.T) {
	c.InitCacheClient(newFakeCacheClient())

	in := UserType{
		ID:          "u1",
		Username:    "Alice",
		PhoneNumber: "+15550001",
	}
	SetUserCache(in)

	out, ok := GetUserCache("u1")
	if !ok {
		t.Fatal("GetUserCache(u1) should be a hit")
	}
	if out != in {
		t.Errorf("GetUserCache(u1) = %+v should be %+v", out, in)
	}
}

func TestUserCacheExpiry(t *testing.T) {
	fc := newFakeCacheClient()
	c.InitCacheClient(fc)

	SetUserCache(UserType{ID: "u1", Username: "Alice"})

	fc.advance(time.Duration(mcTTL+1) * time.Second)

	if _, ok := GetUserCache("u1"); ok {
		t.Error("GetUserCache(u1) should be a miss after the TTL has passed")
	}
}

func TestPurgeUserCache(t *testing.T) {
	c.InitCacheClient(newFakeCacheClient())

	SetUserCache(UserType{ID: "u1", Username: "Alice"})
	PurgeUserCache("u1")

	if _, ok := GetUserCache("u1"); ok {
		t.Error("GetUserCache(u1) should be a miss after PurgeUserCache")
	}
}

func TestPatchUserCachePictureColdIsNoop(t *testing.T) {
	c.InitCacheClient(newFakeCacheClient())

	PatchUserCachePicture("u1", "https://cdn.example.com/a.jpg")

	if _, ok := GetUserCache("u1"); ok {
		t.Error("patching a cold cache should not create an entry")
	}
}

func TestPatchUserCachePictureIdempotent(t *testing.T) {
	c.InitCacheClient(newFakeCacheClient())

	SetUserCache(UserType{
		ID:          "u1",
		Username:    "Alice",
		PhoneNumber: "+15550001",
	})

	pictureURL := "https://cdn.example.com/profile_pics/u1-1.jpg"
	PatchUserCachePicture("u1", pictureURL)
	PatchUserCachePicture("u1", pictureURL)

	out, ok := GetUserCache("u1")
	if !ok {
		t.Fatal("GetUserCache(u1) should be a hit")
	}

	want := UserType{
		ID:            "u1",
		Username:      "Alice",
		PhoneNumber:   "+15550001",
		ProfilePicURL: pictureURL,
	}
	if out != want {
		t.Errorf("GetUserCache(u1) = %+v should be %+v", out, want)
	}
}
