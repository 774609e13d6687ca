package cache

import (
	"encoding/gob"
	"fmt"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

type payload struct {
	Name  string
	Count int64
}

func init() {
	gob.Register(payload{})
}

// fakeClient is an in-memory Client that honours expirations against a
// manually advanced clock, emulating memcached's TTL behaviour.
type fakeClient struct {
	now   time.Time
	items map[string]fakeItem
}

type fakeItem struct {
	value   []byte
	expires time.Time
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		now:   time.Now(),
		items: map[string]fakeItem{},
	}
}

func (f *fakeClient) Get(key string) (*memcache.Item, error) {
	item, ok := f.items[key]
	if !ok || (!item.expires.IsZero() && f.now.After(item.expires)) {
		return nil, memcache.ErrCacheMiss
	}

	return &memcache.Item{Key: key, Value: item.value}, nil
}

func (f *fakeClient) Set(item *memcache.Item) error {
	var expires time.Time
	if item.Expiration > 0 {
		expires = f.now.Add(time.Duration(item.Expiration) * time.Second)
	}

	f.items[item.Key] = fakeItem{
		value:   append([]byte(nil), item.Value...),
		expires: expires,
	}

	return nil
}

func (f *fakeClient) Delete(key string) error {
	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(f.items, key)

	return nil
}

func (f *fakeClient) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestSetGet(t *testing.T) {
	fc := newFakeClient()
	InitCacheClient(fc)

	in := payload{Name: "talky", Count: 42}
	Set("k1", in, 60)

	val, ok := Get("k1", payload{})
	if !ok {
		t.Fatal("Get(k1) should be a hit")
	}

	out := val.(payload)
	if out != in {
		t.Errorf("Get(k1) = %+v should be %+v", out, in)
	}
}

func TestGetMiss(t *testing.T) {
	InitCacheClient(newFakeClient())

	if _, ok := Get("absent", payload{}); ok {
		t.Error("Get(absent) should be a miss")
	}
}

func TestExpiry(t *testing.T) {
	fc := newFakeClient()
	InitCacheClient(fc)

	Set("k1", payload{Name: "short-lived"}, 1)

	if _, ok := Get("k1", payload{}); !ok {
		t.Fatal("Get(k1) should be a hit before expiry")
	}

	fc.advance(2 * time.Second)

	if _, ok := Get("k1", payload{}); ok {
		t.Error("Get(k1) should be a miss after expiry")
	}
}

func TestDelete(t *testing.T) {
	fc := newFakeClient()
	InitCacheClient(fc)

	Set("k1", payload{Name: "doomed"}, 60)
	Delete("k1")

	if _, ok := Get("k1", payload{}); ok {
		t.Error("Get(k1) should be a miss after Delete")
	}

	// Deleting an absent key is not an error worth surfacing
	Delete("k1")
}

// errorClient fails every operation with a non-miss error, emulating an
// unreachable or timing out memcached.
type errorClient struct{}

func (e *errorClient) Get(key string) (*memcache.Item, error) {
	return nil, fmt.Errorf("connect timeout")
}

func (e *errorClient) Set(item *memcache.Item) error {
	return fmt.Errorf("connect timeout")
}

func (e *errorClient) Delete(key string) error {
	return fmt.Errorf("connect timeout")
}

func TestClientErrors(t *testing.T) {
	InitCacheClient(&errorClient{})
	defer InitCacheClient(newFakeClient())

	// A failed write is absorbed, a failed read is a miss, a failed delete
	// is logged and forgotten. None of these may surface an error.
	Set("k1", payload{Name: "unreachable"}, 60)

	if _, ok := Get("k1", payload{}); ok {
		t.Error("Get(k1) should be a miss when the client errors")
	}

	Delete("k1")
}

func TestDisabled(t *testing.T) {
	mc = nil
	enabled = false
	defer InitCacheClient(newFakeClient())

	// None of these should panic or do anything
	Set("k1", payload{Name: "ignored"}, 60)
	Delete("k1")

	if _, ok := Get("k1", payload{}); ok {
		t.Error("Get(k1) should be a miss when the cache is disabled")
	}
}
