package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/golang/glog"
)

// CacheDetail determines the type of content held in a key. A single ID may
// hold multiple bits of data under distinct keys, and key formats are looked
// up by this constant so that a purge can remove every key held for an ID.
const CacheDetail int = 1

// Client is the subset of the memcache client that this package uses. It
// exists so that tests can substitute an in-memory implementation.
type Client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

var (
	mc      Client
	enabled bool
)

// connTimeout bounds every cache operation. The cache is a latency
// optimisation, so a slow memcached must degrade to the backing store rather
// than stall the request.
const connTimeout = 250 * time.Millisecond

// InitCache creates the cache client and enables the cache functions within
// this package. It is the responsibility of whatever has the values for this
// function (usually main.go shortly after reading the config file) to call
// this.
func InitCache(host string, port int64) {
	client := memcache.New(fmt.Sprintf("%s:%d", host, port))
	client.Timeout = connTimeout
	mc = client
	enabled = true
}

// InitCacheClient enables the cache functions over an already constructed
// client. Used by tests.
func InitCacheClient(client Client) {
	mc = client
	enabled = true
}

// Set puts the given interface into the cache
func Set(key string, data interface{}, timeToLive int32) {
	if !enabled {
		return
	}

	// Encode the data for serialisation in memcache
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(&data)
	if err != nil {
		glog.Errorf("enc.Encode(&data) %+v", err)
		return
	}

	err = mc.Set(
		&memcache.Item{
			Key:        key,
			Value:      buf.Bytes(),
			Expiration: timeToLive, // time in seconds
		},
	)
	if err != nil {
		glog.Errorf("mc.Set() %+v", err)
		return
	}
}

// Get gets the data for the given key, if the data is in the cache
func Get(key string, dst interface{}) (interface{}, bool) {
	if !enabled {
		return nil, false
	}

	item, err := mc.Get(key)
	if err != nil {
		// Cache misses are expected, but other errors are logged.
		if err != memcache.ErrCacheMiss {
			glog.Warningf("mc.Get(key) %+v", err)
		}
		return nil, false
	}

	var buf bytes.Buffer
	buf.Write(item.Value)
	dec := gob.NewDecoder(&buf)
	err = dec.Decode(&dst)
	if err != nil {
		glog.Errorf("dec.Decode(&dst) %+v", err)
		return nil, false
	}

	return dst, true
}

// Delete removes items matching the given key from the cache, if it is in
// the cache
func Delete(key string) {
	if !enabled {
		return
	}

	err := mc.Delete(key)
	if err != nil && err != memcache.ErrCacheMiss {
		glog.Warningf("mc.Delete(key) %+v", err)
	}
}
