package rest

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"
)

// dedupLinger is how long a settled GET stays shared after its
// request completed. Requests for the same resource arriving within
// this window reuse the response instead of hitting the server again.
const dedupLinger = 100 * time.Millisecond

// cachedResponse is a fully-read response, safe to hand out to any
// number of waiters.
type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

// response materializes a fresh *http.Response over the shared bytes.
// Each caller gets its own Body to consume.
func (c *cachedResponse) response() *http.Response {
	return &http.Response{
		StatusCode:    c.status,
		Header:        c.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(c.body)),
		ContentLength: int64(len(c.body)),
	}
}

type dedupFlight struct {
	done chan struct{}
	resp *cachedResponse
	err  error
}

// dedupCache collapses identical in-flight GETs into one request and
// keeps the settled result shared for dedupLinger afterwards.
//
// Mutating requests are never deduplicated; only reads go through
// here.
type dedupCache struct {
	mu      sync.Mutex
	flights map[string]*dedupFlight
	linger  time.Duration
}

func newDedupCache() *dedupCache {
	return &dedupCache{
		flights: map[string]*dedupFlight{},
		linger:  dedupLinger,
	}
}

// Do returns the shared response for key, issuing fetch only when no
// flight for key exists yet. fetch must read the response body to
// completion.
func (d *dedupCache) Do(key string, fetch func() (*cachedResponse, error)) (*http.Response, error) {
	d.mu.Lock()
	if f, ok := d.flights[key]; ok {
		d.mu.Unlock()
		<-f.done
		if f.err != nil {
			return nil, f.err
		}
		return f.resp.response(), nil
	}

	f := &dedupFlight{done: make(chan struct{})}
	d.flights[key] = f
	d.mu.Unlock()

	f.resp, f.err = fetch()
	close(f.done)

	// keep the settled flight shared a moment longer, then retire it
	// so later requests observe fresh state.
	time.AfterFunc(d.linger, func() {
		d.mu.Lock()
		if d.flights[key] == f {
			delete(d.flights, key)
		}
		d.mu.Unlock()
	})

	if f.err != nil {
		return nil, f.err
	}
	return f.resp.response(), nil
}

// dedupKey normalizes path + query into a cache key. Parameter order
// must not matter: url.Values.Encode sorts keys, and multi-valued
// parameters are sorted here so permutations of the same query
// collapse to one key.
func dedupKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	canonical := url.Values{}
	for k, vs := range query {
		sorted := append([]string(nil), vs...)
		sort.Strings(sorted)
		canonical[k] = sorted
	}
	return path + "?" + canonical.Encode()
}
