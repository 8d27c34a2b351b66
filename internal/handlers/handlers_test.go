package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundstash/internal/cache"
	"soundstash/internal/catalog"
)

// fakeGuard is a canned connection guard.
type fakeGuard struct {
	connected bool
	probe     bool
	rtt       time.Duration
	rttErr    error
	counts    map[string]int64
	countsErr error
}

func (g *fakeGuard) IsConnected() bool                       { return g.connected }
func (g *fakeGuard) TestConnection(context.Context) bool     { return g.probe }
func (g *fakeGuard) PingRTT(context.Context) (time.Duration, error) {
	return g.rtt, g.rttErr
}
func (g *fakeGuard) CollectionCounts(context.Context) (map[string]int64, error) {
	return g.counts, g.countsErr
}

// fakeCacheAdmin is a canned distributed-cache admin surface.
type fakeCacheAdmin struct {
	pingErr  error
	keys     []string
	scanErr  error
	cleared  int
	clearErr error
}

func (c *fakeCacheAdmin) Ping(context.Context) error { return c.pingErr }
func (c *fakeCacheAdmin) ScanKeys(context.Context, string) ([]string, error) {
	return c.keys, c.scanErr
}
func (c *fakeCacheAdmin) ClearNamespace(context.Context, string) (int, error) {
	return c.cleared, c.clearErr
}

// fakeMedia records the source URL it was asked for.
type fakeMedia struct {
	result  *cache.ImageResult
	err     error
	lastURL string
}

func (m *fakeMedia) GetImage(_ context.Context, sourceURL string) (*cache.ImageResult, error) {
	m.lastURL = sourceURL
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// fakeBlob serves objects from a map keyed "container/key".
type fakeBlob struct {
	objects   map[string][]byte
	uploadErr error
	uploads   map[string][]byte
}

func (b *fakeBlob) lookup(container, key string) ([]byte, error) {
	data, ok := b.objects[container+"/"+key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (b *fakeBlob) DownloadAll(_ context.Context, container, key string) ([]byte, error) {
	return b.lookup(container, key)
}

func (b *fakeBlob) DownloadRange(_ context.Context, container, key string, start, end int64) ([]byte, error) {
	data, err := b.lookup(container, key)
	if err != nil {
		return nil, err
	}
	if start < 0 || end >= int64(len(data)) || start > end {
		return nil, fmt.Errorf("range [%d,%d] out of bounds", start, end)
	}
	return data[start : end+1], nil
}

func (b *fakeBlob) Length(_ context.Context, container, key string) (int64, error) {
	data, err := b.lookup(container, key)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (b *fakeBlob) Upload(_ context.Context, container, key string, data []byte, _ string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	if b.uploads == nil {
		b.uploads = make(map[string][]byte)
	}
	b.uploads[container+"/"+key] = data
	return nil
}

// fakeCatalog embeds the Catalog interface so each test overrides only
// the methods it exercises; an unexpected call panics.
type fakeCatalog struct {
	Catalog
	artists    []catalog.Artist
	artist     *catalog.Artist
	err        error
	createdIDs []string
}

func (c *fakeCatalog) ListArtists(context.Context, catalog.ListOptions) ([]catalog.Artist, error) {
	return c.artists, c.err
}

func (c *fakeCatalog) GetArtist(context.Context, string) (*catalog.Artist, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.artist, nil
}

func (c *fakeCatalog) CreateArtist(_ context.Context, artist *catalog.Artist) error {
	if c.err != nil {
		return c.err
	}
	artist.ID = "generated-id"
	c.createdIDs = append(c.createdIDs, artist.ID)
	return nil
}

// newTestHandlers builds a handler set from fakes, defaulting every
// collaborator to a healthy state.
func newTestHandlers(opts ...func(*Handlers)) *Handlers {
	h := New(
		&fakeCatalog{},
		&fakeGuard{connected: true, probe: true},
		&fakeMedia{},
		&fakeCacheAdmin{},
		&fakeBlob{objects: map[string][]byte{}},
	)
	for _, opt := range opts {
		opt(h)
	}
	return h
}
