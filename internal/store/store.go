package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"soundstash/internal/logging"
	"soundstash/internal/metrics"
)

const (
	// connectTimeout bounds the construction-time connect + ping.
	connectTimeout = 10 * time.Second

	// probeTimeout bounds the live probes issued by TestConnection.
	probeTimeout = 5 * time.Second
)

// Collection names used by the catalog.
const (
	CollectionArtists   = "artists"
	CollectionAlbums    = "albums"
	CollectionSongs     = "songs"
	CollectionPlaylists = "playlists"
)

// Store wraps the MongoDB client with a connection guard. Connectivity is
// probed once at construction; a failed probe leaves the database handle
// nil so collection accessors return nil instead of panicking deep in a
// request, and IsConnected lets handlers fail fast with 503 before doing
// any work.
//
// IsConnected reflects the construction-time probe only. TestConnection
// issues a fresh ping and is reserved for the health and diagnostics
// endpoints; request handlers gate on IsConnected alone so a single
// request never consults two disagreeing notions of "up".
type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	connected bool
}

// New connects to MongoDB at uri and probes it with a bounded ping.
// Construction never fails: a broken connection yields a Store whose
// IsConnected reports false.
func New(ctx context.Context, uri, dbName string) *Store {
	s := &Store{}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logging.Error("MongoDB connect failed: %v", err)
		metrics.StoreConnected.Set(0)
		return s
	}
	s.client = client

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logging.Error("MongoDB ping failed, store marked unavailable: %v", err)
		metrics.StoreConnected.Set(0)
		return s
	}

	s.db = client.Database(dbName)
	s.connected = true
	metrics.StoreConnected.Set(1)
	logging.Info("MongoDB connected: database %q", dbName)
	return s
}

// IsConnected reports the health captured by the construction-time probe.
// It does not re-probe.
func (s *Store) IsConnected() bool {
	return s.connected
}

// TestConnection issues a fresh liveness ping against the live client
// handle, if any. It does not mutate the cached health flag.
func (s *Store) TestConnection(ctx context.Context) bool {
	if s.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary()) == nil
}

// PingRTT measures a single ping round trip for the diagnostics endpoint.
func (s *Store) PingRTT(ctx context.Context) (time.Duration, error) {
	if s.client == nil {
		return 0, mongo.ErrClientDisconnected
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Collection returns the named collection, or nil when the store was
// unreachable at construction.
func (s *Store) Collection(name string) *mongo.Collection {
	if s.db == nil {
		return nil
	}
	return s.db.Collection(name)
}

// CollectionCounts returns a document count per collection for the
// diagnostics endpoint.
func (s *Store) CollectionCounts(ctx context.Context) (map[string]int64, error) {
	if s.db == nil {
		return nil, mongo.ErrClientDisconnected
	}

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(names))
	for _, name := range names {
		n, err := s.db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
