package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soundstash/internal/metrics"
	"soundstash/internal/store"
)

// Sentinel errors surfaced by the repository.
var (
	// ErrNotFound indicates no document matched the given id.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable indicates the document store was unreachable at
	// startup; callers should have gated on the connection guard first.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// ListOptions paginates list queries.
type ListOptions struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// normalize clamps pagination to sane bounds.
func (o ListOptions) normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = defaultPageSize
	}
	if o.PageSize > maxPageSize {
		o.PageSize = maxPageSize
	}
	return o
}

func (o ListOptions) findOptions(sortField string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: 1}}).
		SetSkip(int64((o.Page - 1) * o.PageSize)).
		SetLimit(int64(o.PageSize))
}

// Repository is the catalog's document-store access layer. Every method
// runs its query under the bounded retry executor, so transient
// connection failures are absorbed up to the configured attempt budget.
type Repository struct {
	store *store.Store
}

// NewRepository creates a repository over the given store.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// collection returns the named collection or ErrStoreUnavailable.
func (r *Repository) collection(name string) (*mongo.Collection, error) {
	coll := r.store.Collection(name)
	if coll == nil {
		return nil, ErrStoreUnavailable
	}
	return coll, nil
}

// observe records one store operation's outcome and duration.
func observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	metrics.StoreOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// =============================================================================
// Generic CRUD plumbing
// =============================================================================

func listDocs[T any](r *Repository, ctx context.Context, collName, operation, sortField string, filter bson.M, opts ListOptions) ([]T, error) {
	opts = opts.normalize()
	return store.ExecuteWithRetry(ctx, store.DefaultRetryConfig(operation),
		func(ctx context.Context) ([]T, error) {
			coll, err := r.collection(collName)
			if err != nil {
				return nil, err
			}

			start := time.Now()
			cursor, err := coll.Find(ctx, filter, opts.findOptions(sortField))
			if err != nil {
				observe(operation, start, err)
				return nil, fmt.Errorf("%s query failed: %w", operation, err)
			}
			defer cursor.Close(ctx)

			docs := make([]T, 0, opts.PageSize)
			err = cursor.All(ctx, &docs)
			observe(operation, start, err)
			if err != nil {
				return nil, fmt.Errorf("%s decode failed: %w", operation, err)
			}
			return docs, nil
		})
}

func getDoc[T any](r *Repository, ctx context.Context, collName, operation, id string) (*T, error) {
	return store.ExecuteWithRetry(ctx, store.DefaultRetryConfig(operation),
		func(ctx context.Context) (*T, error) {
			coll, err := r.collection(collName)
			if err != nil {
				return nil, err
			}

			start := time.Now()
			var doc T
			err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
			if errors.Is(err, mongo.ErrNoDocuments) {
				observe(operation, start, nil)
				return nil, ErrNotFound
			}
			observe(operation, start, err)
			if err != nil {
				return nil, fmt.Errorf("%s query failed: %w", operation, err)
			}
			return &doc, nil
		})
}

func insertDoc[T any](r *Repository, ctx context.Context, collName, operation string, doc *T) error {
	_, err := store.ExecuteWithRetry(ctx, store.DefaultRetryConfig(operation),
		func(ctx context.Context) (struct{}, error) {
			coll, err := r.collection(collName)
			if err != nil {
				return struct{}{}, err
			}

			start := time.Now()
			_, err = coll.InsertOne(ctx, doc)
			observe(operation, start, err)
			if err != nil {
				return struct{}{}, fmt.Errorf("%s insert failed: %w", operation, err)
			}
			return struct{}{}, nil
		})
	return err
}

func replaceDoc[T any](r *Repository, ctx context.Context, collName, operation, id string, doc *T) error {
	_, err := store.ExecuteWithRetry(ctx, store.DefaultRetryConfig(operation),
		func(ctx context.Context) (struct{}, error) {
			coll, err := r.collection(collName)
			if err != nil {
				return struct{}{}, err
			}

			start := time.Now()
			result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
			observe(operation, start, err)
			if err != nil {
				return struct{}{}, fmt.Errorf("%s replace failed: %w", operation, err)
			}
			if result.MatchedCount == 0 {
				return struct{}{}, ErrNotFound
			}
			return struct{}{}, nil
		})
	return err
}

func deleteDoc(r *Repository, ctx context.Context, collName, operation, id string) error {
	_, err := store.ExecuteWithRetry(ctx, store.DefaultRetryConfig(operation),
		func(ctx context.Context) (struct{}, error) {
			coll, err := r.collection(collName)
			if err != nil {
				return struct{}{}, err
			}

			start := time.Now()
			result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
			observe(operation, start, err)
			if err != nil {
				return struct{}{}, fmt.Errorf("%s delete failed: %w", operation, err)
			}
			if result.DeletedCount == 0 {
				return struct{}{}, ErrNotFound
			}
			return struct{}{}, nil
		})
	return err
}

// =============================================================================
// Artists
// =============================================================================

func (r *Repository) ListArtists(ctx context.Context, opts ListOptions) ([]Artist, error) {
	return listDocs[Artist](r, ctx, store.CollectionArtists, "artists.list", "name", bson.M{}, opts)
}

func (r *Repository) GetArtist(ctx context.Context, id string) (*Artist, error) {
	return getDoc[Artist](r, ctx, store.CollectionArtists, "artists.get", id)
}

func (r *Repository) CreateArtist(ctx context.Context, artist *Artist) error {
	if err := artist.Validate(); err != nil {
		return err
	}
	stampNew(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	return insertDoc(r, ctx, store.CollectionArtists, "artists.create", artist)
}

func (r *Repository) UpdateArtist(ctx context.Context, id string, artist *Artist) error {
	if err := artist.Validate(); err != nil {
		return err
	}
	artist.ID = id
	artist.UpdatedAt = time.Now().UTC()
	return replaceDoc(r, ctx, store.CollectionArtists, "artists.update", id, artist)
}

func (r *Repository) DeleteArtist(ctx context.Context, id string) error {
	return deleteDoc(r, ctx, store.CollectionArtists, "artists.delete", id)
}

// =============================================================================
// Albums
// =============================================================================

// ListAlbums lists albums, optionally filtered to one artist.
func (r *Repository) ListAlbums(ctx context.Context, artistID string, opts ListOptions) ([]Album, error) {
	filter := bson.M{}
	if artistID != "" {
		filter["artistId"] = artistID
	}
	return listDocs[Album](r, ctx, store.CollectionAlbums, "albums.list", "title", filter, opts)
}

func (r *Repository) GetAlbum(ctx context.Context, id string) (*Album, error) {
	return getDoc[Album](r, ctx, store.CollectionAlbums, "albums.get", id)
}

func (r *Repository) CreateAlbum(ctx context.Context, album *Album) error {
	if err := album.Validate(); err != nil {
		return err
	}
	stampNew(&album.ID, &album.CreatedAt, &album.UpdatedAt)
	return insertDoc(r, ctx, store.CollectionAlbums, "albums.create", album)
}

func (r *Repository) UpdateAlbum(ctx context.Context, id string, album *Album) error {
	if err := album.Validate(); err != nil {
		return err
	}
	album.ID = id
	album.UpdatedAt = time.Now().UTC()
	return replaceDoc(r, ctx, store.CollectionAlbums, "albums.update", id, album)
}

func (r *Repository) DeleteAlbum(ctx context.Context, id string) error {
	return deleteDoc(r, ctx, store.CollectionAlbums, "albums.delete", id)
}

// =============================================================================
// Songs
// =============================================================================

// ListSongs lists songs, optionally filtered to one album.
func (r *Repository) ListSongs(ctx context.Context, albumID string, opts ListOptions) ([]Song, error) {
	filter := bson.M{}
	if albumID != "" {
		filter["albumId"] = albumID
	}
	return listDocs[Song](r, ctx, store.CollectionSongs, "songs.list", "trackNumber", filter, opts)
}

func (r *Repository) GetSong(ctx context.Context, id string) (*Song, error) {
	return getDoc[Song](r, ctx, store.CollectionSongs, "songs.get", id)
}

func (r *Repository) CreateSong(ctx context.Context, song *Song) error {
	if err := song.Validate(); err != nil {
		return err
	}
	stampNew(&song.ID, &song.CreatedAt, &song.UpdatedAt)
	return insertDoc(r, ctx, store.CollectionSongs, "songs.create", song)
}

func (r *Repository) UpdateSong(ctx context.Context, id string, song *Song) error {
	if err := song.Validate(); err != nil {
		return err
	}
	song.ID = id
	song.UpdatedAt = time.Now().UTC()
	return replaceDoc(r, ctx, store.CollectionSongs, "songs.update", id, song)
}

func (r *Repository) DeleteSong(ctx context.Context, id string) error {
	return deleteDoc(r, ctx, store.CollectionSongs, "songs.delete", id)
}

// =============================================================================
// Playlists
// =============================================================================

func (r *Repository) ListPlaylists(ctx context.Context, opts ListOptions) ([]Playlist, error) {
	return listDocs[Playlist](r, ctx, store.CollectionPlaylists, "playlists.list", "name", bson.M{}, opts)
}

func (r *Repository) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	return getDoc[Playlist](r, ctx, store.CollectionPlaylists, "playlists.get", id)
}

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *Playlist) error {
	if err := playlist.Validate(); err != nil {
		return err
	}
	if playlist.SongIDs == nil {
		playlist.SongIDs = []string{}
	}
	stampNew(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	return insertDoc(r, ctx, store.CollectionPlaylists, "playlists.create", playlist)
}

func (r *Repository) UpdatePlaylist(ctx context.Context, id string, playlist *Playlist) error {
	if err := playlist.Validate(); err != nil {
		return err
	}
	playlist.ID = id
	playlist.UpdatedAt = time.Now().UTC()
	return replaceDoc(r, ctx, store.CollectionPlaylists, "playlists.update", id, playlist)
}

func (r *Repository) DeletePlaylist(ctx context.Context, id string) error {
	return deleteDoc(r, ctx, store.CollectionPlaylists, "playlists.delete", id)
}

// AddSongToPlaylist appends a song reference to a playlist.
func (r *Repository) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	_, err := store.ExecuteWithRetry(ctx, store.DefaultRetryConfig("playlists.addSong"),
		func(ctx context.Context) (struct{}, error) {
			coll, err := r.collection(store.CollectionPlaylists)
			if err != nil {
				return struct{}{}, err
			}

			start := time.Now()
			result, err := coll.UpdateOne(ctx,
				bson.M{"_id": playlistID},
				bson.M{
					"$push": bson.M{"songIds": songID},
					"$set":  bson.M{"updatedAt": time.Now().UTC()},
				})
			observe("playlists.addSong", start, err)
			if err != nil {
				return struct{}{}, fmt.Errorf("playlists.addSong update failed: %w", err)
			}
			if result.MatchedCount == 0 {
				return struct{}{}, ErrNotFound
			}
			return struct{}{}, nil
		})
	return err
}

// =============================================================================
// Bulk inserts (admin)
// =============================================================================

// BulkCounts reports how many documents each bulk insert stored.
type BulkCounts struct {
	Artists int `json:"artists"`
	Albums  int `json:"albums"`
	Songs   int `json:"songs"`
}

// BulkInsert stores a catalog drop in one call, used by the admin bulk
// endpoint. Each collection is inserted separately; a failure aborts the
// remaining collections but already-inserted documents stay.
func (r *Repository) BulkInsert(ctx context.Context, artists []Artist, albums []Album, songs []Song) (BulkCounts, error) {
	var counts BulkCounts

	now := time.Now().UTC()
	artistDocs := make([]interface{}, len(artists))
	for i := range artists {
		stampBulk(&artists[i].ID, &artists[i].CreatedAt, &artists[i].UpdatedAt, now)
		artistDocs[i] = artists[i]
	}
	albumDocs := make([]interface{}, len(albums))
	for i := range albums {
		stampBulk(&albums[i].ID, &albums[i].CreatedAt, &albums[i].UpdatedAt, now)
		albumDocs[i] = albums[i]
	}
	songDocs := make([]interface{}, len(songs))
	for i := range songs {
		stampBulk(&songs[i].ID, &songs[i].CreatedAt, &songs[i].UpdatedAt, now)
		songDocs[i] = songs[i]
	}

	n, err := r.insertMany(ctx, store.CollectionArtists, "artists.bulk", artistDocs)
	counts.Artists = n
	if err != nil {
		return counts, err
	}
	n, err = r.insertMany(ctx, store.CollectionAlbums, "albums.bulk", albumDocs)
	counts.Albums = n
	if err != nil {
		return counts, err
	}
	n, err = r.insertMany(ctx, store.CollectionSongs, "songs.bulk", songDocs)
	counts.Songs = n
	return counts, err
}

func (r *Repository) insertMany(ctx context.Context, collName, operation string, docs []interface{}) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	return store.ExecuteWithRetry(ctx, store.DefaultRetryConfig(operation),
		func(ctx context.Context) (int, error) {
			coll, err := r.collection(collName)
			if err != nil {
				return 0, err
			}

			start := time.Now()
			result, err := coll.InsertMany(ctx, docs)
			observe(operation, start, err)
			if err != nil {
				return 0, fmt.Errorf("%s insert failed: %w", operation, err)
			}
			return len(result.InsertedIDs), nil
		})
}

// stampNew assigns a fresh id and creation timestamps.
func stampNew(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}

// stampBulk is stampNew with a shared timestamp for whole-batch inserts.
func stampBulk(id *string, createdAt, updatedAt *time.Time, now time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
