package handlers

import (
	"context"
	"time"

	"soundstash/internal/blob"
	"soundstash/internal/cache"
	"soundstash/internal/catalog"
)

// Catalog is the repository capability the entity handlers consume.
// *catalog.Repository satisfies it; tests substitute fakes.
type Catalog interface {
	ListArtists(ctx context.Context, opts catalog.ListOptions) ([]catalog.Artist, error)
	GetArtist(ctx context.Context, id string) (*catalog.Artist, error)
	CreateArtist(ctx context.Context, artist *catalog.Artist) error
	UpdateArtist(ctx context.Context, id string, artist *catalog.Artist) error
	DeleteArtist(ctx context.Context, id string) error

	ListAlbums(ctx context.Context, artistID string, opts catalog.ListOptions) ([]catalog.Album, error)
	GetAlbum(ctx context.Context, id string) (*catalog.Album, error)
	CreateAlbum(ctx context.Context, album *catalog.Album) error
	UpdateAlbum(ctx context.Context, id string, album *catalog.Album) error
	DeleteAlbum(ctx context.Context, id string) error

	ListSongs(ctx context.Context, albumID string, opts catalog.ListOptions) ([]catalog.Song, error)
	GetSong(ctx context.Context, id string) (*catalog.Song, error)
	CreateSong(ctx context.Context, song *catalog.Song) error
	UpdateSong(ctx context.Context, id string, song *catalog.Song) error
	DeleteSong(ctx context.Context, id string) error

	ListPlaylists(ctx context.Context, opts catalog.ListOptions) ([]catalog.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (*catalog.Playlist, error)
	CreatePlaylist(ctx context.Context, playlist *catalog.Playlist) error
	UpdatePlaylist(ctx context.Context, id string, playlist *catalog.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	AddSongToPlaylist(ctx context.Context, playlistID, songID string) error

	Search(ctx context.Context, query string) (*catalog.SearchResults, error)
	BulkInsert(ctx context.Context, artists []catalog.Artist, albums []catalog.Album, songs []catalog.Song) (catalog.BulkCounts, error)
}

// StoreGuard is the connection-guard capability. *store.Store satisfies it.
type StoreGuard interface {
	IsConnected() bool
	TestConnection(ctx context.Context) bool
	PingRTT(ctx context.Context) (time.Duration, error)
	CollectionCounts(ctx context.Context) (map[string]int64, error)
}

// MediaCache resolves image bytes through the cache tiers.
// *cache.Tiered satisfies it.
type MediaCache interface {
	GetImage(ctx context.Context, sourceURL string) (*cache.ImageResult, error)
}

// CacheAdmin exposes the distributed tier's operational surface.
// *cache.RedisCache satisfies it.
type CacheAdmin interface {
	Ping(ctx context.Context) error
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
	ClearNamespace(ctx context.Context, pattern string) (int, error)
}

// Handlers carries the injected collaborators for every HTTP handler.
type Handlers struct {
	catalog    Catalog
	guard      StoreGuard
	media      MediaCache
	cacheAdmin CacheAdmin
	blobs      blob.Client
	startTime  time.Time
}

// New wires up the handler set.
func New(catalog Catalog, guard StoreGuard, media MediaCache, cacheAdmin CacheAdmin, blobs blob.Client) *Handlers {
	return &Handlers{
		catalog:    catalog,
		guard:      guard,
		media:      media,
		cacheAdmin: cacheAdmin,
		blobs:      blobs,
		startTime:  time.Now(),
	}
}
