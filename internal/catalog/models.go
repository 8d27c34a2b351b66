package catalog

import (
	"errors"
	"fmt"
	"time"
)

// Artist is a performing artist or band.
type Artist struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Genres    []string  `bson:"genres,omitempty" json:"genres,omitempty"`
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	ImageURL  string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Album is a released collection of songs.
type Album struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	ArtistID  string    `bson:"artistId" json:"artistId"`
	Year      int       `bson:"year,omitempty" json:"year,omitempty"`
	Genre     string    `bson:"genre,omitempty" json:"genre,omitempty"`
	CoverURL  string    `bson:"coverUrl,omitempty" json:"coverUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Song is a single track with references to its media binaries.
type Song struct {
	ID              string    `bson:"_id" json:"id"`
	Title           string    `bson:"title" json:"title"`
	AlbumID         string    `bson:"albumId,omitempty" json:"albumId,omitempty"`
	ArtistID        string    `bson:"artistId" json:"artistId"`
	TrackNumber     int       `bson:"trackNumber,omitempty" json:"trackNumber,omitempty"`
	DurationSeconds int       `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	AudioURL        string    `bson:"audioUrl,omitempty" json:"audioUrl,omitempty"`
	SnippetURL      string    `bson:"snippetUrl,omitempty" json:"snippetUrl,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Playlist is an ordered list of song references.
type Playlist struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	SongIDs     []string  `bson:"songIds" json:"songIds"`
	CoverURL    string    `bson:"coverUrl,omitempty" json:"coverUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ErrValidation wraps all model validation failures.
var ErrValidation = errors.New("validation failed")

// Validate checks the fields a client must supply.
func (a *Artist) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: artist name is required", ErrValidation)
	}
	return nil
}

// Validate checks the fields a client must supply.
func (a *Album) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("%w: album title is required", ErrValidation)
	}
	if a.ArtistID == "" {
		return fmt.Errorf("%w: album artistId is required", ErrValidation)
	}
	return nil
}

// Validate checks the fields a client must supply.
func (s *Song) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("%w: song title is required", ErrValidation)
	}
	if s.ArtistID == "" {
		return fmt.Errorf("%w: song artistId is required", ErrValidation)
	}
	return nil
}

// Validate checks the fields a client must supply.
func (p *Playlist) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: playlist name is required", ErrValidation)
	}
	return nil
}
