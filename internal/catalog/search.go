package catalog

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"soundstash/internal/store"
)

// SearchResults groups full-text matches per entity type.
type SearchResults struct {
	Artists []Artist `json:"artists"`
	Albums  []Album  `json:"albums"`
	Songs   []Song   `json:"songs"`
}

// searchLimit caps results per entity type for one query.
const searchLimit = 25

// buildSearchFilter turns a free-text query into a per-field regex
// AND-match: the query is split on whitespace and every token must match
// the field, case-insensitively. An empty query matches nothing.
func buildSearchFilter(field, query string) bson.M {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil
	}

	clauses := make([]bson.M, len(tokens))
	for i, token := range tokens {
		clauses[i] = bson.M{field: bson.M{"$regex": token, "$options": "i"}}
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return bson.M{"$and": clauses}
}

// Search scans artists, albums and songs for the query. This is a full
// collection scan per entity type; the catalog is small enough that the
// simplicity wins over maintaining text indexes.
func (r *Repository) Search(ctx context.Context, query string) (*SearchResults, error) {
	results := &SearchResults{
		Artists: []Artist{},
		Albums:  []Album{},
		Songs:   []Song{},
	}

	onePage := ListOptions{Page: 1, PageSize: searchLimit}

	if filter := buildSearchFilter("name", query); filter != nil {
		artists, err := listDocs[Artist](r, ctx, store.CollectionArtists, "artists.search", "name", filter, onePage)
		if err != nil {
			return nil, err
		}
		results.Artists = artists
	}

	if filter := buildSearchFilter("title", query); filter != nil {
		albums, err := listDocs[Album](r, ctx, store.CollectionAlbums, "albums.search", "title", filter, onePage)
		if err != nil {
			return nil, err
		}
		results.Albums = albums

		songs, err := listDocs[Song](r, ctx, store.CollectionSongs, "songs.search", "title", filter, onePage)
		if err != nil {
			return nil, err
		}
		results.Songs = songs
	}

	return results, nil
}
