// Package search provides full-text movie search using Bleve.
// Titles and overviews are indexed with English stemming and fuzzy
// matching so catalog lookups tolerate typos.
package search

import "github.com/apurvavyas7/CineSuggest/internal/domain"

// MovieDocument is the document structure for the Bleve index.
//
// Genre and language names are denormalized into each movie document so a
// single query can match and filter without touching the database.
type MovieDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Overview string `json:"overview"`

	// Denormalized taxonomy names for exact-match filtering.
	Genres    []string `json:"genres,omitempty"`
	Languages []string `json:"languages,omitempty"`

	Rating float64 `json:"rating"`

	// Unix millis, used for "recent" sorting.
	CreatedAt int64 `json:"created_at"`
}

// NewMovieDocument builds an index document from a movie and its resolved
// genre and language names.
func NewMovieDocument(m *domain.Movie, genreNames, languageNames []string) *MovieDocument {
	return &MovieDocument{
		ID:        m.ID,
		Title:     m.Title,
		Overview:  m.Overview,
		Genres:    genreNames,
		Languages: languageNames,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve defaults to Go struct field names (capitalized), but the index
// mapping uses lowercase names, so we convert explicitly.
func (d *MovieDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"rating":     d.Rating,
		"created_at": d.CreatedAt,
	}
	if d.Overview != "" {
		m["overview"] = d.Overview
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if len(d.Languages) > 0 {
		m["languages"] = d.Languages
	}
	return m
}
