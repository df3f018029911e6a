package domain

// DefaultPoster is served when a movie has no uploaded poster.
const DefaultPoster = "default_poster.jpg"

// Movie is a catalog entry. Genres and languages are many-to-many; the
// ID slices are always loaded alongside the row.
type Movie struct {
	Record
	Title          string   `json:"title"`
	Overview       string   `json:"overview,omitempty"`
	PosterPath     string   `json:"poster_path"`
	PosterBlurHash string   `json:"poster_blurhash,omitempty"`
	Rating         float64  `json:"rating"`
	GenreIDs       []string `json:"genre_ids"`
	LanguageIDs    []string `json:"language_ids"`
}

// HasLanguage reports whether the movie is available in the given language.
func (m *Movie) HasLanguage(languageID string) bool {
	for _, id := range m.LanguageIDs {
		if id == languageID {
			return true
		}
	}
	return false
}

// HasGenre reports whether the movie carries the given genre.
func (m *Movie) HasGenre(genreID string) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
