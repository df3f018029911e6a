// Package recommend ranks catalog movies against a user's taste profile.
//
// The ranking is a weighted genre-intersection: genres the user picked
// directly weigh 10 points each, genres inferred from the movies the user
// liked weigh 5. Only movies in the user's preferred languages are
// considered, liked movies are never re-recommended, and zero-score
// candidates are dropped.
package recommend

import (
	"sort"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
)

// Score weights for direct and seed genre matches.
const (
	DirectGenreWeight = 10
	SeedGenreWeight   = 5
)

// Scored pairs a movie with its relevance score.
type Scored struct {
	Movie *domain.Movie `json:"movie"`
	Score int           `json:"score"`
}

// Rank scores every catalog movie against the given preferences and returns
// the positive-scoring candidates, highest first. Ties are broken by movie
// ID ascending so the ordering is stable across runs.
//
// An empty preferred-language set yields an empty result; there is no
// fallback to "all languages".
func Rank(catalog []*domain.Movie, prefs domain.Preferences) []Scored {
	if len(prefs.LanguageIDs) == 0 {
		return nil
	}

	preferredLangs := toSet(prefs.LanguageIDs)
	preferredGenres := toSet(prefs.GenreIDs)
	liked := toSet(prefs.LikedIDs)

	// Seed genres are the union of genres over liked movies.
	seedGenres := make(map[string]struct{})
	for _, m := range catalog {
		if _, ok := liked[m.ID]; !ok {
			continue
		}
		for _, g := range m.GenreIDs {
			seedGenres[g] = struct{}{}
		}
	}

	var ranked []Scored
	for _, m := range catalog {
		if !intersects(m.LanguageIDs, preferredLangs) {
			continue
		}
		if _, ok := liked[m.ID]; ok {
			continue
		}

		score := DirectGenreWeight*countIn(m.GenreIDs, preferredGenres) +
			SeedGenreWeight*countIn(m.GenreIDs, seedGenres)
		if score == 0 {
			continue
		}
		ranked = append(ranked, Scored{Movie: m, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Movie.ID < ranked[j].Movie.ID
	})
	return ranked
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func intersects(ids []string, set map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func countIn(ids []string, set map[string]struct{}) int {
	n := 0
	for _, id := range ids {
		if _, ok := set[id]; ok {
			n++
		}
	}
	return n
}
