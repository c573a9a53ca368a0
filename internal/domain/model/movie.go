package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Movie is a single catalog record. Title is the lookup key; uniqueness is
// assumed by the catalog but never enforced.
type Movie struct {
	Title       string
	PosterURL   string
	Description string
	Rating      string // display value, e.g. "⭐ 8.3"
	Genres      []string
	Tags        []string
	ReleaseYear int
	Source      string
	TrailerURL  string

	Trending   bool
	NewRelease bool
	TopRated   bool
	Comedy     bool
	BestOfYear int // 0 when the movie is not a "best of" pick
}

// HasGenre reports exact, case-sensitive membership in the genre set.
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// HasTag matches hashtags case-insensitively; the leading '#' is optional on
// both sides.
func (m *Movie) HasTag(tag string) bool {
	want := normalizeTag(tag)
	if want == "" {
		return false
	}
	for _, t := range m.Tags {
		if normalizeTag(t) == want {
			return true
		}
	}
	return false
}

// TrailerLink returns the explicit trailer URL, or a YouTube search for
// "<title> <year> trailer" when none is set.
func (m *Movie) TrailerLink() string {
	if m.TrailerURL != "" {
		return m.TrailerURL
	}
	q := m.Title
	if m.ReleaseYear > 0 && !strings.Contains(m.Title, strconv.Itoa(m.ReleaseYear)) {
		q += " " + strconv.Itoa(m.ReleaseYear)
	}
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(q+" trailer")
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
}
