// Package query parses inline search text into a single tagged predicate and
// filters catalog records with it.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"telegram-movie-bot/internal/domain"
	"telegram-movie-bot/internal/domain/model"
)

type Kind int

const (
	KindTitle Kind = iota
	KindNew
	KindTrending
	KindTopRated
	KindComedy
	KindBestOf
	KindGenre
	KindSource
	KindTag
)

var kindNames = map[Kind]string{
	KindTitle:    "title",
	KindNew:      "new",
	KindTrending: "trending",
	KindTopRated: "top_rated",
	KindComedy:   "comedy",
	KindBestOf:   "best_of",
	KindGenre:    "genre",
	KindSource:   "source",
	KindTag:      "tag",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

const (
	prefixBestOf = "best of"
	prefixGenre  = "genre:"
	prefixSource = "source:"
	prefixTag    = "tag:"
)

// ErrInvalidYear is returned for "best of <x>" when <x> is not an integer.
var ErrInvalidYear = fmt.Errorf("%w: best of expects a year", domain.ErrInvalidArgument)

// Query is one resolved predicate. Only the field relevant to Kind is set.
type Query struct {
	Kind  Kind
	Text  string // title substring, genre, source or tag value
	Year  int
	lower string
}

// Parse resolves free text into a Query. Keywords are matched
// case-insensitively in this order: new, trending, top rated, comedy,
// "best of <year>", "genre:", "source:", "tag:"; anything else is a title
// search.
func Parse(raw string) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	lower := strings.ToLower(text)

	switch lower {
	case "new":
		return Query{Kind: KindNew}, nil
	case "trending":
		return Query{Kind: KindTrending}, nil
	case "top rated":
		return Query{Kind: KindTopRated}, nil
	case "comedy":
		return Query{Kind: KindComedy}, nil
	}

	switch {
	case isBestOf(lower):
		fields := strings.Fields(text)
		last := fields[len(fields)-1]
		year, err := strconv.Atoi(last)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %q", ErrInvalidYear, last)
		}
		return Query{Kind: KindBestOf, Year: year}, nil
	case strings.HasPrefix(lower, prefixGenre):
		return valueQuery(KindGenre, text[len(prefixGenre):])
	case strings.HasPrefix(lower, prefixSource):
		return valueQuery(KindSource, text[len(prefixSource):])
	case strings.HasPrefix(lower, prefixTag):
		return valueQuery(KindTag, text[len(prefixTag):])
	}

	return Query{Kind: KindTitle, Text: text, lower: lower}, nil
}

// isBestOf requires "best of" to stand alone as words, so titles such as
// "Best Offer" stay title searches.
func isBestOf(lower string) bool {
	rest, ok := strings.CutPrefix(lower, prefixBestOf)
	if !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return rest == "" || unicode.IsSpace(r)
}

func valueQuery(kind Kind, v string) (Query, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Query{}, fmt.Errorf("%w: %s needs a value", domain.ErrInvalidArgument, kind)
	}
	return Query{Kind: kind, Text: v, lower: strings.ToLower(v)}, nil
}

// Match reports whether m satisfies the query's single predicate.
func (q Query) Match(m *model.Movie) bool {
	switch q.Kind {
	case KindNew:
		return m.NewRelease
	case KindTrending:
		return m.Trending
	case KindTopRated:
		return m.TopRated
	case KindComedy:
		return m.Comedy
	case KindBestOf:
		return m.BestOfYear != 0 && m.BestOfYear == q.Year
	case KindGenre:
		return m.HasGenre(q.Text)
	case KindSource:
		return strings.Contains(strings.ToLower(m.Source), q.lowerText())
	case KindTag:
		return m.HasTag(q.Text)
	case KindTitle:
		return strings.Contains(strings.ToLower(m.Title), q.lowerText())
	}
	return false
}

func (q Query) lowerText() string {
	if q.lower != "" {
		return q.lower
	}
	return strings.ToLower(q.Text)
}

// Filter returns the movies matching q in their original order.
func Filter(movies []*model.Movie, q Query) []*model.Movie {
	out := make([]*model.Movie, 0)
	for _, m := range movies {
		if q.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// IsInvalid reports whether err came from malformed query text rather than
// an empty one.
func IsInvalid(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument)
}
