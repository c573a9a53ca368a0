package catalog

import (
	"strings"

	"telegram-movie-bot/internal/domain/model"
)

// movieDoc is the stored shape of a movie, shared by the YAML and Mongo
// sources.
type movieDoc struct {
	Title       string   `yaml:"title" bson:"title"`
	PosterURL   string   `yaml:"poster_url" bson:"poster_url"`
	Description string   `yaml:"description" bson:"description"`
	Rating      string   `yaml:"rating" bson:"rating"`
	Genres      []string `yaml:"genre" bson:"genre"`
	Tags        []string `yaml:"tags" bson:"tags"`
	ReleaseYear int      `yaml:"release_year" bson:"release_year"`
	Source      string   `yaml:"source" bson:"source"`
	TrailerURL  string   `yaml:"trailer_link" bson:"trailer_link"`
	Trending    bool     `yaml:"trending" bson:"trending"`
	NewRelease  bool     `yaml:"new_release" bson:"new_release"`
	TopRated    bool     `yaml:"top_rated" bson:"top_rated"`
	Comedy      bool     `yaml:"comedy" bson:"comedy"`
	BestOfYear  int      `yaml:"year_best" bson:"year_best"`
}

func (d movieDoc) toModel() *model.Movie {
	return &model.Movie{
		Title:       strings.TrimSpace(d.Title),
		PosterURL:   d.PosterURL,
		Description: d.Description,
		Rating:      d.Rating,
		Genres:      d.Genres,
		Tags:        d.Tags,
		ReleaseYear: d.ReleaseYear,
		Source:      d.Source,
		TrailerURL:  d.TrailerURL,
		Trending:    d.Trending,
		NewRelease:  d.NewRelease,
		TopRated:    d.TopRated,
		Comedy:      d.Comedy,
		BestOfYear:  d.BestOfYear,
	}
}

// toModels drops untitled documents; everything else is kept in order.
func toModels(docs []movieDoc) []*model.Movie {
	out := make([]*model.Movie, 0, len(docs))
	for _, d := range docs {
		m := d.toModel()
		if m.Title == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
