package catalog

import "telegram-movie-bot/internal/domain/model"

// Seed returns the built-in catalog used when no external source is
// configured.
func Seed() []*model.Movie {
	return []*model.Movie{
		{
			Title:       "Kalki 2898 AD",
			PosterURL:   "https://example.com/posters/kalki_2898_ad.jpg",
			Description: "A modern-day avatar of Vishnu is said to descend to end the evil forces in a dystopian future.",
			Rating:      "⭐ 8.3",
			Genres:      []string{"Action", "Sci-Fi"},
			Tags:        []string{"#Action", "#Epic", "#Mythology"},
			ReleaseYear: 2024,
			Source:      "Netflix",
			Trending:    true,
			NewRelease:  true,
			TopRated:    true,
			BestOfYear:  2024,
		},
		{
			Title:       "Stree 2",
			PosterURL:   "https://example.com/posters/stree_2.jpg",
			Description: "The town of Chanderi is haunted again, this time by a headless terror named Sarkata.",
			Rating:      "⭐ 7.6",
			Genres:      []string{"Comedy", "Horror"},
			Tags:        []string{"#Comedy", "#Horror"},
			ReleaseYear: 2024,
			Source:      "Prime Video",
			Trending:    true,
			NewRelease:  true,
			Comedy:      true,
			BestOfYear:  2024,
		},
		{
			Title:       "Dune: Part Two",
			PosterURL:   "https://example.com/posters/dune_part_two.jpg",
			Description: "Paul Atreides unites with the Fremen while on a path of revenge against the conspirators who destroyed his family.",
			Rating:      "⭐ 8.5",
			Genres:      []string{"Sci-Fi", "Adventure"},
			Tags:        []string{"#SciFi", "#Epic", "#Adventure"},
			ReleaseYear: 2024,
			Source:      "Max",
			TrailerURL:  "https://www.youtube.com/watch?v=Way9Dexny3w",
			Trending:    true,
			TopRated:    true,
			BestOfYear:  2024,
		},
		{
			Title:       "Hawa",
			PosterURL:   "https://example.com/posters/hawa.jpg",
			Description: "A fishing trawler crew catches a mysterious woman in their net, and nothing aboard stays the same.",
			Rating:      "⭐ 7.9",
			Genres:      []string{"Drama", "Thriller"},
			Tags:        []string{"#Drama", "#Mystery", "#Bangla"},
			ReleaseYear: 2022,
			Source:      "Chorki",
			TopRated:    true,
		},
		{
			Title:       "Priyotoma",
			PosterURL:   "https://example.com/posters/priyotoma.jpg",
			Description: "A love story that spans years of longing, loss and a second chance.",
			Rating:      "⭐ 7.2",
			Genres:      []string{"Romance", "Drama"},
			Tags:        []string{"#Romance", "#Bangla"},
			ReleaseYear: 2023,
			Source:      "Bioscope",
			NewRelease:  true,
			BestOfYear:  2023,
		},
		{
			Title:       "3 Idiots",
			PosterURL:   "https://example.com/posters/3_idiots.jpg",
			Description: "Two friends search for their long lost companion and revisit their college days.",
			Rating:      "⭐ 8.4",
			Genres:      []string{"Comedy", "Drama"},
			Tags:        []string{"#Comedy", "#Classic", "#College"},
			ReleaseYear: 2009,
			Source:      "Netflix",
			TopRated:    true,
			Comedy:      true,
			BestOfYear:  2009,
		},
		{
			Title:       "Kalki",
			PosterURL:   "https://example.com/posters/kalki_2019.jpg",
			Description: "A police officer arrives in a small town to investigate a murder tied to a powerful local family.",
			Rating:      "⭐ 7.8",
			Genres:      []string{"Action", "Drama"},
			Tags:        []string{"#Drama", "#Classic", "#Historical"},
			ReleaseYear: 2019,
			Source:      "Hotstar",
		},
	}
}
