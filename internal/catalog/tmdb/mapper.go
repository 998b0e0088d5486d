package tmdb

import "github.com/mmcdole/reel/internal/domain"

// MapMovie converts a catalog movie to a domain Movie.
func MapMovie(d MovieDTO) domain.Movie {
	return domain.Movie{
		ID:               d.ID,
		Title:            d.Title,
		OriginalTitle:    d.OriginalTitle,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		ReleaseDate:      d.ReleaseDate,
		OriginalLanguage: d.OriginalLanguage,
		Popularity:       d.Popularity,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
	}
}

// MapMovies converts a result list, preserving catalog order.
func MapMovies(dtos []MovieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, MapMovie(d))
	}
	return movies
}
