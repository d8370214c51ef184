package data

import "strings"

// MovieSummary is one row of the listing screen: display-ready fields
// derived from a movie and the stored genre collection.
type MovieSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Genres      string  `json:"genres"`
	ReleaseDate string  `json:"releaseDate"`
	Popularity  int32   `json:"popularity"`
	MeanRating  float64 `json:"meanRating"`
	RatingCount int64   `json:"ratingCount"`
}

// ResolveGenreNames renders genre IDs as a display string: the matching
// names joined with ", " in the order the IDs are given. An ID with no
// matching genre renders as "Unknown"; an empty ID list renders as
// "No genre".
func ResolveGenreNames(ids []int64, genres []*Genre) string {
	if len(ids) == 0 {
		return "No genre"
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name := "Unknown"
		for _, genre := range genres {
			if genre.ID == id {
				name = genre.Name
				break
			}
		}
		names = append(names, name)
	}

	return strings.Join(names, ", ")
}

// FormatReleaseDate reformats an ISO "YYYY-MM-DD" date as "DD/MM/YYYY".
// Input that does not split into three hyphen-separated parts is
// returned unchanged.
func FormatReleaseDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// Summarize builds the listing row for a movie against the stored genre
// collection.
func Summarize(movie *Movie, genres []*Genre) MovieSummary {
	return MovieSummary{
		ID:          movie.ID,
		Title:       movie.Title,
		Genres:      ResolveGenreNames(movie.GenreIDs, genres),
		ReleaseDate: FormatReleaseDate(movie.ReleaseDate.String()),
		Popularity:  movie.Popularity,
		MeanRating:  movie.MeanRating(),
		RatingCount: movie.RatingCount,
	}
}
