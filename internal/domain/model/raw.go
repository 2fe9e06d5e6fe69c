package model

// RawPersonSummary is a person as returned by an upstream search or
// popularity listing.
type RawPersonSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ProfilePath *string `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
}

// RawCredit is one cast credit from the upstream person record.
type RawCredit struct {
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// RawMovieCredits wraps the cast list of a person record.
type RawMovieCredits struct {
	Cast []RawCredit `json:"cast"`
}

// RawPerson is a detailed upstream person record with credits appended.
type RawPerson struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Birthday     string          `json:"birthday"`
	Biography    string          `json:"biography"`
	PlaceOfBirth string          `json:"place_of_birth"`
	ProfilePath  *string         `json:"profile_path"`
	MovieCredits RawMovieCredits `json:"movie_credits"`
}

// RawEnrichment carries per-title enrichment. BoxOffice is free text such as
// "$2,187,463,944" or "N/A".
type RawEnrichment struct {
	Title     string `json:"Title"`
	Year      string `json:"Year"`
	BoxOffice string `json:"BoxOffice"`
	Rating    string `json:"imdbRating"`
}

// Summary converts a raw listing entry to the domain summary.
func (p RawPersonSummary) Summary() ActorSummary {
	return ActorSummary{
		ID:              p.ID,
		Name:            p.Name,
		ProfileImageRef: p.ProfilePath,
		Popularity:      p.Popularity,
	}
}
