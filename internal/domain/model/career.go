// Package model contains domain models passed between layers.
package model

// MaxCredits bounds the number of source credits considered per actor.
const MaxCredits = 15

// MovieCredit is one film in an actor's filmography.
type MovieCredit struct {
	Title string `json:"title"`
	// Year is nil when the release date could not be parsed.
	Year              *int    `json:"year"`
	Rating            float64 `json:"rating"`
	BoxOfficeMillions float64 `json:"box_office"`
}

// HasYear reports whether the credit carries a known release year.
func (m MovieCredit) HasYear() bool { return m.Year != nil }

// YearOrZero returns the release year, or 0 when unknown.
func (m MovieCredit) YearOrZero() int {
	if m.Year == nil {
		return 0
	}
	return *m.Year
}

// ActorCareer is the normalized, immutable view of an actor. Instances are
// shared by pointer between the cache and every caller; never mutate one
// after construction.
type ActorCareer struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	// CareerStartYear is nil when neither a credit year nor a birth year is known.
	CareerStartYear *int          `json:"career_start"`
	Credits         []MovieCredit `json:"movies"`
	EstimatedAwards int           `json:"awards"`
	Genres          []string      `json:"genres"`
	Biography       string        `json:"biography"`
	PlaceOfBirth    string        `json:"place_of_birth"`
	ProfileImageRef *string       `json:"profile_image"`
}

// TotalMovies returns the number of retained credits.
func (a *ActorCareer) TotalMovies() int { return len(a.Credits) }

// ActorSummary is a search or popularity listing entry.
type ActorSummary struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	ProfileImageRef *string `json:"profile_image"`
	Popularity      float64 `json:"popularity"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
