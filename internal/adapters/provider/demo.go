package provider

import (
	"strings"

	"github.com/okian/careerlens/internal/domain/model"
)

const notAvailable = "N/A"

var demoPeople = []model.RawPersonSummary{
	{ID: 1, Name: "Leonardo DiCaprio"},
	{ID: 2, Name: "Emma Stone"},
	{ID: 3, Name: "Ryan Gosling"},
	{ID: 4, Name: "Scarlett Johansson"},
}

var demoDetails = map[int]model.RawPerson{
	1: {
		ID:           1,
		Name:         "Leonardo DiCaprio",
		Birthday:     "1974-11-11",
		PlaceOfBirth: "Los Angeles, California, USA",
		MovieCredits: model.RawMovieCredits{Cast: []model.RawCredit{
			{Title: "Titanic", ReleaseDate: "1997-12-19", VoteAverage: 7.9},
			{Title: "Inception", ReleaseDate: "2010-07-16", VoteAverage: 8.8},
			{Title: "The Revenant", ReleaseDate: "2015-12-25", VoteAverage: 8.0},
			{Title: "The Wolf of Wall Street", ReleaseDate: "2013-12-25", VoteAverage: 8.2},
		}},
	},
	2: {
		ID:           2,
		Name:         "Emma Stone",
		Birthday:     "1988-11-06",
		PlaceOfBirth: "Scottsdale, Arizona, USA",
		MovieCredits: model.RawMovieCredits{Cast: []model.RawCredit{
			{Title: "La La Land", ReleaseDate: "2016-12-09", VoteAverage: 8.0},
			{Title: "Easy A", ReleaseDate: "2010-09-17", VoteAverage: 7.0},
			{Title: "The Help", ReleaseDate: "2011-08-10", VoteAverage: 8.1},
			{Title: "Birdman", ReleaseDate: "2014-10-17", VoteAverage: 7.7},
		}},
	},
}

var demoMovies = map[string]model.RawEnrichment{
	"Titanic":    {Title: "Titanic", BoxOffice: "$2,187,463,944", Rating: "7.9"},
	"Inception":  {Title: "Inception", BoxOffice: "$829,895,144", Rating: "8.8"},
	"La La Land": {Title: "La La Land", BoxOffice: "$448,966,635", Rating: "8.0"},
	"Easy A":     {Title: "Easy A", BoxOffice: "$75,046,427", Rating: "7.0"},
}

// demoSearch matches the query as a case-insensitive substring of the name.
func demoSearch(query string) []model.RawPersonSummary {
	q := strings.ToLower(query)
	out := make([]model.RawPersonSummary, 0, len(demoPeople))
	for _, p := range demoPeople {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func demoPerson(id int) (model.RawPerson, bool) {
	p, ok := demoDetails[id]
	if !ok {
		return model.RawPerson{}, false
	}
	// Callers own the returned slice.
	p.MovieCredits.Cast = append([]model.RawCredit(nil), p.MovieCredits.Cast...)
	return p, true
}

func demoMovie(title string) model.RawEnrichment {
	if m, ok := demoMovies[title]; ok {
		return m
	}
	return model.RawEnrichment{Title: title, BoxOffice: notAvailable, Rating: notAvailable}
}

func demoPopular() []model.RawPersonSummary {
	return append([]model.RawPersonSummary(nil), demoPeople...)
}
