package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/pkg/logger"
)

type personPage struct {
	Results []model.RawPersonSummary `json:"results"`
}

// SearchPersons searches people by name.
func (c *Client) SearchPersons(ctx context.Context, query string) []model.RawPersonSummary {
	if c.tmdbDemo() {
		return demoSearch(query)
	}
	params := url.Values{"api_key": {c.tmdbAPIKey}, "query": {query}}
	var page personPage
	if err := c.getJSON(ctx, upstreamTMDB, c.tmdbBaseURL+"/search/person", params, &page); err != nil {
		c.fallback(ctx, upstreamTMDB, "search", err)
		return demoSearch(query)
	}
	c.log.Debug(ctx, "person search", logger.String("query", query), logger.Int("results", len(page.Results)))
	return page.Results
}

// PersonDetails fetches a person with their movie credits. The boolean is
// false when no such person exists.
func (c *Client) PersonDetails(ctx context.Context, id int) (model.RawPerson, bool) {
	if c.tmdbDemo() {
		return demoPerson(id)
	}
	params := url.Values{"api_key": {c.tmdbAPIKey}, "append_to_response": {"movie_credits"}}
	var person model.RawPerson
	endpoint := c.tmdbBaseURL + "/person/" + strconv.Itoa(id)
	if err := c.getJSON(ctx, upstreamTMDB, endpoint, params, &person); err != nil {
		c.fallback(ctx, upstreamTMDB, "person", err)
		return demoPerson(id)
	}
	return person, person.ID != 0 || person.Name != ""
}

// PopularPersons returns one page of the popularity listing.
func (c *Client) PopularPersons(ctx context.Context, page int) []model.RawPersonSummary {
	if c.tmdbDemo() {
		return demoPopular()
	}
	params := url.Values{"api_key": {c.tmdbAPIKey}, "page": {strconv.Itoa(page)}}
	var res personPage
	if err := c.getJSON(ctx, upstreamTMDB, c.tmdbBaseURL+"/person/popular", params, &res); err != nil {
		c.fallback(ctx, upstreamTMDB, "popular", err)
		return demoPopular()
	}
	return res.Results
}

func (c *Client) getJSON(ctx context.Context, upstream, endpoint string, params url.Values, out any) error {
	body, err := c.get(ctx, upstream, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
