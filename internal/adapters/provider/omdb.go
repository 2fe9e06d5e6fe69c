package provider

import (
	"context"
	"net/url"
	"strconv"

	"github.com/okian/careerlens/internal/domain/model"
)

// MovieEnrichment looks up box office data for a title. A title OMDB does
// not know yields an empty BoxOffice, which normalizes to zero.
func (c *Client) MovieEnrichment(ctx context.Context, title string, year *int) model.RawEnrichment {
	if c.omdbDemo() {
		return demoMovie(title)
	}
	params := url.Values{"apikey": {c.omdbAPIKey}, "t": {title}}
	if year != nil {
		params.Set("y", strconv.Itoa(*year))
	}
	var res model.RawEnrichment
	if err := c.getJSON(ctx, upstreamOMDB, c.omdbBaseURL+"/", params, &res); err != nil {
		c.fallback(ctx, upstreamOMDB, "enrichment", err)
		return demoMovie(title)
	}
	return res
}
