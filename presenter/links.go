// Package presenter derives display fields from movie records: outbound
// links, spoken summaries, and sentiment annotations. Nothing here is
// verified data; links are search queries, not canonical URLs.
package presenter

import (
	"fmt"
	"math/rand"
	"net/url"
)

// StreamingPlatform is one entry in the fixed platform table.
type StreamingPlatform struct {
	Name    string
	BaseURL string
	LogoURL string
}

var streamingPlatforms = []StreamingPlatform{
	{
		Name:    "Netflix",
		BaseURL: "https://www.netflix.com/search?q=",
		LogoURL: "https://upload.wikimedia.org/wikipedia/commons/0/08/Netflix_2015_logo.svg",
	},
	{
		Name:    "Amazon Prime",
		BaseURL: "https://www.amazon.com/s?k=",
		LogoURL: "https://upload.wikimedia.org/wikipedia/commons/f/f1/Prime_Video.png",
	},
	{
		Name:    "Hulu",
		BaseURL: "https://www.hulu.com/search?q=",
		LogoURL: "https://upload.wikimedia.org/wikipedia/commons/e/e4/Hulu_Logo.svg",
	},
}

// TrailerLink builds a YouTube search link for the movie's trailer.
func TrailerLink(title string) string {
	q := url.QueryEscape(title + " trailer")
	return "https://www.youtube.com/results?search_query=" + q
}

// StreamingLink picks one of the fixed platforms at random and builds a
// search link for the title there. The randomness source is injected so
// tests can pin the choice.
func StreamingLink(title string, rng *rand.Rand) (StreamingPlatform, string) {
	p := streamingPlatforms[rng.Intn(len(streamingPlatforms))]
	return p, p.BaseURL + url.QueryEscape(title)
}

// IMDbLink builds a title page link from an external ID, or returns the
// empty string when the ID is absent.
func IMDbLink(imdbID string) string {
	if imdbID == "" {
		return ""
	}
	return fmt.Sprintf("https://www.imdb.com/title/%s/", imdbID)
}
