// Package ingest acquires writing samples from outside sources: a web page
// or the user's blog feed.
package ingest

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

// MaxSampleChars is the ceiling on stored writing samples. Longer imports
// are trimmed at a word boundary.
const MaxSampleChars = 3000

const maxFeedPosts = 5

// Fetcher imports writing samples over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// FromURL extracts the readable text of a web page to use as a writing
// sample.
func (f *Fetcher) FromURL(pageURL string) (string, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "voiceloom/1.0 (writing sample import)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetching %s: HTTP %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", pageURL, err)
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("extracting readable text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no extractable text at %s", pageURL)
	}
	return Truncate(text), nil
}

// FromFeed concatenates the latest posts of an RSS/Atom feed into a writing
// sample.
func (f *Fetcher) FromFeed(feedURL string) (string, error) {
	parser := gofeed.NewParser()
	parser.Client = f.client

	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return "", fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}

	var parts []string
	for _, item := range feed.Items {
		if len(parts) >= maxFeedPosts {
			break
		}
		content := item.Content
		if content == "" {
			content = item.Description
		}
		text := strings.TrimSpace(stripHTML(content))
		if text == "" {
			continue
		}
		parts = append(parts, text)
		log.Printf("Imported post: %s", strings.TrimSpace(item.Title))
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("feed %s has no posts with text content", feedURL)
	}
	return Truncate(strings.Join(parts, "\n\n")), nil
}

// Truncate trims a sample to MaxSampleChars, cutting at the last word
// boundary before the limit.
func Truncate(sample string) string {
	sample = strings.TrimSpace(sample)
	if len(sample) <= MaxSampleChars {
		return sample
	}
	cut := sample[:MaxSampleChars]
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

func stripHTML(text string) string {
	var result strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}
