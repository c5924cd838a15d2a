package fetch

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Posting holds the extracted content of a job posting page.
type Posting struct {
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
}

// JobPosting fetches a job posting URL and extracts its title and main text,
// using platform-specific selectors when the job board is recognized.
func JobPosting(ctx context.Context, urlStr string, opts *Options) (*Posting, error) {
	page, err := Download(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)

	text, err := ExtractMainText(page.HTML,
		PlatformContentSelectors(platform),
		PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, err
	}

	return &Posting{
		URL:      urlStr,
		Platform: platform,
		Title:    ExtractTitle(page.HTML),
		Text:     text,
	}, nil
}

// ExtractTitle returns the posting title from HTML, preferring the first h1
// and falling back to the document title. Returns "" when neither is present.
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
