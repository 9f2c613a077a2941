package problem

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is where problem pages are fetched from.
const DefaultBaseURL = "https://codeforces.com"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher downloads and extracts problem pages directly, for when no browser
// extension is sending the HTML.
type Fetcher struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewFetcher creates a fetcher rooted at baseURL. An empty baseURL means
// DefaultBaseURL; a zero timeout means 10 seconds.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Fetch downloads url and extracts a Record from it. The returned record has
// its URL and ProblemID set.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rec := Extract(doc, f.now())
	rec.URL = url
	rec.ProblemID = Resolve(url, rec.ProblemName)
	return rec, nil
}

// FetchByID tries the contest page for id first and then the problemset
// page. The first page that downloads wins.
func (f *Fetcher) FetchByID(ctx context.Context, id string) (*Record, error) {
	contest, letter, err := SplitID(id)
	if err != nil {
		return nil, err
	}

	urls := []string{
		fmt.Sprintf("%s/contest/%s/problem/%s", f.baseURL, contest, letter),
		fmt.Sprintf("%s/problemset/problem/%s/%s", f.baseURL, contest, letter),
	}

	var errs []error
	for _, url := range urls {
		rec, err := f.Fetch(ctx, url)
		if err == nil {
			rec.ProblemID = id
			return rec, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", url, err))
	}

	return nil, fmt.Errorf("failed to fetch problem %s: %w", id, errors.Join(errs...))
}
