// Package unsplash is a minimal client for the parts of the Unsplash
// API the photo scraper needs: searching photos and downloading them.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the production Unsplash API endpoint.
const DefaultBaseURL = "https://api.unsplash.com"

// Client talks to the Unsplash API. Zero values of the public fields
// are filled in by New; tests override BaseURL and RetryWait.
type Client struct {
	AccessKey  string
	BaseURL    string
	RetryWait  time.Duration // how long to back off after a rate limit
	HTTPClient *http.Client
}

// New returns a Client authenticated with the given access key.
func New(accessKey string) *Client {
	return &Client{
		AccessKey:  accessKey,
		BaseURL:    DefaultBaseURL,
		RetryWait:  time.Minute,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search returns one page of landscape photos matching the query.
// Rate-limited responses are retried after RetryWait until the context
// is canceled.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) ([]Photo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "landscape")

	for {
		photos, retry, err := c.searchOnce(ctx, params)
		if err != nil {
			return nil, err
		}
		if !retry {
			return photos, nil
		}

		log.Warn().Str("query", query).Dur("wait", c.RetryWait).Msg("rate limited")
		wake := time.NewTimer(c.RetryWait)
		select {
		case <-ctx.Done():
			wake.Stop()
			return nil, ctx.Err()
		case <-wake.C:
		}
	}
}

// Download fetches a photo into the named file. The destination is only
// created on a successful response.
func (c *Client) Download(ctx context.Context, photoURL, pathname string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return fmt.Errorf("unable to build download request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to download %s: %w", photoURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed: %s", photoURL, resp.Status)
	}

	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return nil
}

//--------------------------------------------------------------------------------
// private

func (c *Client) searchOnce(ctx context.Context, params url.Values) ([]Photo, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("unable to build search request: %w", err)
	}

	req.Header.Set("Authorization", "Client-ID "+c.AccessKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, true, nil
	default:
		return nil, false, fmt.Errorf("search request failed: %s", resp.Status)
	}

	var result searchResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, false, fmt.Errorf("unable to parse search response: %w", err)
	}

	photos := make([]Photo, 0, len(result.Results))
	for _, p := range result.Results {
		photos = append(photos, p.photo())
	}

	return photos, false, nil
}
