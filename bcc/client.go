/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/boylstonchessclub-swiss/internal"
)

const (
	defaultAPIBase = "https://beta.boylstonchess.org/api"
	defaultWebBase = "https://boylstonchess.org"

	// pairings and results are posted during a round
	cacheMaxAge = 2 * time.Minute
)

type Client struct {
	httpClient *http.Client
	apiBase    string
	webBase    string
}

// NewClient returns a club client whose responses are cached in bucket. An
// empty bucket disables caching.
func NewClient(ctx context.Context, bucket string) *Client {
	return &Client{
		httpClient: internal.NewCachedHttpClient(ctx, bucket, cacheMaxAge),
		apiBase:    defaultAPIBase,
		webBase:    defaultWebBase,
	}
}

// statusError reports an unexpected http status.
type statusError struct {
	url    string
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d fetching %s", e.status, e.url)
}

func (client *Client) get(ctx context.Context, url string) (*http.Response,
	error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &statusError{url: url, status: resp.StatusCode}
	}

	return resp, nil
}

func (client *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := client.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(v)
}

// fetchDoc gets the HTML document at the given URL.
func (client *Client) fetchDoc(ctx context.Context,
	url string) (*goquery.Document, error) {

	resp, err := client.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}
