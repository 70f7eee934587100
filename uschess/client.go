/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikeb26/boylstonchessclub-swiss/internal"
)

const apiBase = "https://ratings-api.uschess.org/api/v1"

type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
}

// NewClient returns a ratings API client whose responses are cached in
// bucket. An empty bucket disables caching.
func NewClient(ctx context.Context, bucket string) *Client {
	ret := &Client{
		httpClient30day: internal.NewCachedHttpClient(ctx, bucket,
			30*24*time.Hour),
	}
	if ret.httpClient30day != http.DefaultClient {
		ret.httpClient1day = internal.NewCachedHttpClient(ctx, bucket,
			24*time.Hour)
	} else {
		ret.httpClient1day = http.DefaultClient
	}

	return ret
}

// getJSON fetches url with hc and decodes the body into v. what names the
// resource in error messages.
func getJSON(ctx context.Context, hc *http.Client, url string, what string,
	v any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to create %v request: %w", what, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected %v status %d: %s", what,
			resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %v JSON: %w", what, err)
	}

	return nil
}
