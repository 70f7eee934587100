/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/boylstonchessclub-swiss/s3store"
)

// NewCachedHttpClient returns an http.Client that caches via an S3-backed
// httpcache in bucket. If the bucket is empty or cannot be reached it falls
// back to uncached http. It also enforces a client-side TTL by rewriting
// origin cache headers.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration) *http.Client {

	if bucket == "" {
		return http.DefaultClient
	}
	cache, err := s3store.NewHTTPCache(ctx, bucket, false, true)
	if err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to uncached http", err)
		return http.DefaultClient
	}

	return NewCachingClient(cache, maxAge, http.DefaultTransport)
}

// NewCachingClient wraps base with cache, forcing every response to be
// cacheable for maxAge.
func NewCachingClient(cache httpcache.Cache, maxAge time.Duration,
	base http.RoundTripper) *http.Client {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: base,
		Response: func(resp *http.Response) error {
			// Strip any cache-busting headers from origin
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			// Enforce the provided TTL
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
