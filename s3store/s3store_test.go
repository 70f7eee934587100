/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/gregjones/httpcache/test"
)

// testBucket mirrors internal.WebCacheBucket, which cannot be imported here.
const testBucket = "bopmatic-boylstonchessclub-tdbot-prod-webcache"

func TestHTTPCache(t *testing.T) {
	for _, gz := range []bool{false, true} {
		t.Run(fmt.Sprintf("gzip=%v", gz), func(t *testing.T) {
			cache, err := NewHTTPCache(context.Background(),
				testBucket, gz, true)
			if err != nil {
				t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
					testBucket, err))
			}

			test.Cache(t, cache)
		})
	}
}

func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix string
		gzip   bool
		key    string
		want   string
	}{
		{"history", false, "abc.json", "/history/abc.json"},
		{"history/", true, "abc.json", "/history/abc.json.gz"},
		{"", false, "abc", "/abc"},
	}
	for _, c := range cases {
		b := NewBucket("bucket", c.prefix, c.gzip)
		if got := b.objectKey(c.key); got != c.want {
			t.Errorf("objectKey(%q) with prefix %q = %q; want %q", c.key,
				c.prefix, got, c.want)
		}
	}

	if len(hashKey("https://example.com/")) != 32 {
		t.Errorf("hashKey should be hex md5")
	}
	if hashKey("a") == hashKey("b") {
		t.Errorf("distinct keys hashed alike")
	}
}

func TestGzipBytes(t *testing.T) {
	in := bytes.Repeat([]byte("1-0 "), 100)
	out, err := gzipBytes(in)
	if err != nil {
		t.Fatalf("gzipBytes: %v", err)
	}
	gr, err := gzip.NewReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	back, err := io.ReadAll(gr)
	if err != nil || !bytes.Equal(back, in) {
		t.Errorf("round trip mismatch: %v", err)
	}
}

func TestIsNoSuchKey(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "NoSuchKey", Message: "gone"}
	if !IsNoSuchKey(fmt.Errorf("wrapped: %w", apiErr)) {
		t.Errorf("wrapped NoSuchKey not detected")
	}
	if !IsNoSuchKey(ErrNoSuchKey) {
		t.Errorf("ErrNoSuchKey not detected")
	}
	if IsNoSuchKey(errors.New("AccessDenied")) {
		t.Errorf("unrelated error detected as NoSuchKey")
	}
}
