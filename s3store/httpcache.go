/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"
)

const httpCachePrefix = "s3cache"

// HTTPCache implements httpcache.Cache on top of a Bucket. Entries are
// stored under the md5 of the cache key.
type HTTPCache struct {
	bucket    *Bucket
	logErrors bool

	// The context to specify when initiating s3 requests
	ctx context.Context
}

// NewHTTPCache returns an initialized cache in bucketName. An error means
// the bucket is not accessible.
func NewHTTPCache(ctx context.Context, bucketName string, gzip bool,
	logErrors bool) (*HTTPCache, error) {

	b := NewBucket(bucketName, httpCachePrefix, gzip)
	if err := b.Init(ctx); err != nil {
		return nil, err
	}

	return &HTTPCache{bucket: b, logErrors: logErrors, ctx: ctx}, nil
}

func (c *HTTPCache) Get(key string) ([]byte, bool) {
	data, err := c.bucket.Get(c.ctx, hashKey(key))
	if err != nil {
		// no such key just indicates a cache miss
		if c.logErrors && !errors.Is(err, ErrNoSuchKey) {
			log.Printf("s3store.httpcache: %v", err)
		}
		return []byte{}, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *HTTPCache) Set(key string, data []byte) {
	err := c.bucket.Put(c.ctx, hashKey(key), data)
	if err != nil && c.logErrors {
		log.Printf("s3store.httpcache: %v", err)
	}
}

func (c *HTTPCache) Delete(key string) {
	err := c.bucket.Delete(c.ctx, hashKey(key))
	if err != nil && c.logErrors {
		log.Printf("s3store.httpcache: %v", err)
	}
}

func hashKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return hex.EncodeToString(h.Sum(nil))
}
