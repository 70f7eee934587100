/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3store reads and writes objects in a single Amazon S3 bucket. It
 * backs the persisted pairing history and, through HTTPCache, the
 * httpcache.Cache used by the result source clients. The cache half is based
 * on the original github.com/sourcegraph/s3cache updated to aws-sdk-go-v2.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ErrNoSuchKey is returned by Get when the object does not exist.
var ErrNoSuchKey = errors.New("s3store: no such key")

// Bucket stores objects under a key prefix within one S3 bucket.
type Bucket struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is initialized by Init() from the default Config; callers can
	// replace it with their own client afterwards.
	Client *s3.Client

	name   string
	prefix string

	// gzip compresses objects on Put and decompresses them on Get. Object
	// keys get a ".gz" suffix.
	gzip bool
}

// NewBucket returns a Bucket for name storing objects below prefix. Callers
// must invoke Init() on the returned Bucket before use.
func NewBucket(name string, prefix string, gzip bool) *Bucket {
	return &Bucket{
		name:   name,
		prefix: prefix,
		gzip:   gzip,
	}
}

func (b *Bucket) Name() string {
	return b.name
}

// The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
func (b *Bucket) Init(ctx context.Context) error {
	var err error
	b.Config, err = config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	b.Client = s3.NewFromConfig(b.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = b.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.name),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", b.name,
			err)
	}

	// Permission check: verify ability to list objects
	if _, err = b.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(b.name),
		Prefix:  aws.String(b.prefix),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			b.name, err)
	}

	return nil
}

// Get returns the object stored under key, or ErrNoSuchKey.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	objKey := b.objectKey(key)
	resp, err := b.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if IsNoSuchKey(err) {
			return nil, ErrNoSuchKey
		}
		return nil, fmt.Errorf("s3store.get: failed to get object %v/%v: %w",
			b.name, objKey, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if b.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("s3store.get: failed to open compressed object %v/%v: %w",
				b.name, objKey, err)
		}
		defer gr.Close()
		rdr = gr
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store.get: failed to read object %v/%v: %w",
			b.name, objKey, err)
	}

	return data, nil
}

// Put stores data under key, replacing any previous object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if b.gzip {
		compressed, err := gzipBytes(data)
		if err != nil {
			return fmt.Errorf("s3store.put: failed to gzip data for %v/%v: %w",
				b.name, *input.Key, err)
		}
		input.Body = bytes.NewReader(compressed)
		input.ContentEncoding = aws.String("gzip")
	}

	_, err := b.Client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("s3store.put: put failed for %v/%v: %w", b.name,
			*input.Key, err)
	}

	return nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("s3store.delete: delete failed for %v: %w", key, err)
	}

	return nil
}

func (b *Bucket) objectKey(key string) string {
	objKey := path.Join("/", b.prefix, key)
	if b.gzip {
		objKey += ".gz"
	}

	return objKey
}

// IsNoSuchKey reports whether err is S3's missing object error.
func IsNoSuchKey(err error) bool {
	if errors.Is(err, ErrNoSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
