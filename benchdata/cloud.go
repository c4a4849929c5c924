// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the settings for s3:// sources. Empty fields fall back
// to the AWS SDK defaults (environment, shared config, instance role).
type S3Config struct {
	Region string
	// Endpoint overrides the service endpoint, for S3-compatible
	// stores such as MinIO. It implies path-style addressing.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// gcsReader closes the client along with the object reader.
type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func (l *Loader) openGCS(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	if bucket == "" || object == "" {
		return nil, errors.New("gs source must be gs://bucket/object")
	}
	client, err := storage.NewClient(ctx, l.GCSOptions...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &gcsReader{Reader: r, client: client}, nil
}

func (l *Loader) openS3(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if bucket == "" || key == "" {
		return nil, errors.New("s3 source must be s3://bucket/key")
	}
	var opts []func(*config.LoadOptions) error
	if l.S3.Region != "" {
		opts = append(opts, config.WithRegion(l.S3.Region))
	}
	if l.S3.AccessKeyID != "" && l.S3.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(l.S3.AccessKeyID, l.S3.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if l.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(l.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
