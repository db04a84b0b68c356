// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package s3src

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/todddeluca/tfdgo/internal/cacheutil"
	"github.com/todddeluca/tfdgo/internal/release"
)

// SourceS3 serves releases from an S3 bucket mirroring the archive layout,
// s3://bucket/prefix with one full/<date>/ folder per release.
type SourceS3 struct {
	RawURL string
	Bucket string
	Prefix string
	Region string

	client *s3.Client
}

type Option func(*SourceS3)

func WithRegion(region string) Option {
	return func(src *SourceS3) {
		src.Region = region
	}
}

func New(ctx context.Context, rawurl string, opts ...Option) (*SourceS3, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("bad s3 source url %s: %w", rawurl, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("s3 source url %s has no bucket", rawurl)
	}

	src := &SourceS3{
		RawURL: rawurl,
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}
	for _, opt := range opts {
		opt(src)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if src.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(src.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	src.client = s3.NewFromConfig(cfg)

	return src, nil
}

// Releases lists the full/ prefix with a delimiter, so each release folder
// comes back as a common prefix.
func (src *SourceS3) Releases(ctx context.Context) ([]release.Release, error) {
	prefix := path.Join(src.Prefix, "full") + "/"

	paginator := s3.NewListObjectsV2Paginator(src.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(src.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var releases []release.Release
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", src.Bucket, prefix, err)
		}

		for _, cp := range page.CommonPrefixes {
			date := strings.TrimSuffix(strings.TrimPrefix(*cp.Prefix, prefix), "/")
			if _, err := time.Parse("2006-01-02", date); err != nil {
				log.Debugf("skipping non-release prefix %s", *cp.Prefix)
				continue
			}
			releases = append(releases, release.Release{Date: date})
		}
	}
	release.Sort(releases)

	return releases, nil
}

// Fetch downloads the termdb-tables archive object for rel, reading through
// the cache keyed by the s3 URL.
func (src *SourceS3) Fetch(ctx context.Context, rel release.Release) ([]byte, error) {
	archiveURL := release.ArchiveURL(src.RawURL, rel.Date)
	subdirs := []string{src.Bucket, "geneontology"}

	if err := cacheutil.AutoPurge(); err != nil {
		log.Warnf("failed to purge cache: %v", err)
	}

	if entry, ok := cacheutil.Read(subdirs, archiveURL); ok {
		log.Debugf("cache hit: %s", entry.Path)
		return entry.Data, nil
	}

	key := path.Join(src.Prefix, "full", rel.Date, release.ArchiveBasename(rel.Date))

	obj, err := src.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", src.Bucket, key, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", src.Bucket, key, err)
	}

	if err := cacheutil.Write(subdirs, archiveURL, data); err != nil {
		log.Warnf("failed to write archive to cache: %v", err)
	}

	return data, nil
}

func (src *SourceS3) String() string {
	return src.RawURL
}

func (src *SourceS3) Type() string {
	return "s3"
}
