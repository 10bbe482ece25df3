// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	awsx "github.com/tfctl/tomlctl/internal/aws"
	"github.com/tfctl/tomlctl/internal/backup"
	"github.com/tfctl/tomlctl/internal/log"
)

// ErrNotExist reports that the document does not exist yet.
var ErrNotExist = errors.New("document does not exist")

// Store loads and saves the bytes of one document.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	String() string
}

type options struct {
	aws      []awsx.Option
	s3client s3API
	backup   bool
}

// Option customizes New.
type Option func(*options)

// WithAWS passes options through to AWS config loading for s3:// locations.
func WithAWS(opts ...awsx.Option) Option {
	return func(o *options) { o.aws = append(o.aws, opts...) }
}

// WithBackup keeps the previous content of the document in the backup
// directory on every save.
func WithBackup() Option {
	return func(o *options) { o.backup = true }
}

func withS3Client(c s3API) Option {
	return func(o *options) { o.s3client = c }
}

// New returns the Store for location.
func New(ctx context.Context, location string, opts ...Option) (Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var s Store
	if bucket, key, ok := ParseS3Location(location); ok {
		client := o.s3client
		if client == nil {
			c, err := awsx.NewS3(ctx, o.aws...)
			if err != nil {
				return nil, fmt.Errorf("failed to load AWS config: %w", err)
			}
			client = c
		}
		s = &S3Store{Bucket: bucket, Key: key, client: client}
	} else {
		path, err := filepath.Abs(location)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", location, err)
		}
		s = &FileStore{Path: path}
	}
	log.Debugf("store: %s", s)

	if o.backup {
		s = &backedStore{Store: s}
	}
	return s, nil
}

// ParseS3Location splits s3://bucket/key. ok is false for anything else.
func ParseS3Location(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// backedStore writes a backup of the current content before each save.
type backedStore struct {
	Store
}

func (s *backedStore) Save(ctx context.Context, data []byte) error {
	prev, err := s.Store.Load(ctx)
	switch {
	case errors.Is(err, ErrNotExist):
	case err != nil:
		return err
	default:
		if err := backup.Write(s.String(), prev); err != nil {
			log.WithError(err).Warnf("backup of %s skipped", s)
		}
	}
	return s.Store.Save(ctx, data)
}
