//go:build s3example
// +build s3example

// This file provides an example S3Store implementation.
// It is excluded from regular builds because it requires the AWS SDK.
//
// To use this in your project, copy this file and add the AWS SDK:
//   go get github.com/aws/aws-sdk-go-v2
//   go get github.com/aws/aws-sdk-go-v2/config
//   go get github.com/aws/aws-sdk-go-v2/service/s3

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store stores snapshots in AWS S3.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	s3Client := s3.NewFromConfig(cfg)
//	store := snapshot.NewS3Store(s3Client, "my-bucket", "snapshots/")
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates a new S3 snapshot store.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2
//   - bucket: S3 bucket name
//   - prefix: key prefix for snapshots (e.g. "snapshots/")
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Save persists a snapshot to S3 and returns its ID.
func (s *S3Store) Save(label, html string) (string, error) {
	snap := &Snapshot{
		ID:         uuid.NewString(),
		Label:      label,
		HTML:       html,
		CapturedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(snap.ID)),
		Body:        strings.NewReader(string(data)),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"label":       label,
			"captured-at": snap.CapturedAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("s3 put failed: %w", err)
	}
	return snap.ID, nil
}

// Load retrieves a snapshot from S3 by ID.
func (s *S3Store) Load(id string) (*Snapshot, error) {
	result, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return nil, ErrNotFound
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns all stored snapshots, newest first.
func (s *S3Store) List() ([]*Snapshot, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var snaps []*Snapshot
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			id := strings.TrimSuffix(strings.TrimPrefix(*obj.Key, s.prefix), ".json")
			snap, err := s.Load(id)
			if err != nil {
				continue
			}
			snaps = append(snaps, snap)
		}
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].CapturedAt.After(snaps[j].CapturedAt)
	})
	return snaps, nil
}

// Prune removes snapshots older than maxAge.
func (s *S3Store) Prune(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			if obj.LastModified != nil && obj.LastModified.Before(cutoff) {
				if obj.Key != nil {
					toDelete = append(toDelete, *obj.Key)
				}
			}
		}
	}

	for _, key := range toDelete {
		s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	}
	return nil
}

func (s *S3Store) key(id string) string {
	return s.prefix + id + ".json"
}
