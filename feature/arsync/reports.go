package arsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"ar-sync/core/storage"
	"ar-sync/feature/arsync/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ReportStore uploads run reports as JSON objects.
type ReportStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewReportStore creates a report store writing under bucket/prefix.
func NewReportStore(client storage.Client, bucket, prefix string) *ReportStore {
	return &ReportStore{client: client, bucket: bucket, prefix: prefix}
}

// ReportKey builds the object key for a run, partitioned by UTC day so listings
// stay small, e.g. reports/ar-sync/2024/03/01/20240301T061500Z-<id>.json.
func ReportKey(prefix string, startedAt time.Time, id string) string {
	ts := startedAt.UTC()
	return path.Join(prefix, ts.Format("2006/01/02"), ts.Format("20060102T150405Z")+"-"+id+".json")
}

// Save uploads the report and returns its key.
func (s *ReportStore) Save(ctx context.Context, report *models.Report) (string, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := ReportKey(s.prefix, report.StartedAt, uuid.NewString())
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}
