package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"ar-sync/core/apierror"
	"ar-sync/core/erp"
	"ar-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// SnapshotLoader reads fallback rows.
type SnapshotLoader interface {
	Load(ctx context.Context) ([]erp.Row, error)
}

// StorageSnapshot reads a JSON snapshot from object storage. The object holds either
// an array of rows or an object with an "items" array, the same shape as a SuiteQL
// response.
type StorageSnapshot struct {
	client storage.Client
	bucket string
	object string
}

// NewStorageSnapshot creates a snapshot loader for bucket/object.
func NewStorageSnapshot(client storage.Client, bucket, object string) *StorageSnapshot {
	return &StorageSnapshot{client: client, bucket: bucket, object: object}
}

// Location returns bucket/object for logging.
func (s *StorageSnapshot) Location() string {
	return s.bucket + "/" + s.object
}

// Load downloads and decodes the snapshot.
func (s *StorageSnapshot) Load(ctx context.Context) ([]erp.Row, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", s.Location(), err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.Location(), err)
	}

	return decodeSnapshot(raw)
}

func decodeSnapshot(raw []byte) ([]erp.Row, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []erp.Row{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var rows []erp.Row
		if err := dec.Decode(&rows); err != nil {
			return nil, &apierror.ParseError{Service: "snapshot", Op: "decode", Raw: string(raw), Err: err}
		}
		return rows, nil
	}

	var wrapped struct {
		Items []erp.Row `json:"items"`
	}
	if err := dec.Decode(&wrapped); err != nil {
		return nil, &apierror.ParseError{Service: "snapshot", Op: "decode", Raw: string(raw), Err: err}
	}
	if wrapped.Items == nil {
		return []erp.Row{}, nil
	}
	return wrapped.Items, nil
}
