// Package statementfetch loads statement bytes from a local path or a GCS
// URI. Assumes Application Default Credentials for GCS access.
package statementfetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

// Fetch returns the statement bytes at source, which is either a local file
// path or a gs://bucket/object URI.
func Fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "gs://") {
		return fetchFromGCS(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("statementfetch: read file %q: %w", source, err)
	}
	return data, nil
}

func fetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("statementfetch: invalid GCS URI (no object path): %s", gcsURI)
	}
	bucketName, objectPath := parts[0], parts[1]

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("statementfetch: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("statementfetch: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("statementfetch: reading bytes: %w", err)
	}
	return data, nil
}

// Filename extracts the base filename from a local path or GCS URI,
// e.g. "gs://bucket/folder/jan.csv" or "/tmp/jan.csv" both give "jan.csv".
func Filename(source string) string {
	if strings.HasPrefix(source, "gs://") {
		trimmed := strings.TrimPrefix(source, "gs://")
		parts := strings.SplitN(trimmed, "/", 2)
		if len(parts) < 2 {
			return trimmed
		}
		return path.Base(parts[1])
	}
	return path.Base(source)
}
