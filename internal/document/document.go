// Package document stores proposal attachments and issues time-limited
// signed download references, so blobs are never served off a guessable path.
package document

import (
	"context"
	"time"

	id "licibit/pkg/domain"
)

// File is the stored metadata of one uploaded blob.
type File struct {
	ID          id.DocumentID `json:"id"`
	Path        string        `json:"path"`
	FileName    string        `json:"file_name"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size"`
	UploadedBy  id.UserID     `json:"uploaded_by"`
	CreatedAt   time.Time     `json:"created_at"`
}

// BlobStore persists file content by path.
type BlobStore interface {
	Put(ctx context.Context, file *File, content []byte) error
	Get(ctx context.Context, path string) (*File, []byte, error)
}
