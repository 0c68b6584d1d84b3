package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	proposalmodels "licibit/internal/proposal/models"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/platform/sentinel"
	"licibit/pkg/requestcontext"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Service owns upload and signed-download rules for proposal attachments.
type Service struct {
	blobs  BlobStore
	signer *Signer
}

func NewService(blobs BlobStore, signer *Signer) *Service {
	return &Service{blobs: blobs, signer: signer}
}

// Upload stores content and returns the reference a proposal embeds.
func (s *Service) Upload(ctx context.Context, uploader id.UserID, fileName, contentType string, content []byte) (*proposalmodels.DocumentRef, error) {
	if uploader.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if fileName == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "file name is required")
	}
	if len(content) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "file content is empty")
	}
	if len(content) > maxUploadBytes {
		return nil, dErrors.New(dErrors.CodeBadRequest, "file exceeds the upload size limit")
	}

	docID := id.DocumentID(uuid.New())
	file := &File{
		ID:          docID,
		Path:        fmt.Sprintf("documents/%s/%s", uploader, docID),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(content)),
		UploadedBy:  uploader,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.blobs.Put(ctx, file, content); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}
	return &proposalmodels.DocumentRef{ID: docID, Path: file.Path, FileName: fileName}, nil
}

// SignedLink returns a download token for path, valid from the request's
// instant for the signer's TTL.
func (s *Service) SignedLink(ctx context.Context, path string) (string, error) {
	token, err := s.signer.Sign(path, requestcontext.Now(ctx))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign download link")
	}
	return token, nil
}

// Download verifies the token and returns the blob.
func (s *Service) Download(ctx context.Context, path, token string) (*File, []byte, error) {
	if err := s.signer.Verify(path, token, requestcontext.Now(ctx)); err != nil {
		return nil, nil, err
	}
	file, content, err := s.blobs.Get(ctx, path)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	return file, content, nil
}
