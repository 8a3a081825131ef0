package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/media/images"
)

// maxUploadBytes caps uploaded images at 10 MiB.
const maxUploadBytes = 10 << 20

// extByContentType maps the sniffed content type to the stored file
// extension. Anything not listed is rejected.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService stores user-uploaded images and hands back a public
// URL plus a BlurHash placeholder for progressive rendering.
type UploadService struct {
	storage *images.Storage
	logger  *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(storage *images.Storage, logger *slog.Logger) *UploadService {
	return &UploadService{storage: storage, logger: logger}
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	URL      string `json:"url"`
	BlurHash string `json:"blur_hash,omitempty"`
}

// Upload validates and stores an image. File names are generated
// server-side, so clients cannot influence paths on disk.
func (s *UploadService) Upload(ctx context.Context, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, domainerrors.Validation("file must not be empty")
	}
	if len(data) > maxUploadBytes {
		return nil, domainerrors.Validation("file exceeds the 10MB upload limit")
	}

	contentType := http.DetectContentType(data)
	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, domainerrors.Validationf("unsupported file type %s", contentType)
	}

	name := uuid.NewString() + ext
	if err := s.storage.Save(name, data); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	// BlurHash failure shouldn't lose the upload; the placeholder is
	// a nicety, not part of the contract.
	blurHash, err := images.ComputeBlurHash(data)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to compute blurhash", "name", name, "error", err)
		}
		blurHash = ""
	}

	if s.logger != nil {
		s.logger.Info("Image uploaded", "name", name, "bytes", len(data))
	}

	return &UploadResult{
		URL:      "/uploads/" + name,
		BlurHash: blurHash,
	}, nil
}
