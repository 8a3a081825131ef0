package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func (s *Server) registerUploadRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "uploadImage",
		Method:      http.MethodPost,
		Path:        "/api/v1/uploads",
		Summary:     "Upload image",
		Description: "Stores an image and returns its public URL plus a BlurHash placeholder. Raw image bytes in the request body.",
		Tags:        []string{"Uploads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUploadImage)
}

// === DTOs ===

// UploadImageInput carries the raw image bytes.
type UploadImageInput struct {
	Authorization string `header:"Authorization"`
	ContentType   string `header:"Content-Type"`
	RawBody       []byte
}

// UploadImageOutput wraps the upload result for Huma.
type UploadImageOutput struct {
	Body service.UploadResult
}

// === Handlers ===

func (s *Server) handleUploadImage(ctx context.Context, input *UploadImageInput) (*UploadImageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if len(input.RawBody) > MaxUploadSize {
		return nil, domainerrors.Validation("file exceeds the 10MB upload limit")
	}

	result, err := s.services.Upload.Upload(ctx, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &UploadImageOutput{Body: *result}, nil
}
