package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope. Bump
// only with a coordinated client release.
const EnvelopeVersion = 1

// APIEnvelope wraps every response body. Success responses carry data,
// simple errors carry a message string.
type APIEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope is the detailed error shape, used when the error
// carries a machine-readable code. Clients dispatch on Code.
type APIErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps all Huma responses in the versioned
// envelope. Registered as a huma.Transformer on the API config.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		if apiErr, ok := v.(*APIError); ok {
			if apiErr.Code != "" {
				return APIErrorEnvelope{
					Version: EnvelopeVersion,
					Success: false,
					Code:    apiErr.Code,
					Message: apiErr.Message,
					Details: apiErr.Details,
				}, nil
			}
			return APIEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Error:   apiErr.Message,
			}, nil
		}
		if err, ok := v.(error); ok {
			return APIEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Error:   err.Error(),
			}, nil
		}
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Data:    v,
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
