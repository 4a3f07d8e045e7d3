package interclassesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes written in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidationFailed   = "validation_failed"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAlreadyLoggedIn    = "already_logged_in"
	ErrorCodeDuplicateEmail     = "duplicate_email"
	ErrorCodeStepOutOfOrder     = "step_out_of_order"
	ErrorCodeLoginRequired      = "login_required"
	ErrorCodeInsufficientRole   = "insufficient_role"
	ErrorCodePhotoTooLarge      = "photo_too_large"
	ErrorCodeUnsupportedPhoto   = "unsupported_photo_type"
	ErrorCodeUnreadablePhoto    = "unreadable_photo"
	ErrorCodeRateLimitExceeded  = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Fields      map[string]string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Description)
}

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not the JSON envelope fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Fields:      errResp.Fields,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
