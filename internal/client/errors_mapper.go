package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/autolot/models"
	"github.com/go-resty/resty/v2"
)

// mapAPIError translates a non-2xx server response into a client sentinel
// error, carrying the server's message text. CSRF rejections are identified
// by the body code, not the bare 403 status, so that other forbidden
// responses never trigger a token refresh.
func mapAPIError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var body models.ErrorResponse
	_ = json.Unmarshal(resp.Body(), &body)

	msg := strings.TrimSpace(body.Error)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	switch {
	case body.Code == models.CodeCSRFInvalid:
		return fmt.Errorf("%w: %s", ErrCSRFRejected, msg)
	case resp.StatusCode() == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, msg)
	case resp.StatusCode() == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case resp.StatusCode() == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, validationMessage(msg, body.Fields))
	default:
		return fmt.Errorf("%w: %s", ErrServer, msg)
	}
}

// validationMessage flattens field-level errors into one displayable line so
// the TUI can show every rejected field at once.
func validationMessage(msg string, fields []models.FieldError) string {
	if len(fields) == 0 {
		return msg
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return strings.Join(parts, "; ")
}
