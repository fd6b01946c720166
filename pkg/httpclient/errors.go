package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/EcommerceGo/seeder/pkg/errors"
)

// DownstreamErrorResponse covers the two error body shapes the storefront API
// produces: a nested {"error":{code,message}} object and a flat
// {"message": ..., "error": "..."} body.
type DownstreamErrorResponse struct {
	Error   json.RawMessage `json:"error"`
	Message json.RawMessage `json:"message"`
}

type nestedError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	code, message, ok := decodeDownstream(bodyBytes)
	if !ok {
		return mapDownstreamError(resp.StatusCode, "", fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes)), serviceName)
	}
	return mapDownstreamError(resp.StatusCode, code, message, serviceName)
}

func decodeDownstream(body []byte) (code, message string, ok bool) {
	var downstream DownstreamErrorResponse
	if json.Unmarshal(body, &downstream) != nil {
		return "", "", false
	}

	var nested nestedError
	if len(downstream.Error) > 0 && json.Unmarshal(downstream.Error, &nested) == nil && nested.Message != "" {
		return nested.Code, nested.Message, true
	}

	// Validation failures carry a list of messages.
	var msg string
	if json.Unmarshal(downstream.Message, &msg) == nil && msg != "" {
		_ = json.Unmarshal(downstream.Error, &code)
		return code, msg, true
	}
	var msgs []string
	if json.Unmarshal(downstream.Message, &msgs) == nil && len(msgs) > 0 {
		_ = json.Unmarshal(downstream.Error, &code)
		return code, fmt.Sprint(msgs), true
	}
	return "", "", false
}

// mapDownstreamError translates a downstream HTTP status into an AppError
// carrying the matching sentinel.
func mapDownstreamError(status int, code, message, serviceName string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", serviceName, message)

	var appErr *apperrors.AppError
	switch {
	case status == http.StatusNotFound:
		appErr = apperrors.NotFound(serviceName, message)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		appErr = apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		appErr = apperrors.AlreadyExists(serviceName, "request", message)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		appErr = apperrors.Unauthorized(qualifiedMsg)
	case status >= 500:
		appErr = apperrors.Unavailable(serviceName, fmt.Errorf("%s", message))
	default:
		appErr = &apperrors.AppError{Code: "UNEXPECTED_STATUS", Message: qualifiedMsg}
	}
	appErr.Status = status
	if code != "" {
		appErr.Code = code
	}
	return appErr
}
