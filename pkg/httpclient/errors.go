package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/ZeyadMohamed5/Morph/pkg/errors"
)

// apiErrorBody mirrors the error shapes returned by the storefront API.
// Most endpoints return {"error": "..."}; a few return {"message": "..."}.
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. The server's message field, when present, is preserved
// verbatim so domain rejections (expired coupon, below minimum order, ...)
// reach the user unchanged.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	message := serverMessage(bodyBytes)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if message != "" {
			return apperrors.Rejected(http.StatusNotFound, message)
		}
		return apperrors.NotFound(operation, resp.Request.URL.Path)
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(fallback(message, "authentication required"))
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(fallback(message, "access denied"))
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(fallback(message, operation+" conflicted"))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return apperrors.Rejected(resp.StatusCode, fallback(message, fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)))
	case resp.StatusCode == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(fallback(message, operation+" temporarily unavailable"))
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: fallback(message, fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)),
			Status:  resp.StatusCode,
			Err:     apperrors.ErrInternal,
		}
	}
}

// serverMessage extracts the free-text message from an API error body.
// Unstructured bodies are returned trimmed, as-is.
func serverMessage(body []byte) string {
	var parsed apiErrorBody
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(body))
}

func fallback(message, generic string) string {
	if message == "" {
		return generic
	}
	return message
}
