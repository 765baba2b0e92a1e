package psgc

import (
	"errors"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/psgc-mcp/internal/platform/errors"
)

// NotFoundError reports a resource the dataset does not have.
func NotFoundError(path string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		fmt.Sprintf("resource not found: %s", path),
		map[string]string{"path": path})
}

// ServerError reports a non-2xx, non-404 response.
func ServerError(path string, status int) error {
	return apperrors.WithMetadata(apperrors.CodeServerError,
		fmt.Sprintf("server error %d: %s", status, path),
		map[string]string{"path": path, "status": strconv.Itoa(status)})
}

// NetworkError reports a failure to obtain a response at all.
func NetworkError(path string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeNetworkError,
		fmt.Sprintf("network error: %s", path),
		map[string]string{"path": path}, cause)
}

// DecodeError reports a 2xx body that does not match the expected shape.
func DecodeError(path string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeDecodeError,
		fmt.Sprintf("decode response: %s", path),
		map[string]string{"path": path}, cause)
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.CodeNotFound)
}

// IsRetryable reports whether err may succeed on a later attempt.
func IsRetryable(err error) bool {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.Code.Retryable()
	}
	return false
}

// StatusOf returns the HTTP status carried by a ServerError, or 0.
func StatusOf(err error) int {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeServerError {
		return 0
	}
	status, _ := strconv.Atoi(domainErr.Metadata["status"])
	return status
}
