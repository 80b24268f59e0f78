package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError carries the HTTP status of a failed backend call. Status codes
// are domain signals here: 404 entity gone, 409 action already performed,
// 412 precondition failed (insufficient coins or locked entity), 401
// session expired.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: server returned %d", e.Status)
	}
	return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Message)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

func IsConflict(err error) bool { return statusOf(err) == http.StatusConflict }

func IsPreconditionFailed(err error) bool {
	return statusOf(err) == http.StatusPreconditionFailed
}

func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }
