package backendapi

import (
	"errors"
	"fmt"
)

// RemoteError carries a non-2xx response from the processing backend. The
// response body is kept verbatim because the backend reports failures as
// plain-text or JSON detail messages.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is a RemoteError with the given status code.
func IsStatus(err error, status int) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.StatusCode == status
}
