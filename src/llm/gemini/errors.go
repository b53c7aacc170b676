package gemini

import (
	"errors"
	"fmt"
)

// ErrUnexpectedResponseShape is returned when a successful response does not
// carry candidates[0].content.parts[0].text.
var ErrUnexpectedResponseShape = errors.New("unexpected response shape")

// RequestFailure is a non-2xx answer from the service
type RequestFailure struct {
	StatusCode int
	Body       string
}

func (e *RequestFailure) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d - %s", e.StatusCode, e.Body)
}
