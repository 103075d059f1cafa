package remote

import "errors"

var (
	// ErrEmptyEndpoint is returned when the catalog URL is empty.
	ErrEmptyEndpoint = errors.New("remote: empty endpoint URL")

	// ErrFetchFailed is returned when the HTTP request cannot be completed.
	ErrFetchFailed = errors.New("remote: fetch failed")

	// ErrRequestFailed is returned when the endpoint answers with a
	// non-success status.
	ErrRequestFailed = errors.New("remote: request failed")

	// ErrInvalidPayload is returned when the response body is not a valid
	// catalog document.
	ErrInvalidPayload = errors.New("remote: invalid payload")
)
