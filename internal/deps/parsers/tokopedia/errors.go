package tokopedia

import "errors"

var (
  // ErrRequestFailed is returned on transport failures: connection errors and timeouts.
  ErrRequestFailed = errors.New("request failed")
  // ErrStatusNotOK is returned when the response status is not 2xx.
  ErrStatusNotOK = errors.New("response status is not 2xx")
  // ErrMalformedResponse is returned when the response body has an unexpected shape.
  ErrMalformedResponse = errors.New("malformed response")
  // ErrBasicInfoNotFound is returned when the detail response has no basic info section.
  ErrBasicInfoNotFound = errors.New("basic info not found")
  // ErrInvalidProductURL is returned when the product url has less than two path segments.
  ErrInvalidProductURL = errors.New("invalid product url")
  // ErrListingInterrupted wraps the failure that stopped pagination early.
  ErrListingInterrupted = errors.New("listing interrupted")
)
