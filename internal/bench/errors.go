package bench

import "errors"

// ErrMalformedLine is returned by LoadOrderFile for a line that does not
// have exactly three whitespace-separated fields.
var ErrMalformedLine = errors.New("malformed order data line")
