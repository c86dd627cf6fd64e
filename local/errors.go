package local

import "errors"

// ErrUploadTooLarge is returned when a request body is over the upload limit.
var ErrUploadTooLarge = errors.New("upload is too large")
