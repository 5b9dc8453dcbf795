package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("storage service unavailable")
	ErrUpload      = errors.New("upload failed")
)

// UploadError describes a failed upload. It matches ErrUpload with errors.Is
// and unwraps to the transport error, if any.
type UploadError struct {
	// Op names the failing step, e.g. "pin file" or "put object".
	Op string
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Detail is a short excerpt of the response body.
	Detail string
	Err    error
}

func (e *UploadError) Error() string {
	msg := "upload failed: " + e.Op
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UploadError) Is(target error) bool {
	return target == ErrUpload
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
