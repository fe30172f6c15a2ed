// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import "errors"

// ErrRequestNotFound is returned when an operation targets a request id
// that does not exist. Handlers should translate this into an HTTP 404
// response.
var ErrRequestNotFound = errors.New("request not found")
