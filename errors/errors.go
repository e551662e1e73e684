package errors

import "errors"

var (
	ErrBadConfig          = errors.New("config: invalid config")
	ErrUnsupportedFormat  = errors.New("config: unsupported output format")
	ErrInvalidPolicy      = errors.New("retention: no positive version count to delete or keep")
	ErrRemoteQuery        = errors.New("registry: query for oldest version failed")
	ErrPackageNotFound    = errors.New("registry: package not found")
	ErrBadHTTPStatusCode  = errors.New("registry: the response doesn't contain the expected status code")
	ErrUnauthorizedAccess = errors.New("registry: unauthorized access, check credentials")
	ErrDeleteFailed       = errors.New("executor: failed to delete package versions")
)
