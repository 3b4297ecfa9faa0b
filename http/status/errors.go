package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf extracts the status code carried by err. Errors which aren't HTTPError are
// reported as InternalServerError.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	ErrEmptyRequest        = NewError(BadRequest, "empty request")
	ErrBadRequestLine      = NewError(BadRequest, "request line must consist of exactly three tokens")
	ErrBadPath             = NewError(BadRequest, "request path must start with a slash")
	ErrRequestTooLarge     = NewError(BadRequest, "request head exceeds the read buffer")
	ErrNotFound            = NewError(NotFound, "not found")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
)
