package errors

import (
	"errors"
	"net/http"
)

// RequestError is an error reported to REST clients with its HTTP status.
type RequestError struct {
	status int
	msg    string
}

func (e *RequestError) Error() string {
	return e.msg
}

func (e *RequestError) StatusCode() int {
	return e.status
}

func NewBadRequestError(text string) error {
	return &RequestError{status: http.StatusBadRequest, msg: text}
}

func NewNotFoundError(text string) error {
	return &RequestError{status: http.StatusNotFound, msg: text}
}

func NewConflictError(text string) error {
	return &RequestError{status: http.StatusConflict, msg: text}
}

func NewInternalError(text string) error {
	return &RequestError{status: http.StatusInternalServerError, msg: text}
}

// StatusCode returns the status carried by a RequestError in err's chain, and
// 500 for any other error.
func StatusCode(err error) int {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.status
	}
	return http.StatusInternalServerError
}
