package httputil

import "errors"

// HTTPError is used for error responses that carry no resource body.
type HTTPError struct {
	Error *string `json:"error" example:"an error occurred on the server during your request"`
}

var (
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidUUID        = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
)
