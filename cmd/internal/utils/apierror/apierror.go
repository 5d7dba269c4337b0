package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error surface services hand back to routes. It is
// JSON-marshalable and carries the HTTP status to respond with.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	Status  int      `json:"-"`
	Message string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *simpleError) Error() string { return e.Message }
func (e *simpleError) Code() int     { return e.Status }

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{Status: code, Message: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %s must be of type %s", name, expected))
}

// FromValidationError turns validator.ValidationErrors into a 400 response
// listing the offending fields and failed rules.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s: failed '%s' validation", fe.Field(), fe.Tag())
	}
	return &simpleError{
		Status:  http.StatusBadRequest,
		Message: "Request body failed validation",
		Fields:  fields,
	}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	NotFoundError         = NewSimple(http.StatusNotFound, "Resource not found")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")

	UserAlreadyExistsError   = NewSimple(http.StatusConflict, "A user with this email or username already exists")
	CredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Username and password do not match")
	NotLoggedInError         = NewSimple(http.StatusUnauthorized, "No active session")

	EventConflictError = NewSimple(http.StatusConflict, "An event already exists at this date and time")
)
