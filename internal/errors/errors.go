package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on login failure. It is deliberately
	// generic: callers must not learn whether the email or the password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthRequired is returned when a protected operation is invoked
	// without a valid session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("the username already exists")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords must match")
	// ErrInvalidUsername is returned for usernames outside [a-zA-Z0-9_.-].
	ErrInvalidUsername = errors.New("usernames must only have letters, numbers, dots, underscores or dashes")
	// ErrQuestionNotFound is returned when a question id does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrCategoryNotFound is returned when a category id does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("a required field is missing")
	// ErrInvalidDifficulty is returned for difficulty outside {1,2,3}.
	ErrInvalidDifficulty = errors.New("difficulty must be 1, 2 or 3")
	// ErrInvalidCategory is returned when a question references an unknown
	// category label.
	ErrInvalidCategory = errors.New("unknown category")
	// ErrCategoryExists is returned when a category type label is taken.
	ErrCategoryExists = errors.New("this category already exists")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unrecognized errors
// collapse to a generic 500 so database detail never reaches the user.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAuthRequired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTH_REQUIRED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrInvalidUsername):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_USERNAME")
	case errors.Is(err, ErrQuestionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrMissingField):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELD")
	case errors.Is(err, ErrInvalidDifficulty):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DIFFICULTY")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
