package srvcerror

import "net/http"

// Error is the outcome type every service operation returns on failure. It
// carries a stable error code for clients, a message that is safe to show to
// the user, and an optional private debug error for logs.
type Error struct {
	errorCode  string
	msgToUser  string // public
	dbgInfoErr error  // private, for debugging

	httpStatus int // optional, for HTTP responses
}

func (e *Error) Error() string {
	return e.msgToUser
}

func (e *Error) ErrorCode() string {
	return e.errorCode
}

func (e *Error) DebugInfo() error {
	return e.dbgInfoErr
}

func (e *Error) SetDebug(err error) *Error {
	e.dbgInfoErr = err
	return e
}

func (e *Error) HttpStatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.httpStatus
}

func (e *Error) SetHttpStatusCode(code int) *Error {
	e.httpStatus = code
	return e
}

func New(errorCode string, msgToUser string) *Error {
	return &Error{
		errorCode: errorCode,
		msgToUser: msgToUser,
	}
}

const ErrCodeInternalServerError = "internal_server_error"

func ErrInternalSE() *Error {
	return New(
		ErrCodeInternalServerError,
		"internal server error",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

const ErrCodeAuthorizationDenied = "authorization_denied"

func ErrAuthorizationDenied() *Error {
	return New(
		ErrCodeAuthorizationDenied,
		"you are not allowed to perform this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeNotFound = "not_found"

func ErrNotFound() *Error {
	return New(
		ErrCodeNotFound,
		"the requested record was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeValidationFailed = "validation_failed"

func ErrValidationFailed(msgToUser string) *Error {
	return New(
		ErrCodeValidationFailed,
		msgToUser,
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUnauthenticated = "unauthenticated"

func ErrUnauthenticated() *Error {
	return New(
		ErrCodeUnauthenticated,
		"please sign in first",
	).SetHttpStatusCode(http.StatusUnauthorized)
}
