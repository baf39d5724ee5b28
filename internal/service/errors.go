package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	Conflict            = 409
	UnprocessableEntity = 422
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("Invalid request parameters")
	ErrUnauthenticated      = errors.New("Not authenticated")
	ErrForbidden            = errors.New("No permissions for query")
	ErrUserExist            = errors.New("User already exists")
	ErrIncorrectCredentials = errors.New("Incorrect username or password")
	ErrPostExist            = errors.New("Post already exists")
	UnExpectedError         = errors.New("Internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         UnprocessableEntity,
	ErrUnauthenticated:      Unauthorized,
	ErrForbidden:            Forbidden,
	ErrUserExist:            Conflict,
	ErrIncorrectCredentials: BadRequest,
	ErrPostExist:            Conflict,
	UnExpectedError:         InternalServerError,
}

const (
	StatusSuccess = "success"
	StatusInfo    = "info"
	StatusError   = "error"
)

// Result 软错误通道: not-found, draft-hidden, not-author and no-op outcomes are
// returned as values, and the route layer decides the HTTP status.
type Result struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	PostID        *uint64 `json:"post_id,omitempty"`
	NewStatus     string  `json:"new_status,omitempty"`
	CurrentStatus string  `json:"current_status,omitempty"`
}

func (r *Result) Failed() bool {
	return r != nil && r.Status == StatusError
}

func errorResult(msg string) *Result {
	return &Result{Status: StatusError, Message: msg}
}
