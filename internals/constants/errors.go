package constants

import "errors"

// Sentinel error lintas fitur. Service membungkus dengan fmt.Errorf("...: %w"),
// helper.JsonServiceError memetakan ke HTTP status + error_code.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrAlreadySubmitted = errors.New("contribution for this week already submitted")
	ErrMissingReason    = errors.New("rejection reason is required")
	ErrInvalidRange     = errors.New("weeks requested out of range")
	ErrNotPending       = errors.New("no longer pending")
	ErrLocked           = errors.New("locked by monthly close")
	ErrAlreadyClosed    = errors.New("month already closed")
	ErrPendingInMonth   = errors.New("month still has pending contributions")
	ErrInactiveMember   = errors.New("member is not active")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidInput     = errors.New("invalid input")
)
