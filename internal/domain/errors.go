package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by session operations. Match with errors.Is.
var (
	ErrConfigInvalid     = errors.New("config invalid")
	ErrConnectFailed     = errors.New("connect failed")
	ErrPublishFailed     = errors.New("publish failed")
	ErrUnpublishFailed   = errors.New("unpublish failed")
	ErrLeaveFailed       = errors.New("leave failed")
	ErrInvalidTransition = errors.New("invalid transition")
)

// OpError is the result value of a failed session operation.
// State is the stable state the session was left in.
type OpError struct {
	Op    Trigger
	Kind  error
	State SessionState
	Err   error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v (state=%s)", e.Op, e.Kind, e.State)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code returns a stable, machine readable name for the kind of err.
func Code(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConfigInvalid):
		return "config_invalid"
	case errors.Is(err, ErrConnectFailed):
		return "connect_failed"
	case errors.Is(err, ErrPublishFailed):
		return "publish_failed"
	case errors.Is(err, ErrUnpublishFailed):
		return "unpublish_failed"
	case errors.Is(err, ErrLeaveFailed):
		return "leave_failed"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrUnknownField):
		return "unknown_field"
	default:
		return "internal"
	}
}
