package flow

import "errors"

var (
	// ErrFlowAlreadyActive is returned when a flow start is attempted while
	// another flow is in progress for the same session.
	ErrFlowAlreadyActive = errors.New("another flow is already active")

	// ErrUnauthorized is returned when the actor's role does not permit the
	// requested flow or command.
	ErrUnauthorized = errors.New("role not permitted")

	// ErrStoreUnavailable is returned when the session or counter store
	// cannot be reached. The current flow step is left unchanged so the user
	// may retry the same input.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnknownFlow is a programming error: a flow id with no registered
	// definition.
	ErrUnknownFlow = errors.New("unknown flow")

	// ErrUnknownStep is a programming error: a session points at a step id
	// the flow definition does not contain.
	ErrUnknownStep = errors.New("unknown step")
)

// Rejection is a recoverable validation failure: the engine re-prompts the
// same step carrying the reason, committing nothing.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

// Reject builds a Rejection with the given user-facing reason.
func Reject(reason string) error {
	return &Rejection{Reason: reason}
}

// AsRejection reports whether err is a validation rejection.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
