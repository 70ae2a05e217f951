package commands

// Reason codes reported to clients through the error event. This is the
// complete set the command pipeline emits; none of them are fatal to the
// connection.
const (
	ReasonNotLoggedIn      = "not_logged_in"
	ReasonUnknownCommand   = "unknown_command"
	ReasonMissingDirection = "missing_direction"
	ReasonInvalidDirection = "invalid_direction"
	ReasonNoExit           = "no_exit"
	ReasonEmptyMessage     = "empty_message"
)

// UserError is invalid input or usage reported back to the issuing
// connection. It is not a system failure: dispatchers turn it into an error
// event and carry on.
type UserError struct {
	Reason string
}

func (e *UserError) Error() string {
	return e.Reason
}

// NewUserError creates a user-facing error with a protocol reason code.
func NewUserError(reason string) *UserError {
	return &UserError{Reason: reason}
}
