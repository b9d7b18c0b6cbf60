package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Organizer errors
	ErrNotADirectory = fmt.Errorf("path exists but is not a directory")
	ErrNameExhausted = fmt.Errorf("unique name suffixes exhausted")

	// Persistence errors
	ErrDatabaseDisabled = fmt.Errorf("history database disabled")
	ErrRunNotFound      = fmt.Errorf("run not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
