package library

import (
	"errors"
	"fmt"
)

// Error kinds returned by parsing, validation and the manager. Callers match
// them with errors.Is; the wrapped message is what the shell shows the user.
var (
	// ErrIncorrectFormat marks a command line that does not follow its grammar.
	ErrIncorrectFormat = errors.New("invalid format")
	// ErrInvalidArgument marks a well-formed value that fails domain validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a referenced book or loan that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate marks an attempt to add a book whose title already exists.
	ErrDuplicate = errors.New("already exists")
	// ErrConflict marks an operation the entity's current state does not allow.
	ErrConflict = errors.New("conflict")
	// ErrStorage marks a failed read or write of a backing file.
	ErrStorage = errors.New("storage error")
	// ErrHistoryDisabled is returned by LoanHistory when no journal is open.
	ErrHistoryDisabled = errors.New("loan history is disabled")
)

// Validation failures; each wraps ErrInvalidArgument.
var (
	ErrInvalidDateFormat   = fmt.Errorf("%w: invalid date format, expected DD-MM-YYYY", ErrInvalidArgument)
	ErrInvalidCalendarDate = fmt.Errorf("%w: invalid calendar date", ErrInvalidArgument)
	ErrPastDate            = fmt.Errorf("%w: the return date cannot be in the past", ErrInvalidArgument)
	ErrInvalidPhone        = fmt.Errorf("%w: invalid phone number, digits only", ErrInvalidArgument)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email", ErrInvalidArgument)
	ErrInvalidCategory     = fmt.Errorf("%w: invalid category", ErrInvalidArgument)
	ErrInvalidCondition    = fmt.Errorf("%w: invalid condition", ErrInvalidArgument)
)
