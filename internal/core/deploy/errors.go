package deploy

import (
	"errors"
	"fmt"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrInvalidArgument is the class of errors returned for bad constructor input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrGitRepositoryRequired is returned by New when the repository is empty.
	ErrGitRepositoryRequired = fmt.Errorf("%w: git repository is required", ErrInvalidArgument)
)
