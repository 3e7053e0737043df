package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoCurrentSession = errors.New("no current session")
	ErrRunInProgress    = errors.New("run already in progress")
	ErrNoRunInProgress  = errors.New("no run in progress")
	ErrEntryLocked      = errors.New("entry is locked during the run")
	ErrEmptyQueue       = errors.New("queue has no entries")
	ErrImporterTimeout  = errors.New("importer call timed out")
)
