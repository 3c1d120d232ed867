package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")

	// Transcript pipeline errors
	ErrEmptyTranscript = errors.New("transcript text is required")
	ErrJobTerminal     = errors.New("transcript job already in a terminal state")
	ErrExtractionEmpty = errors.New("extraction returned no content")
)
