package session

import "errors"

var (
	// ErrEmptyName rejects blank or whitespace-only session names
	ErrEmptyName = errors.New("session name cannot be empty")

	// ErrEmptyNote rejects blank or whitespace-only note text
	ErrEmptyNote = errors.New("note text cannot be empty")

	// ErrNoActiveSession is returned when an evidence action is attempted
	// without a session open for editing
	ErrNoActiveSession = errors.New("no active session: create or select a session first")
)
