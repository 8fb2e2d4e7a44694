// Package recorder owns the start/stop lifecycle for EVP audio capture and
// the elapsed-seconds counter that runs alongside it.
package recorder

import (
	"context"
	"errors"
)

var (
	// ErrCaptureDenied is returned when the platform refuses microphone
	// access. Fatal to that start attempt only; the controller stays idle.
	ErrCaptureDenied = errors.New("microphone access denied")

	// ErrAlreadyRecording rejects starting a capture while one is running,
	// so a second elapsed counter can never be spawned
	ErrAlreadyRecording = errors.New("a recording is already in progress")
)

// Provider grants access to an audio capture device
type Provider interface {
	// RequestAccess asks the platform for a capture device. Returns
	// ErrCaptureDenied when the user or platform refuses.
	RequestAccess(ctx context.Context) (Handle, error)
}

// Handle is a live audio capture. Chunks delivers captured audio until Stop
// is called, after which the channel is closed. Release frees the underlying
// device and must always be called once capture is finished.
type Handle interface {
	Chunks() <-chan []byte
	Stop()
	Release() error
}
