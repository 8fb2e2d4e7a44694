package recorder

import (
	"context"
	"sync"
)

// BufferProvider is an in-memory capture provider. It stands in for a real
// microphone: actual device access and audio encoding happen outside this
// process, so captures carry whatever bytes were fed to the handle. Tests and
// the recording TUI run against it.
type BufferProvider struct {
	// Denied makes every access request fail with ErrCaptureDenied
	Denied bool
}

// RequestAccess implements Provider
func (p *BufferProvider) RequestAccess(ctx context.Context) (Handle, error) {
	if p.Denied {
		return nil, ErrCaptureDenied
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newBufferHandle(), nil
}

type bufferHandle struct {
	ch       chan []byte
	stopOnce sync.Once

	mu       sync.Mutex
	released bool
}

func newBufferHandle() *bufferHandle {
	return &bufferHandle{ch: make(chan []byte, 16)}
}

// Feed pushes captured bytes into the handle, dropping them once stopped
func (h *bufferHandle) Feed(data []byte) {
	defer func() {
		// Sending on a stopped handle is a silent drop
		recover()
	}()
	h.ch <- data
}

// Chunks implements Handle
func (h *bufferHandle) Chunks() <-chan []byte { return h.ch }

// Stop implements Handle
func (h *bufferHandle) Stop() {
	h.stopOnce.Do(func() { close(h.ch) })
}

// Release implements Handle
func (h *bufferHandle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
	return nil
}

// Released reports whether the device was given back
func (h *bufferHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}
