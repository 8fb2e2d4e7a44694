package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/Paralinkz/ParaTrackz/internal/models"
	"github.com/Paralinkz/ParaTrackz/internal/session"
)

// BlobSink persists finalized capture bytes and returns the resource handle
// the Recording will carry. The media store implements this.
type BlobSink interface {
	Put(data []byte, ext string) (url string, err error)
}

// capture holds the state of one recording attempt. Each Start creates a
// fresh capture, so finalizing one can never race a later attempt's buffer.
type capture struct {
	chunks  []byte
	elapsed int
	done    chan struct{}
	wg      sync.WaitGroup
}

// Controller drives a single capture at a time: Idle -> Recording -> Idle,
// no pause state. The capture buffer and the one-second elapsed counter are
// the only concurrently-live resources and are always torn down together.
type Controller struct {
	mu        sync.Mutex
	store     *session.Store
	provider  Provider
	sink      BlobSink
	recording bool
	handle    Handle
	cur       *capture

	// overridable in tests
	newTicker func() (<-chan time.Time, func())
}

// NewController wires a controller to the session store, a capture provider
// and the blob sink that will hold finalized audio
func NewController(store *session.Store, provider Provider, sink BlobSink) *Controller {
	return &Controller{
		store:    store,
		provider: provider,
		sink:     sink,
		newTicker: func() (<-chan time.Time, func()) {
			t := time.NewTicker(time.Second)
			return t.C, t.Stop
		},
	}
}

// Start requests device access and begins buffering audio, ticking the
// elapsed counter once per second. Fails with session.ErrNoActiveSession when
// no session is open, ErrAlreadyRecording while a capture runs, and
// ErrCaptureDenied when the provider refuses access.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recording {
		return ErrAlreadyRecording
	}
	if c.store.ActiveID() == "" {
		return session.ErrNoActiveSession
	}

	handle, err := c.provider.RequestAccess(ctx)
	if err != nil {
		return err
	}

	tick, stopTick := c.newTicker()
	cur := &capture{done: make(chan struct{})}
	c.handle = handle
	c.cur = cur
	c.recording = true

	cur.wg.Add(1)
	go func() {
		defer cur.wg.Done()
		defer stopTick()
		for {
			select {
			case data, ok := <-handle.Chunks():
				if !ok {
					return
				}
				c.mu.Lock()
				cur.chunks = append(cur.chunks, data...)
				c.mu.Unlock()
			case <-tick:
				c.mu.Lock()
				cur.elapsed++
				c.mu.Unlock()
			case <-cur.done:
				// Drain whatever the handle flushed on Stop
				for data := range handle.Chunks() {
					c.mu.Lock()
					cur.chunks = append(cur.chunks, data...)
					c.mu.Unlock()
				}
				return
			}
		}
	}()

	return nil
}

// Stop finalizes the buffered audio into a blob, builds a Recording carrying
// the final elapsed duration, appends it to the working collection, releases
// the capture device and returns to idle. Calling Stop while idle is a no-op
// returning ok=false.
func (c *Controller) Stop() (models.Recording, bool, error) {
	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return models.Recording{}, false, nil
	}
	c.recording = false
	handle := c.handle
	cur := c.cur
	c.handle = nil
	c.cur = nil
	c.mu.Unlock()

	handle.Stop()
	close(cur.done)
	cur.wg.Wait()

	c.mu.Lock()
	data := cur.chunks
	duration := cur.elapsed
	c.mu.Unlock()

	releaseErr := handle.Release()

	url, err := c.sink.Put(data, "webm")
	if err != nil {
		return models.Recording{}, false, err
	}
	rec, err := c.store.AddRecording(url, duration)
	if err != nil {
		return models.Recording{}, false, err
	}
	if releaseErr != nil {
		return rec, true, releaseErr
	}
	return rec, true, nil
}

// Recording reports whether a capture is in progress
func (c *Controller) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

// Elapsed returns the current capture's elapsed-seconds count, zero when idle
func (c *Controller) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return 0
	}
	return c.cur.elapsed
}

// Close aborts any in-flight capture without keeping its audio: the counter
// is stopped and the device released together. Safe to call when idle.
func (c *Controller) Close() error {
	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return nil
	}
	handle := c.handle
	cur := c.cur
	c.handle = nil
	c.cur = nil
	c.recording = false
	c.mu.Unlock()

	handle.Stop()
	close(cur.done)
	cur.wg.Wait()

	return handle.Release()
}
