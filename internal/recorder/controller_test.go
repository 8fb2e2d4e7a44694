package recorder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Paralinkz/ParaTrackz/internal/session"
)

// memSink collects finalized blobs in memory
type memSink struct {
	blobs map[string][]byte
}

func newMemSink() *memSink {
	return &memSink{blobs: make(map[string][]byte)}
}

func (s *memSink) Put(data []byte, ext string) (string, error) {
	url := fmt.Sprintf("/blobs/%d.%s", len(s.blobs), ext)
	s.blobs[url] = data
	return url, nil
}

// handleProvider hands out a single buffer handle it keeps a reference to
type handleProvider struct {
	handle *bufferHandle
}

func (p *handleProvider) RequestAccess(ctx context.Context) (Handle, error) {
	p.handle = newBufferHandle()
	return p.handle, nil
}

// newTestController wires a controller with an active session, a manual tick
// channel and an in-memory sink
func newTestController(t *testing.T, provider Provider) (*Controller, *session.Store, *memSink, chan time.Time) {
	t.Helper()

	store := session.NewStore(nil)
	if _, err := store.CreateSession("EVP Sweep"); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sink := newMemSink()
	c := NewController(store, provider, sink)

	tick := make(chan time.Time)
	c.newTicker = func() (<-chan time.Time, func()) {
		return tick, func() {}
	}
	return c, store, sink, tick
}

// waitFor polls until cond holds or the deadline passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never held")
}

func TestStartRequiresActiveSession(t *testing.T) {
	store := session.NewStore(nil)
	c := NewController(store, &BufferProvider{}, newMemSink())

	if err := c.Start(context.Background()); !errors.Is(err, session.ErrNoActiveSession) {
		t.Errorf("Start err = %v, want ErrNoActiveSession", err)
	}
	if c.Recording() {
		t.Errorf("controller recording after rejected start")
	}
}

func TestStartDeniedStaysIdle(t *testing.T) {
	c, store, _, _ := newTestController(t, &BufferProvider{Denied: true})

	if err := c.Start(context.Background()); !errors.Is(err, ErrCaptureDenied) {
		t.Errorf("Start err = %v, want ErrCaptureDenied", err)
	}
	if c.Recording() {
		t.Errorf("controller recording after denial")
	}

	// Denial is fatal to that attempt only: a granting provider works next
	c.provider = &BufferProvider{}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start after re-grant: %v", err)
	}
	if _, ok, err := c.Stop(); !ok || err != nil {
		t.Fatalf("Stop: ok=%v err=%v", ok, err)
	}
	if got := len(store.Recordings()); got != 1 {
		t.Errorf("recordings = %d, want 1", got)
	}
}

func TestDoubleStartRejected(t *testing.T) {
	c, _, _, _ := newTestController(t, &BufferProvider{})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("second Start err = %v, want ErrAlreadyRecording", err)
	}
	c.Close()
}

func TestStopWhileIdleIsNoop(t *testing.T) {
	c, store, _, _ := newTestController(t, &BufferProvider{})

	rec, ok, err := c.Stop()
	if ok || err != nil {
		t.Errorf("Stop while idle = (%+v, %v, %v), want no-op", rec, ok, err)
	}
	if got := len(store.Recordings()); got != 0 {
		t.Errorf("recordings = %d after idle stop, want 0", got)
	}
}

func TestStopFinalizesDurationAndAudio(t *testing.T) {
	provider := &handleProvider{}
	c, store, sink, tick := newTestController(t, provider)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	provider.handle.Feed([]byte("whisp"))
	for i := 0; i < 3; i++ {
		tick <- time.Now()
	}
	provider.handle.Feed([]byte("er"))
	waitFor(t, func() bool { return c.Elapsed() == 3 })

	rec, ok, err := c.Stop()
	if err != nil || !ok {
		t.Fatalf("Stop: ok=%v err=%v", ok, err)
	}

	if rec.Duration != 3 {
		t.Errorf("Duration = %d, want 3", rec.Duration)
	}
	if string(sink.blobs[rec.URL]) != "whisper" {
		t.Errorf("finalized audio = %q, want %q", sink.blobs[rec.URL], "whisper")
	}
	if got := len(store.Recordings()); got != 1 {
		t.Errorf("recordings = %d, want 1", got)
	}
	if !provider.handle.Released() {
		t.Errorf("capture device not released after stop")
	}
	if c.Recording() || c.Elapsed() != 0 {
		t.Errorf("controller not reset: recording=%v elapsed=%d", c.Recording(), c.Elapsed())
	}
}

// hookHandle runs a callback the moment the controller stops it, before the
// chunk channel closes
type hookHandle struct {
	*bufferHandle
	onStop func()
}

func (h *hookHandle) Stop() {
	if h.onStop != nil {
		h.onStop()
		h.onStop = nil
	}
	h.bufferHandle.Stop()
}

// seqProvider hands out pre-built handles in order
type seqProvider struct {
	handles []Handle
	next    int
}

func (p *seqProvider) RequestAccess(ctx context.Context) (Handle, error) {
	h := p.handles[p.next]
	p.next++
	return h, nil
}

func TestStopKeepsFinalizedBufferApartFromNextStart(t *testing.T) {
	first := &hookHandle{bufferHandle: newBufferHandle()}
	second := newBufferHandle()
	provider := &seqProvider{handles: []Handle{first, second}}
	c, store, sink, _ := newTestController(t, provider)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	first.Feed([]byte("whisper"))

	// The controller reports idle as soon as Stop begins, so a new capture
	// can start while the old buffer is still being finalized. Its audio
	// must stay out of the recording being written.
	first.onStop = func() {
		if err := c.Start(context.Background()); err != nil {
			t.Errorf("Start during finalize: %v", err)
			return
		}
		second.Feed([]byte("intruder"))
	}

	rec, ok, err := c.Stop()
	if err != nil || !ok {
		t.Fatalf("Stop: ok=%v err=%v", ok, err)
	}
	if string(sink.blobs[rec.URL]) != "whisper" {
		t.Errorf("finalized audio = %q, want %q", sink.blobs[rec.URL], "whisper")
	}
	if !c.Recording() {
		t.Fatalf("second capture not running")
	}

	rec2, ok, err := c.Stop()
	if err != nil || !ok {
		t.Fatalf("second Stop: ok=%v err=%v", ok, err)
	}
	if string(sink.blobs[rec2.URL]) != "intruder" {
		t.Errorf("second audio = %q, want %q", sink.blobs[rec2.URL], "intruder")
	}
	if got := len(store.Recordings()); got != 2 {
		t.Errorf("recordings = %d, want 2", got)
	}
}

func TestCloseTearsDownWithoutKeeping(t *testing.T) {
	provider := &handleProvider{}
	c, store, sink, tick := newTestController(t, provider)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tick <- time.Now()
	provider.handle.Feed([]byte("lost"))

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := len(store.Recordings()); got != 0 {
		t.Errorf("recordings = %d after abort, want 0", got)
	}
	if got := len(sink.blobs); got != 0 {
		t.Errorf("sink holds %d blobs after abort, want 0", got)
	}
	if !provider.handle.Released() {
		t.Errorf("capture device not released on teardown")
	}
	if c.Recording() || c.Elapsed() != 0 {
		t.Errorf("controller not reset after Close")
	}

	// Closing again is safe
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
