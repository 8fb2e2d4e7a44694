// Package session holds the aggregate root for investigation state: the
// session list, the single active-session id, and the working (possibly
// unsaved) evidence collections being edited for it. Working collections are
// a buffered-write model: edits only reach a session's committed evidence on
// an explicit save.
package session

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Paralinkz/ParaTrackz/internal/evidence"
	"github.com/Paralinkz/ParaTrackz/internal/models"
)

// Store owns all sessions and the working evidence for the active one.
// Safe for concurrent use so batched photo ingests never lose appends.
type Store struct {
	mu       sync.Mutex
	sessions []models.Session // most-recent-first
	activeID string
	dirty    bool

	notes      evidence.Collection[models.Note]
	photos     evidence.Collection[models.Photo]
	recordings evidence.Collection[models.Recording]

	location  *models.Coordinate
	resources *ResourceTable

	// overridable in tests
	now   func() time.Time
	newID func() string
}

// NewStore creates an empty store. release is invoked with the resource URL
// whenever a photo or recording handle is discarded; nil disables releasing.
func NewStore(release func(url string) error) *Store {
	return &Store{
		resources: NewResourceTable(release),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SetLocation records the one-shot GPS fix used to geotag new sessions and
// evidence. Best-effort: a nil coordinate leaves everything untagged.
func (s *Store) SetLocation(loc *models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc.Clone()
}

// Location returns the current GPS snapshot, if any
func (s *Store) Location() *models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location.Clone()
}

// CreateSession creates a new session, makes it active and resets the working
// collections. The current location snapshot is copied in, never referenced.
// Unsaved working edits from the previous session are silently discarded; the
// CLI layer is responsible for confirming that with the user first.
func (s *Store) CreateSession(name string) (models.Session, error) {
	if strings.TrimSpace(name) == "" {
		return models.Session{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.discardWorking()

	sess := models.Session{
		ID:        s.newID(),
		Name:      name,
		StartTime: models.FormatTimestamp(s.now()),
		Location:  s.location.Clone(),
	}
	s.sessions = append([]models.Session{sess.Clone()}, s.sessions...)
	s.activeID = sess.ID
	s.dirty = false

	return sess, nil
}

// LoadSession makes the session with the given id active and replaces the
// working collections with copies of its committed evidence. Unknown ids are
// a no-op; ok reports whether the session was found. Unsaved working edits
// are silently discarded on success.
func (s *Store) LoadSession(id string) (ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	s.discardWorking()

	sess := s.sessions[idx]
	s.activeID = sess.ID
	s.notes = evidence.FromSlice(sess.Notes)
	s.photos = evidence.FromSlice(sess.Photos)
	s.recordings = evidence.FromSlice(sess.Recordings)
	s.dirty = false
	return true
}

// SaveActive commits the working collections into the active session record
// and stamps its last-saved time. A no-op when no session is active; ok
// reports whether a save happened. Committed photo or recording handles that
// were removed from the working set are released here, once nothing
// references them anymore.
func (s *Store) SaveActive() (ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(s.activeID)
	if idx < 0 {
		return false
	}

	// Release handles of committed items dropped from the working set.
	working := make(map[string]bool)
	for _, id := range s.photos.IDs() {
		working[id] = true
	}
	for _, id := range s.recordings.IDs() {
		working[id] = true
	}
	for _, p := range s.sessions[idx].Photos {
		if !working[p.ID] {
			s.resources.Release(p.ID)
		}
	}
	for _, r := range s.sessions[idx].Recordings {
		if !working[r.ID] {
			s.resources.Release(r.ID)
		}
	}

	s.sessions[idx].Notes = s.notes.Items()
	s.sessions[idx].Photos = s.photos.Items()
	s.sessions[idx].Recordings = s.recordings.Items()
	s.sessions[idx].LastSaved = models.FormatTimestamp(s.now())
	s.dirty = false
	return true
}

// DeleteSession removes a session and releases the binary handles held by its
// committed photos and recordings. Deleting the active session clears the
// active id and resets the working collections. Unknown ids are a no-op.
func (s *Store) DeleteSession(id string) (ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	sess := s.sessions[idx]
	for _, p := range sess.Photos {
		s.resources.Release(p.ID)
	}
	for _, r := range sess.Recordings {
		s.resources.Release(r.ID)
	}
	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)

	if s.activeID == id {
		s.activeID = ""
		s.discardWorking()
		s.dirty = false
	}
	return true
}

// AddNote appends a note to the working collection, stamped with the current
// time and a 6-decimal geotag when a location fix exists
func (s *Store) AddNote(text string) (models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return models.Note{}, ErrEmptyNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(s.activeID) < 0 {
		return models.Note{}, ErrNoActiveSession
	}

	note := models.Note{
		ID:        s.newID(),
		Text:      text,
		Timestamp: models.FormatTimestamp(s.now()),
		Location:  s.geotag(),
	}
	s.notes.Prepend(note)
	s.dirty = true
	return note, nil
}

// RemoveNote drops a note from the working collection. Idempotent.
func (s *Store) RemoveNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.notes.Remove(id) {
		return false
	}
	s.dirty = true
	return true
}

// AddPhoto appends an uploaded photo to the working collection. url is the
// blob handle issued by the media store; the store takes over releasing it.
func (s *Store) AddPhoto(name, url string) (models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(s.activeID) < 0 {
		return models.Photo{}, ErrNoActiveSession
	}

	photo := models.Photo{
		ID:        s.newID(),
		URL:       url,
		Name:      name,
		Timestamp: models.FormatTimestamp(s.now()),
		Location:  s.geotag(),
	}
	s.resources.Register(photo.ID, url)
	s.photos.Prepend(photo)
	s.dirty = true
	return photo, nil
}

// RemovePhoto drops a photo from the working collection, releasing its blob
// immediately unless a committed session record still references it
func (s *Store) RemovePhoto(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.photos.Remove(id) {
		return false
	}
	if !s.isCommitted(id) {
		s.resources.Release(id)
	}
	s.dirty = true
	return true
}

// UpdatePhotoNotes replaces the annotation on a working photo. No-op for
// unknown ids; applying the same text twice is equivalent to applying it once.
func (s *Store) UpdatePhotoNotes(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.photos.Update(id, func(p models.Photo) models.Photo {
		p.Notes = text
		return p
	})
	if ok {
		s.dirty = true
	}
	return ok
}

// AddRecording appends a finished EVP capture to the working collection.
// duration is the final elapsed-seconds count fixed when capture stopped.
func (s *Store) AddRecording(url string, duration int) (models.Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(s.activeID) < 0 {
		return models.Recording{}, ErrNoActiveSession
	}

	rec := models.Recording{
		ID:        s.newID(),
		URL:       url,
		Timestamp: models.FormatTimestamp(s.now()),
		Duration:  duration,
		Location:  s.geotag(),
	}
	s.resources.Register(rec.ID, url)
	s.recordings.Prepend(rec)
	s.dirty = true
	return rec, nil
}

// RemoveRecording drops a recording from the working collection, releasing
// its blob immediately unless a committed session record still references it
func (s *Store) RemoveRecording(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.recordings.Remove(id) {
		return false
	}
	if !s.isCommitted(id) {
		s.resources.Release(id)
	}
	s.dirty = true
	return true
}

// UpdateRecordingNotes replaces the annotation on a working recording
func (s *Store) UpdateRecordingNotes(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.recordings.Update(id, func(r models.Recording) models.Recording {
		r.Notes = text
		return r
	})
	if ok {
		s.dirty = true
	}
	return ok
}

// Sessions returns copies of all sessions, most recent first
func (s *Store) Sessions() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Session returns a copy of the session with the given id
func (s *Store) Session(id string) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Session{}, false
	}
	return s.sessions[idx].Clone(), true
}

// Active returns a copy of the active session record, if one is selected
func (s *Store) Active() (models.Session, bool) {
	s.mu.Lock()
	id := s.activeID
	s.mu.Unlock()
	if id == "" {
		return models.Session{}, false
	}
	return s.Session(id)
}

// ActiveID returns the active session id, empty when none is selected
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Notes returns a copy of the working notes, most recent first
func (s *Store) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Items()
}

// Photos returns a copy of the working photos, most recent first
func (s *Store) Photos() []models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.Items()
}

// Recordings returns a copy of the working recordings, most recent first
func (s *Store) Recordings() []models.Recording {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordings.Items()
}

// Dirty reports whether the working collections hold unsaved edits
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Resources exposes the store's handle table
func (s *Store) Resources() *ResourceTable {
	return s.resources
}

// Snapshot is a deep copy of everything the store holds, exchanged with the
// persistence layer between invocations. The working collections and the
// dirty flag travel alongside the committed sessions: unsaved evidence must
// survive a process exit without being promoted to a save.
type Snapshot struct {
	Sessions []models.Session
	ActiveID string

	Notes      []models.Note
	Photos     []models.Photo
	Recordings []models.Recording
	Dirty      bool
}

// Snapshot returns a deep copy of the full store state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ActiveID:   s.activeID,
		Notes:      s.notes.Items(),
		Photos:     s.photos.Items(),
		Recordings: s.recordings.Items(),
		Dirty:      s.dirty,
	}
	snap.Sessions = make([]models.Session, len(s.sessions))
	for i, sess := range s.sessions {
		snap.Sessions[i] = sess.Clone()
	}
	return snap
}

// Restore replaces all store state from a persisted snapshot. Handles for
// committed and working photos and recordings are re-registered so later
// discard and delete paths can release them. A snapshot whose active id no
// longer exists restores with no session selected and empty working sets.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make([]models.Session, len(snap.Sessions))
	for i, sess := range snap.Sessions {
		s.sessions[i] = sess.Clone()
		for _, p := range sess.Photos {
			s.resources.Register(p.ID, p.URL)
		}
		for _, r := range sess.Recordings {
			s.resources.Register(r.ID, r.URL)
		}
	}

	s.activeID = ""
	s.notes.Reset()
	s.photos.Reset()
	s.recordings.Reset()
	s.dirty = false

	if snap.ActiveID == "" || s.indexOf(snap.ActiveID) < 0 {
		return
	}

	s.activeID = snap.ActiveID
	s.notes = evidence.FromSlice(snap.Notes)
	s.photos = evidence.FromSlice(snap.Photos)
	s.recordings = evidence.FromSlice(snap.Recordings)
	for _, p := range snap.Photos {
		s.resources.Register(p.ID, p.URL)
	}
	for _, r := range snap.Recordings {
		s.resources.Register(r.ID, r.URL)
	}
	s.dirty = snap.Dirty
}

// geotag returns the current location rounded to 6 decimals, accuracy dropped,
// or nil when no fix exists. Callers must hold s.mu.
func (s *Store) geotag() *models.Coordinate {
	if s.location == nil {
		return nil
	}
	return &models.Coordinate{
		Latitude:  round6(s.location.Latitude),
		Longitude: round6(s.location.Longitude),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// indexOf finds a session by id. Callers must hold s.mu.
func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

// isCommitted reports whether any session's committed evidence still
// references the given id. Callers must hold s.mu.
func (s *Store) isCommitted(id string) bool {
	for _, sess := range s.sessions {
		for _, p := range sess.Photos {
			if p.ID == id {
				return true
			}
		}
		for _, r := range sess.Recordings {
			if r.ID == id {
				return true
			}
		}
	}
	return false
}

// discardWorking resets the working collections, releasing any photo or
// recording handle that was never committed to a session. Callers must hold
// s.mu.
func (s *Store) discardWorking() {
	for _, id := range s.photos.IDs() {
		if !s.isCommitted(id) {
			s.resources.Release(id)
		}
	}
	for _, id := range s.recordings.IDs() {
		if !s.isCommitted(id) {
			s.resources.Release(id)
		}
	}
	s.notes.Reset()
	s.photos.Reset()
	s.recordings.Reset()
}
