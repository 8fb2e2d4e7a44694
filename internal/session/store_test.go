package session

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/Paralinkz/ParaTrackz/internal/models"
)

// newTestStore returns a store with a deterministic clock and id sequence,
// recording every released resource URL into the returned slice.
func newTestStore(t *testing.T) (*Store, *[]string) {
	t.Helper()

	released := &[]string{}
	s := NewStore(func(url string) error {
		*released = append(*released, url)
		return nil
	})

	base := time.Date(2025, 10, 31, 21, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	return s, released
}

func TestCreateSessionRejectsBlankName(t *testing.T) {
	s, _ := newTestStore(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateSession(name); !errors.Is(err, ErrEmptyName) {
			t.Errorf("CreateSession(%q) err = %v, want ErrEmptyName", name, err)
		}
	}
	if got := len(s.Sessions()); got != 0 {
		t.Fatalf("got %d sessions after rejected creates, want 0", got)
	}
}

func TestCreateSessionActivatesAndResetsWorkingSet(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.CreateSession("Old Rectory")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := s.AddNote("cold spot near the stairs"); err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	second, err := s.CreateSession("Mill Cellar")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if got := s.ActiveID(); got != second.ID {
		t.Errorf("ActiveID = %q, want %q", got, second.ID)
	}
	if got := len(s.Notes()); got != 0 {
		t.Errorf("got %d working notes after create, want 0", got)
	}

	// The first session never saved, so its committed evidence stays empty
	// and nothing leaks across
	old, ok := s.Session(first.ID)
	if !ok {
		t.Fatalf("first session disappeared")
	}
	if len(old.Notes) != 0 {
		t.Errorf("unsaved note leaked into committed state of %q", old.Name)
	}

	// Newest first
	sessions := s.Sessions()
	if sessions[0].ID != second.ID || sessions[1].ID != first.ID {
		t.Errorf("session order = [%s %s], want newest first", sessions[0].ID, sessions[1].ID)
	}
}

func TestCreateSessionCopiesLocationSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetLocation(&models.Coordinate{Latitude: 51.5, Longitude: -0.12, Accuracy: 8})

	sess, err := s.CreateSession("Chapel")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// A later fix must not touch the captured session location
	s.SetLocation(&models.Coordinate{Latitude: 40, Longitude: 3})

	got, _ := s.Session(sess.ID)
	if got.Location == nil || got.Location.Latitude != 51.5 || got.Location.Longitude != -0.12 {
		t.Errorf("session location = %+v, want snapshot of 51.5,-0.12", got.Location)
	}
}

func TestSaveThenLoadYieldsSavedCollections(t *testing.T) {
	s, _ := newTestStore(t)

	sess, _ := s.CreateSession("Attic Watch")
	s.AddNote("footsteps above")
	s.AddPhoto("door.jpg", "/blobs/door.jpg")
	s.AddRecording("/blobs/evp1.webm", 42)

	if !s.SaveActive() {
		t.Fatalf("SaveActive did not save")
	}
	savedNotes := s.Notes()
	savedPhotos := s.Photos()
	savedRecs := s.Recordings()

	// Edits after the save must not survive the reload
	s.AddNote("later scribble")

	if !s.LoadSession(sess.ID) {
		t.Fatalf("LoadSession did not find %s", sess.ID)
	}

	if !reflect.DeepEqual(s.Notes(), savedNotes) {
		t.Errorf("notes after reload = %+v, want %+v", s.Notes(), savedNotes)
	}
	if !reflect.DeepEqual(s.Photos(), savedPhotos) {
		t.Errorf("photos after reload = %+v, want %+v", s.Photos(), savedPhotos)
	}
	if !reflect.DeepEqual(s.Recordings(), savedRecs) {
		t.Errorf("recordings after reload = %+v, want %+v", s.Recordings(), savedRecs)
	}
}

func TestSaveTouchesOnlyTheActiveSession(t *testing.T) {
	s, _ := newTestStore(t)

	other, _ := s.CreateSession("Other")
	s.AddNote("belongs to other")
	s.SaveActive()

	s.CreateSession("Current")
	s.AddNote("belongs to current")
	s.SaveActive()

	got, _ := s.Session(other.ID)
	if len(got.Notes) != 1 || got.Notes[0].Text != "belongs to other" {
		t.Errorf("other session notes = %+v, want its own single note", got.Notes)
	}
}

func TestSaveWithoutActiveSessionIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	if s.SaveActive() {
		t.Errorf("SaveActive with no active session reported a save")
	}
}

func TestLoadUnknownIDChangesNothing(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("Keep Me")
	s.AddNote("still here")

	if s.LoadSession("nope") {
		t.Fatalf("LoadSession(nope) reported success")
	}
	if got := s.ActiveID(); got != sess.ID {
		t.Errorf("ActiveID = %q, want %q", got, sess.ID)
	}
	if got := len(s.Notes()); got != 1 {
		t.Errorf("working notes = %d, want 1 (unchanged)", got)
	}
}

func TestEvidenceRequiresActiveSession(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.AddNote("orphan"); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("AddNote err = %v, want ErrNoActiveSession", err)
	}
	if _, err := s.AddPhoto("x.jpg", "/blobs/x.jpg"); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("AddPhoto err = %v, want ErrNoActiveSession", err)
	}
	if _, err := s.AddRecording("/blobs/x.webm", 3); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("AddRecording err = %v, want ErrNoActiveSession", err)
	}
}

func TestAddNoteRejectsBlankText(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Session")

	if _, err := s.AddNote("   "); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("AddNote err = %v, want ErrEmptyNote", err)
	}
	if got := len(s.Notes()); got != 0 {
		t.Errorf("working notes = %d after rejected add, want 0", got)
	}
	if s.Dirty() {
		t.Errorf("store dirty after rejected add")
	}
}

func TestAddThenRemoveRestoresPreAddState(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Session")

	note, _ := s.AddNote("transient")
	if !s.RemoveNote(note.ID) {
		t.Fatalf("RemoveNote did not find %s", note.ID)
	}
	if got := len(s.Notes()); got != 0 {
		t.Errorf("working notes = %d, want 0", got)
	}

	// Removing again is a quiet no-op
	if s.RemoveNote(note.ID) {
		t.Errorf("second RemoveNote reported a removal")
	}
}

func TestWorkingOrderIsMostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Session")

	s.AddNote("first")
	s.AddNote("second")
	s.AddNote("third")

	notes := s.Notes()
	want := []string{"third", "second", "first"}
	for i, text := range want {
		if notes[i].Text != text {
			t.Errorf("notes[%d].Text = %q, want %q", i, notes[i].Text, text)
		}
	}
}

func TestUpdateNotesIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Session")

	photo, _ := s.AddPhoto("orb.jpg", "/blobs/orb.jpg")
	s.UpdatePhotoNotes(photo.ID, "faint orb above the mantel")
	once := s.Photos()
	s.UpdatePhotoNotes(photo.ID, "faint orb above the mantel")
	twice := s.Photos()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying the same patch twice diverged: %+v vs %+v", once, twice)
	}

	// Unknown id is a no-op
	if s.UpdatePhotoNotes("ghost-id", "nope") {
		t.Errorf("UpdatePhotoNotes on unknown id reported a hit")
	}
}

func TestDeleteActiveSessionClearsEverything(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("Doomed")
	s.AddNote("soon gone")

	if !s.DeleteSession(sess.ID) {
		t.Fatalf("DeleteSession did not find %s", sess.ID)
	}
	if got := s.ActiveID(); got != "" {
		t.Errorf("ActiveID = %q after deleting active session, want empty", got)
	}
	if got := len(s.Notes()); got != 0 {
		t.Errorf("working notes = %d, want 0", got)
	}
	if s.Dirty() {
		t.Errorf("store dirty after deleting active session")
	}
}

func TestDeleteOtherSessionKeepsWorkingSet(t *testing.T) {
	s, _ := newTestStore(t)
	doomed, _ := s.CreateSession("Doomed")
	active, _ := s.CreateSession("Active")
	s.AddNote("keep me")

	if !s.DeleteSession(doomed.ID) {
		t.Fatalf("DeleteSession did not find %s", doomed.ID)
	}
	if got := s.ActiveID(); got != active.ID {
		t.Errorf("ActiveID = %q, want %q", got, active.ID)
	}
	if got := len(s.Notes()); got != 1 {
		t.Errorf("working notes = %d, want 1", got)
	}
}

func TestDeleteUnknownSessionIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Session")
	if s.DeleteSession("nope") {
		t.Errorf("DeleteSession(nope) reported a delete")
	}
	if got := len(s.Sessions()); got != 1 {
		t.Errorf("sessions = %d, want 1", got)
	}
}

func TestDirtyFlagTransitions(t *testing.T) {
	s, _ := newTestStore(t)

	sess, _ := s.CreateSession("Session")
	if s.Dirty() {
		t.Fatalf("dirty after create, want clean")
	}

	note, _ := s.AddNote("mutation")
	if !s.Dirty() {
		t.Fatalf("clean after add, want dirty")
	}

	s.SaveActive()
	if s.Dirty() {
		t.Fatalf("dirty after save, want clean")
	}

	s.RemoveNote(note.ID)
	if !s.Dirty() {
		t.Fatalf("clean after remove, want dirty")
	}

	s.LoadSession(sess.ID)
	if s.Dirty() {
		t.Fatalf("dirty after load, want clean")
	}
}

func TestDiscardReleasesUncommittedResources(t *testing.T) {
	s, released := newTestStore(t)
	s.CreateSession("First")
	s.AddPhoto("a.jpg", "/blobs/a.jpg")
	s.AddRecording("/blobs/b.webm", 5)

	// Switching sessions without saving discards the working set,
	// so both handles must be released
	s.CreateSession("Second")

	want := map[string]bool{"/blobs/a.jpg": true, "/blobs/b.webm": true}
	if len(*released) != 2 || !want[(*released)[0]] || !want[(*released)[1]] {
		t.Errorf("released = %v, want both working blobs", *released)
	}
}

func TestCommittedResourcesSurviveReload(t *testing.T) {
	s, released := newTestStore(t)
	sess, _ := s.CreateSession("Session")
	s.AddPhoto("a.jpg", "/blobs/a.jpg")
	s.SaveActive()

	s.LoadSession(sess.ID)
	if len(*released) != 0 {
		t.Errorf("released = %v, want none: blob is committed", *released)
	}
}

func TestRemoveCommittedPhotoReleasesOnSave(t *testing.T) {
	s, released := newTestStore(t)
	s.CreateSession("Session")
	photo, _ := s.AddPhoto("a.jpg", "/blobs/a.jpg")
	s.SaveActive()

	// Still referenced by the committed record, nothing released yet
	s.RemovePhoto(photo.ID)
	if len(*released) != 0 {
		t.Fatalf("released = %v before save, want none", *released)
	}

	// Save drops the last reference
	s.SaveActive()
	if len(*released) != 1 || (*released)[0] != "/blobs/a.jpg" {
		t.Errorf("released = %v after save, want the dropped blob", *released)
	}
}

func TestRemoveUncommittedPhotoReleasesImmediately(t *testing.T) {
	s, released := newTestStore(t)
	s.CreateSession("Session")
	photo, _ := s.AddPhoto("a.jpg", "/blobs/a.jpg")

	s.RemovePhoto(photo.ID)
	if len(*released) != 1 || (*released)[0] != "/blobs/a.jpg" {
		t.Errorf("released = %v, want the uncommitted blob", *released)
	}
}

func TestDeleteSessionReleasesItsEvidence(t *testing.T) {
	s, released := newTestStore(t)
	sess, _ := s.CreateSession("Session")
	s.AddPhoto("a.jpg", "/blobs/a.jpg")
	s.AddRecording("/blobs/b.webm", 9)
	s.SaveActive()

	s.DeleteSession(sess.ID)
	if len(*released) != 2 {
		t.Errorf("released %d handles on delete, want 2 (%v)", len(*released), *released)
	}
}

func TestGeotagSixDecimalPrecision(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetLocation(&models.Coordinate{Latitude: 51.50336412345, Longitude: -0.12762598765, Accuracy: 12})
	s.CreateSession("Session")

	note, _ := s.AddNote("geo check")
	if note.Location == nil {
		t.Fatalf("note location absent, want rounded geotag")
	}
	if note.Location.Latitude != 51.503364 || note.Location.Longitude != -0.127626 {
		t.Errorf("geotag = %v,%v, want 6-decimal rounding", note.Location.Latitude, note.Location.Longitude)
	}
	if note.Location.Accuracy != 0 {
		t.Errorf("geotag accuracy = %v, want dropped", note.Location.Accuracy)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	sess, _ := s.CreateSession("Round Trip")
	s.AddNote("persisted")
	s.AddPhoto("a.jpg", "/blobs/a.jpg")
	s.SaveActive()

	fresh, _ := newTestStore(t)
	fresh.Restore(s.Snapshot())

	if got := fresh.ActiveID(); got != sess.ID {
		t.Errorf("restored ActiveID = %q, want %q", got, sess.ID)
	}
	if !reflect.DeepEqual(fresh.Sessions(), s.Sessions()) {
		t.Errorf("restored sessions diverge from snapshot source")
	}
	if !reflect.DeepEqual(fresh.Notes(), s.Notes()) {
		t.Errorf("restored working notes diverge from snapshot source")
	}
	if fresh.Dirty() {
		t.Errorf("restored store is dirty, want clean")
	}

	// Restored handles are live again: delete paths can release them
	if !fresh.Resources().Tracked(s.Photos()[0].ID) {
		t.Errorf("restored store does not track the committed photo handle")
	}
}

func TestSnapshotCarriesUnsavedWorkingEdits(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Round Trip")
	s.AddNote("committed")
	s.SaveActive()
	s.AddNote("unsaved")
	photo, _ := s.AddPhoto("pending.jpg", "/blobs/pending.jpg")

	fresh, _ := newTestStore(t)
	fresh.Restore(s.Snapshot())

	// Unsaved evidence survives, still uncommitted
	notes := fresh.Notes()
	if len(notes) != 2 || notes[0].Text != "unsaved" {
		t.Fatalf("restored working notes = %+v, want unsaved note on top", notes)
	}
	if !fresh.Dirty() {
		t.Errorf("restored store is clean, want dirty")
	}
	sess, _ := fresh.Active()
	if len(sess.Notes) != 1 || sess.Notes[0].Text != "committed" {
		t.Errorf("committed notes = %+v, want only the saved one", sess.Notes)
	}

	// The pending blob handle is live again and releases on discard
	if !fresh.Resources().Tracked(photo.ID) {
		t.Fatalf("restored store does not track the pending photo handle")
	}
	if !fresh.SaveActive() {
		t.Fatalf("SaveActive after restore did not save")
	}
	got, _ := fresh.Active()
	if len(got.Notes) != 2 {
		t.Errorf("committed notes after save = %d, want 2", len(got.Notes))
	}
}

func TestRestoreIgnoresVanishedActiveSession(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("Kept")

	snap := s.Snapshot()
	snap.ActiveID = "gone"
	snap.Notes = []models.Note{{ID: "n1", Text: "stale"}}
	snap.Dirty = true

	fresh, _ := newTestStore(t)
	fresh.Restore(snap)

	if got := fresh.ActiveID(); got != "" {
		t.Errorf("ActiveID = %q, want empty for a vanished session", got)
	}
	if got := len(fresh.Notes()); got != 0 {
		t.Errorf("working notes = %d, want 0", got)
	}
	if fresh.Dirty() {
		t.Errorf("store dirty with nothing selected")
	}
}
