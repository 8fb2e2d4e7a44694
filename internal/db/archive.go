package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Paralinkz/ParaTrackz/internal/models"
	"github.com/Paralinkz/ParaTrackz/internal/session"
)

// SaveStore snapshots the in-memory store into the archive, replacing the
// previous snapshot wholesale. Committed evidence rows travel with their
// sessions; the active session's unsaved working collections are archived as
// separate working-flagged rows so a process exit never loses (or silently
// commits) pending edits. Row positions record most-recent-first ordering.
func SaveStore(store *session.Store) error {
	snap := store.Snapshot()

	return DB.Transaction(func(tx *gorm.DB) error {
		// Full replace: evidence rows cascade away with their sessions
		if err := tx.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		for _, kind := range []interface{}{&models.Note{}, &models.Photo{}, &models.Recording{}} {
			if err := tx.Where("1 = 1").Delete(kind).Error; err != nil {
				return fmt.Errorf("clear evidence: %w", err)
			}
		}

		for i := range snap.Sessions {
			sess := &snap.Sessions[i]
			sess.Position = i
			stampPositions(sess)
			if err := tx.Create(sess).Error; err != nil {
				return fmt.Errorf("archive session %q: %w", sess.Name, err)
			}
		}

		if err := saveWorking(tx, &snap); err != nil {
			return err
		}

		state := appState{ID: 1, ActiveSessionID: snap.ActiveID, Dirty: snap.Dirty}
		if err := tx.Save(&state).Error; err != nil {
			return fmt.Errorf("archive app state: %w", err)
		}
		return nil
	})
}

// saveWorking archives the working collections as rows keyed apart from the
// committed copies. A saved item exists as both a committed and a working row
// until it is removed from one side or the other.
func saveWorking(tx *gorm.DB, snap *session.Snapshot) error {
	if snap.ActiveID == "" {
		return nil
	}

	for i := range snap.Notes {
		snap.Notes[i].SessionID = snap.ActiveID
		snap.Notes[i].Position = i
		snap.Notes[i].Working = true
	}
	for i := range snap.Photos {
		snap.Photos[i].SessionID = snap.ActiveID
		snap.Photos[i].Position = i
		snap.Photos[i].Working = true
	}
	for i := range snap.Recordings {
		snap.Recordings[i].SessionID = snap.ActiveID
		snap.Recordings[i].Position = i
		snap.Recordings[i].Working = true
	}

	if len(snap.Notes) > 0 {
		if err := tx.Create(&snap.Notes).Error; err != nil {
			return fmt.Errorf("archive working notes: %w", err)
		}
	}
	if len(snap.Photos) > 0 {
		if err := tx.Create(&snap.Photos).Error; err != nil {
			return fmt.Errorf("archive working photos: %w", err)
		}
	}
	if len(snap.Recordings) > 0 {
		if err := tx.Create(&snap.Recordings).Error; err != nil {
			return fmt.Errorf("archive working recordings: %w", err)
		}
	}
	return nil
}

// RestoreStore hydrates the in-memory store from the archive snapshot,
// re-selecting the previously active session with its working collections and
// dirty state when it still exists. An empty archive yields an empty store.
func RestoreStore(store *session.Store) error {
	var sessions []models.Session
	err := DB.
		Preload("Notes", committed).
		Preload("Photos", committed).
		Preload("Recordings", committed).
		Order("position ASC").
		Find(&sessions).Error
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	var state appState
	if err := DB.First(&state, 1).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load app state: %w", err)
	}

	snap := session.Snapshot{
		Sessions: sessions,
		ActiveID: state.ActiveSessionID,
		Dirty:    state.Dirty,
	}
	if snap.ActiveID != "" {
		if err := loadWorking(&snap); err != nil {
			return err
		}
	}

	store.Restore(snap)
	return nil
}

// loadWorking pulls the active session's archived working rows
func loadWorking(snap *session.Snapshot) error {
	working := DB.Where("working = ? AND session_id = ?", true, snap.ActiveID).Order("position ASC")
	if err := working.Find(&snap.Notes).Error; err != nil {
		return fmt.Errorf("load working notes: %w", err)
	}
	working = DB.Where("working = ? AND session_id = ?", true, snap.ActiveID).Order("position ASC")
	if err := working.Find(&snap.Photos).Error; err != nil {
		return fmt.Errorf("load working photos: %w", err)
	}
	working = DB.Where("working = ? AND session_id = ?", true, snap.ActiveID).Order("position ASC")
	if err := working.Find(&snap.Recordings).Error; err != nil {
		return fmt.Errorf("load working recordings: %w", err)
	}
	return nil
}

func committed(db *gorm.DB) *gorm.DB {
	return db.Where("working = ?", false).Order("position ASC")
}

// stampPositions records each committed evidence item's slice index and
// owning session
func stampPositions(sess *models.Session) {
	for i := range sess.Notes {
		sess.Notes[i].SessionID = sess.ID
		sess.Notes[i].Position = i
		sess.Notes[i].Working = false
	}
	for i := range sess.Photos {
		sess.Photos[i].SessionID = sess.ID
		sess.Photos[i].Position = i
		sess.Photos[i].Working = false
	}
	for i := range sess.Recordings {
		sess.Recordings[i].SessionID = sess.ID
		sess.Recordings[i].Position = i
		sess.Recordings[i].Working = false
	}
}
