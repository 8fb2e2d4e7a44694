// Package export serializes session state into the two portable documents
// the app produces: a JSON session summary and a plain-text notes dump.
// Encoders are pure: identical input yields byte-identical output.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Paralinkz/ParaTrackz/internal/models"
)

// sessionDocument is the exported summary shape. Photo and recording binary
// payloads are intentionally excluded: only their counts travel.
type sessionDocument struct {
	SessionName    string             `json:"sessionName"`
	StartTime      string             `json:"startTime"`
	Location       *models.Coordinate `json:"location"`
	Notes          []models.Note      `json:"notes"`
	PhotoCount     int                `json:"photoCount"`
	RecordingCount int                `json:"recordingCount"`
}

// Session encodes a session's committed state as an indented JSON document
func Session(sess models.Session) ([]byte, error) {
	doc := sessionDocument{
		SessionName:    sess.Name,
		StartTime:      sess.StartTime,
		Location:       sess.Location,
		Notes:          sess.Notes,
		PhotoCount:     len(sess.Photos),
		RecordingCount: len(sess.Recordings),
	}
	if doc.Notes == nil {
		doc.Notes = []models.Note{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode session %q: %w", sess.Name, err)
	}
	return data, nil
}

// Notes encodes notes as plain text, one block per note in the order given:
// a header line carrying the timestamp and geotag, the note body, then a
// blank separator line.
func Notes(notes []models.Note) []byte {
	var b strings.Builder
	for _, note := range notes {
		locationStr := "Location: Unknown"
		if note.Location != nil {
			locationStr = fmt.Sprintf("Location: %.6f, %.6f", note.Location.Latitude, note.Location.Longitude)
		}
		fmt.Fprintf(&b, "[%s] %s\n%s\n\n", note.Timestamp, locationStr, note.Text)
	}
	return []byte(b.String())
}
