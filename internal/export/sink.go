package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MIME types of the two export documents
const (
	MIMEJSON = "application/json"
	MIMEText = "text/plain"
)

// Sink accepts a finished export document and makes it available to the user
type Sink interface {
	Write(filename string, data []byte, mimeType string) (path string, err error)
}

// FileSink saves exports into a directory on disk
type FileSink struct {
	Dir string
}

// Write implements Sink
func (s FileSink) Write(filename string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// SessionFilename names a session summary export. The timestamp is supplied
// by the caller so encoding itself stays deterministic.
func SessionFilename(sessionName string, now time.Time) string {
	return fmt.Sprintf("investigation-%s-%d.json", sanitize(sessionName), now.UnixMilli())
}

// NotesFilename names a notes export
func NotesFilename(now time.Time) string {
	return fmt.Sprintf("investigation-notes-%d.txt", now.UnixMilli())
}

// sanitize keeps user-supplied session names from escaping the export dir
func sanitize(name string) string {
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	return strings.ReplaceAll(name, "..", "-")
}
