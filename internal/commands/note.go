package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paralinkz/ParaTrackz/internal/export"
	"github.com/Paralinkz/ParaTrackz/internal/session"
	"github.com/Paralinkz/ParaTrackz/internal/tui"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Capture and manage field notes",
	Long: `Capture timestamped, geotagged field notes into the active session.

Notes are immutable once written: correct a note by deleting it and writing a
new one. Working notes reach the session record on 'session save'.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Write a field note",
	Long: `Write a field note into the working set.

With no arguments an interactive composer opens; otherwise the arguments are
joined into the note text.`,
	Args: cobra.ArbitraryArgs,
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !requireActive() {
			return
		}

		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			composed, ok, err := tui.RunNoteComposer()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !ok {
				fmt.Println("❌ Note discarded.")
				return
			}
			text = composed
		}

		note, err := store.AddNote(text)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		persist()
		fmt.Printf("📝 Note recorded at %s (id %s)\n", note.Timestamp, shortID(note.ID))
	}),
}

var noteListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List working notes, most recent first",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		notes := store.Notes()
		if len(notes) == 0 {
			fmt.Println("No notes in the working set.")
			return
		}
		for _, note := range notes {
			fmt.Printf("%s  [%s]\n", shortID(note.ID), note.Timestamp)
			fmt.Printf("    %s\n", note.Text)
		}
	}),
}

var noteRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note from the working set",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, ok := resolveEvidenceID(args[0], store.Notes())
		if !ok {
			return
		}
		store.RemoveNote(id)
		persist()
		fmt.Printf("🗑️  Note %s deleted\n", shortID(id))
	}),
}

var noteExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export working notes as a text file",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		notes := store.Notes()
		if len(notes) == 0 {
			fmt.Println("No notes to export.")
			return
		}

		sink := export.FileSink{Dir: cfg.ExportDir}
		path, err := sink.Write(export.NotesFilename(time.Now()), export.Notes(notes), export.MIMEText)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📄 Exported %d notes to %s\n", len(notes), path)
	}),
}

// resolveEvidenceID expands a display prefix against a working collection
func resolveEvidenceID[T interface{ EvidenceID() string }](prefix string, items []T) (string, bool) {
	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.EvidenceID(), prefix) {
			matches = append(matches, it.EvidenceID())
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], true
	case 0:
		fmt.Printf("Error: %s not found in the working set\n", prefix)
		return "", false
	default:
		fmt.Printf("Error: id %s is ambiguous (%d matches); use more characters\n", prefix, len(matches))
		return "", false
	}
}

// requireActive surfaces the no-active-session precondition before a prompt
// or TUI would otherwise open
func requireActive() bool {
	if store.ActiveID() == "" {
		fmt.Printf("Error: %v\n", session.ErrNoActiveSession)
		return false
	}
	return true
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteRemoveCmd)
	noteCmd.AddCommand(noteExportCmd)
}
