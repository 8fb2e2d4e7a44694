package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paralinkz/ParaTrackz/internal/recorder"
	"github.com/Paralinkz/ParaTrackz/internal/tui"
)

var recCmd = &cobra.Command{
	Use:   "rec",
	Short: "Capture and manage EVP recordings",
	Long: `Capture EVP (electronic voice phenomena) audio into the active session.

'rec start' opens an interactive recorder with a live elapsed clock; stopping
finalizes the capture into a recording with its duration fixed.`,
}

var recStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an EVP capture",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !requireActive() {
			return
		}

		controller := recorder.NewController(store, &recorder.BufferProvider{}, blobs)
		rec, ok, err := tui.RunRecorder(controller, store)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !ok {
			fmt.Println("❌ Capture aborted, nothing kept.")
			return
		}
		persist()
		fmt.Printf("🎙️  Recording captured: %s (id %s)\n", formatClock(rec.Duration), shortID(rec.ID))
	}),
}

var recListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List working recordings, most recent first",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		recs := store.Recordings()
		if len(recs) == 0 {
			fmt.Println("No recordings in the working set.")
			return
		}
		for _, rec := range recs {
			fmt.Printf("%s  [%s] %s\n", shortID(rec.ID), rec.Timestamp, formatClock(rec.Duration))
			if rec.Notes != "" {
				fmt.Printf("    %s\n", rec.Notes)
			}
		}
	}),
}

var recRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a recording from the working set",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, ok := resolveEvidenceID(args[0], store.Recordings())
		if !ok {
			return
		}
		store.RemoveRecording(id)
		persist()
		fmt.Printf("🗑️  Recording %s deleted\n", shortID(id))
	}),
}

var recNoteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Annotate a recording",
	Args:  cobra.MinimumNArgs(2),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, ok := resolveEvidenceID(args[0], store.Recordings())
		if !ok {
			return
		}
		store.UpdateRecordingNotes(id, strings.Join(args[1:], " "))
		persist()
		fmt.Printf("📝 Recording %s annotated\n", shortID(id))
	}),
}

// formatClock renders elapsed seconds as m:ss
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func init() {
	recCmd.AddCommand(recStartCmd)
	recCmd.AddCommand(recListCmd)
	recCmd.AddCommand(recRemoveCmd)
	recCmd.AddCommand(recNoteCmd)
}
