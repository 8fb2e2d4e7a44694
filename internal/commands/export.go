package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paralinkz/ParaTrackz/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active session summary as JSON",
	Long: `Export the active session's committed state as a JSON summary file.

The summary carries the session name, start time, location and full notes
list, plus photo and recording counts; binary payloads never leave the
archive. Save first if you want unsaved evidence included.`,
	Run: withApp(func(cmd *cobra.Command, args []string) {
		sess, ok := store.Active()
		if !ok {
			fmt.Println("No active session to export.")
			return
		}
		if store.Dirty() {
			fmt.Println("⚠️  The working set has unsaved evidence; the export reflects the last save.")
		}

		data, err := export.Session(sess)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sink := export.FileSink{Dir: cfg.ExportDir}
		path, err := sink.Write(export.SessionFilename(sess.Name, time.Now()), data, export.MIMEJSON)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📦 Exported session \"%s\" to %s\n", sess.Name, path)
	}),
}
