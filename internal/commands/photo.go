package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paralinkz/ParaTrackz/internal/ingest"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Attach and manage evidence photos",
	Long: `Attach image files to the active session as evidence photos.

Each file becomes one photo, timestamped and geotagged at upload. A photo's
annotation is the only thing you can change afterwards.`,
}

var photoAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Upload one or more image files",
	Args:  cobra.MinimumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !requireActive() {
			return
		}

		added, errs := ingest.Photos(store, blobs, args)
		for _, err := range errs {
			fmt.Printf("⚠️  %v\n", err)
		}
		if len(added) > 0 {
			persist()
		}
		fmt.Printf("📷 Attached %d of %d photos\n", len(added), len(args))
	}),
}

var photoListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List working photos, most recent first",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		photos := store.Photos()
		if len(photos) == 0 {
			fmt.Println("No photos in the working set.")
			return
		}
		for _, photo := range photos {
			fmt.Printf("%s  [%s] %s\n", shortID(photo.ID), photo.Timestamp, photo.Name)
			if photo.Notes != "" {
				fmt.Printf("    %s\n", photo.Notes)
			}
		}
	}),
}

var photoRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a photo from the working set",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, ok := resolveEvidenceID(args[0], store.Photos())
		if !ok {
			return
		}
		store.RemovePhoto(id)
		persist()
		fmt.Printf("🗑️  Photo %s deleted\n", shortID(id))
	}),
}

var photoNoteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Annotate a photo",
	Args:  cobra.MinimumNArgs(2),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, ok := resolveEvidenceID(args[0], store.Photos())
		if !ok {
			return
		}
		store.UpdatePhotoNotes(id, strings.Join(args[1:], " "))
		persist()
		fmt.Printf("📝 Photo %s annotated\n", shortID(id))
	}),
}

func init() {
	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoRemoveCmd)
	photoCmd.AddCommand(photoNoteCmd)
}
