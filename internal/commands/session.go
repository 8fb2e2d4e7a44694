package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paralinkz/ParaTrackz/internal/models"
	"github.com/Paralinkz/ParaTrackz/internal/parser"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage investigation sessions",
	Long: `Create, list, load, save and delete investigation sessions.

A session is a named container for one investigation's evidence. Exactly one
session can be active at a time; notes, photos and recordings you capture go
into its working set until you save.`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Start a new investigation session",
	Args:  cobra.MinimumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		if !confirmDiscard(force) {
			fmt.Println("Cancelled.")
			return
		}

		name := strings.Join(args, " ")
		sess, err := store.CreateSession(name)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		persist()

		fmt.Printf("🔦 Started session \"%s\" (id %s)\n", sess.Name, shortID(sess.ID))
		if sess.Location != nil {
			fmt.Printf("📍 %s\n", parser.FormatCoordinate(sess.Location))
		}
	}),
}

var sessionListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List sessions",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		sessions := store.Sessions()
		if len(sessions) == 0 {
			fmt.Println("No sessions yet. Use 'paratrackz session new \"Name\"' to start one.")
			return
		}

		// Print table header
		fmt.Printf("%-3s %-10s %-30s %-21s %-6s %-7s %s\n", "", "ID", "NAME", "STARTED", "NOTES", "PHOTOS", "RECS")
		fmt.Println(strings.Repeat("-", 88))

		activeID := store.ActiveID()
		for _, sess := range sessions {
			marker := ""
			if sess.ID == activeID {
				marker = "▶"
			}

			// Truncate name if too long
			name := sess.Name
			if len(name) > 28 {
				name = name[:25] + "..."
			}

			fmt.Printf("%-3s %-10s %-30s %-21s %-6d %-7d %d\n",
				marker,
				shortID(sess.ID),
				name,
				sess.StartTime,
				len(sess.Notes),
				len(sess.Photos),
				len(sess.Recordings))
		}
	}),
}

var sessionLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Open a session for editing",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		id, ok := resolveSessionID(args[0])
		if !ok {
			return
		}
		if !confirmDiscard(force) {
			fmt.Println("Cancelled.")
			return
		}
		if !store.LoadSession(id) {
			fmt.Printf("Error: session %s not found\n", args[0])
			return
		}
		persist()

		sess, _ := store.Active()
		fmt.Printf("📂 Loaded session \"%s\" (%d notes, %d photos, %d recordings)\n",
			sess.Name, len(sess.Notes), len(sess.Photos), len(sess.Recordings))
	}),
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Commit working evidence into the active session",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !store.SaveActive() {
			fmt.Println("No active session. Use 'paratrackz session new' or 'session load' first.")
			return
		}
		persist()

		sess, _ := store.Active()
		fmt.Printf("💾 Session \"%s\" saved (%d notes, %d photos, %d recordings)\n",
			sess.Name, len(sess.Notes), len(sess.Photos), len(sess.Recordings))
	}),
}

var sessionDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session and all of its evidence",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		id, ok := resolveSessionID(args[0])
		if !ok {
			return
		}
		sess, _ := store.Session(id)
		if !force && !confirm(fmt.Sprintf("Are you sure you want to delete session \"%s\"?", sess.Name)) {
			fmt.Println("Cancelled.")
			return
		}
		if !store.DeleteSession(id) {
			fmt.Printf("Error: session %s not found\n", args[0])
			return
		}
		persist()
		fmt.Printf("🗑️  Deleted session \"%s\"\n", sess.Name)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session and working evidence",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if loc := store.Location(); loc != nil {
			fmt.Printf("📍 %s\n", parser.FormatCoordinate(loc))
		}

		sess, ok := store.Active()
		if !ok {
			fmt.Println("No active session.")
			return
		}

		fmt.Printf("🔦 Active session: \"%s\" (id %s)\n", sess.Name, shortID(sess.ID))
		fmt.Printf("   Started: %s\n", sess.StartTime)
		if sess.LastSaved != "" {
			fmt.Printf("   Last saved: %s\n", sess.LastSaved)
		}
		fmt.Printf("   Working set: %d notes, %d photos, %d recordings\n",
			len(store.Notes()), len(store.Photos()), len(store.Recordings()))
		if store.Dirty() {
			fmt.Println("   ⚠️  Unsaved changes, run 'paratrackz session save'")
		}
	}),
}

// shortID trims a UUID for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveSessionID expands a display prefix to a full session id. Ambiguous
// or unknown prefixes are reported to the user.
func resolveSessionID(prefix string) (string, bool) {
	var matches []models.Session
	for _, sess := range store.Sessions() {
		if strings.HasPrefix(sess.ID, prefix) {
			matches = append(matches, sess)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].ID, true
	case 0:
		fmt.Printf("Error: session %s not found\n", prefix)
		return "", false
	default:
		fmt.Printf("Error: id %s is ambiguous (%d matches); use more characters\n", prefix, len(matches))
		return "", false
	}
}

func init() {
	sessionNewCmd.Flags().BoolP("force", "f", false, "Discard unsaved evidence without asking")
	sessionLoadCmd.Flags().BoolP("force", "f", false, "Discard unsaved evidence without asking")
	sessionDeleteCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")

	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionLoadCmd)
	sessionCmd.AddCommand(sessionSaveCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}
