package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paralinkz/ParaTrackz/internal/config"
	"github.com/Paralinkz/ParaTrackz/internal/db"
	"github.com/Paralinkz/ParaTrackz/internal/location"
	"github.com/Paralinkz/ParaTrackz/internal/media"
	"github.com/Paralinkz/ParaTrackz/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "paratrackz",
	Short: "A CLI evidence organizer for field investigations",
	Long: `paratrackz tracks and preserves evidence from your investigations.
Organize field notes, photos and EVP recordings into sessions, and export
session summaries or note logs as files.`,
}

// Shared app state, set up by initApp
var (
	cfg   *config.Config
	store *session.Store
	blobs *media.Store
)

// initApp loads config, opens the archive and hydrates the store, panicking
// on setup failure
func initApp() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	blobs, err = media.Open(cfg.MediaDir())
	if err != nil {
		panic(err)
	}

	store = session.NewStore(blobs.Release)

	if err := db.Initialize(cfg.DatabasePath()); err != nil {
		panic(err)
	}
	if err := db.RestoreStore(store); err != nil {
		panic(err)
	}

	// One-shot best-effort GPS fix; local providers resolve immediately,
	// anything slower is abandoned and locations stay absent
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	select {
	case <-location.Fetch(ctx, cfg.LocationProvider(), store):
	case <-ctx.Done():
	}
}

// withApp wraps a command function to set up app state first
func withApp(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initApp()
		defer db.Close()
		fn(cmd, args)
	}
}

// persist snapshots the store into the archive after a mutation
func persist() {
	if err := db.SaveStore(store); err != nil {
		fmt.Printf("Error: failed to write archive: %v\n", err)
	}
}

// confirm asks a yes/no question on the terminal, defaulting to no
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// confirmDiscard gates transitions that would silently drop unsaved edits
func confirmDiscard(force bool) bool {
	if force || !store.Dirty() {
		return true
	}
	return confirm("⚠️  You have unsaved evidence that will be discarded. Continue?")
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paratrackz %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(recCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
