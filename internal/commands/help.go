package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for paratrackz",
	Long:  `Display detailed help for all paratrackz commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██████╗  █████╗ ██████╗  █████╗ ████████╗██████╗  █████╗  ██████╗██╗  ██╗███████╗
██╔══██╗██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝╚══███╔╝
██████╔╝███████║██████╔╝███████║   ██║   ██████╔╝███████║██║     █████╔╝   ███╔╝
██╔═══╝ ██╔══██║██╔══██╗██╔══██║   ██║   ██╔══██╗██╔══██║██║     ██╔═██╗  ███╔╝
██║     ██║  ██║██║  ██║██║  ██║   ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗███████╗
╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝

paratrackz - Investigation Evidence Organizer

COMMANDS:

  session new <name>      Start a new investigation session (becomes active)
    -f, --force           Discard unsaved evidence without asking
  session ls              List sessions; ▶ marks the active one
  session load <id>       Open a session for editing
  session save            Commit working evidence into the active session
  session delete <id>     Delete a session and its evidence
    -f, --force           Skip the confirmation prompt

  note add [text]         Write a field note (no args opens the composer)
  note ls                 List working notes
  note rm <id>            Delete a note
  note export             Export working notes as a .txt file

  photo add <file>...     Attach image files as evidence photos
  photo ls                List working photos
  photo rm <id>           Delete a photo
  photo note <id> <text>  Annotate a photo

  rec start               Capture EVP audio with a live elapsed clock
    Keys: s stop & keep · esc/q abort
  rec ls                  List working recordings
  rec rm <id>             Delete a recording
  rec note <id> <text>    Annotate a recording

  export                  Export the active session summary as .json
  status                  Show the active session and unsaved-change state
  version                 Show version information
  help                    Show this help

Evidence commands need an active session. Ids can be shortened to any unique
prefix. Set PARATRACKZ_LOCATION="lat,lon" (or location: in
~/.paratrackz/config.yaml) to geotag new evidence.

`)
}
