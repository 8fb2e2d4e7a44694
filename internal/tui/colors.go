package tui

// Color constants for the paratrackz TUI theme
const (
	// Base Colors
	ColorAppBackground = ""        // Use terminal default background
	ColorBorder        = "#334155" // Slate

	// Text Colors
	ColorPrimaryText   = "#E2E8F0" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#94A3B8" // Secondary text - cool slate grey
	ColorDisabledText  = "#64748B" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (spectral teal theme)
	ColorAccentMain   = "#22D3EE" // Accent elements, active borders
	ColorAccentBright = "#67E8F9" // Highlights, live readouts

	// State Colors
	ColorError     = "#EF4444" // Validation errors
	ColorRecording = "#F97316" // Live capture indicator
	ColorSuccess   = "#22C55E" // Success, confirmations
)
