package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the form.

// Icons
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconClose    = "×"
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
	ErrorMessageFormat  = "An error occurred: %s"
)

// Layout sizing
const (
	WindowMinWidth float32 = 560
	ResultPopupW   float32 = 320
	ResultPopupH   float32 = 120
)

// Loading indicator
var LoadingFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

const LoadingFrameInterval = 100 * time.Millisecond
