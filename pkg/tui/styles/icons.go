package styles

// Status icons
const (
	IconUp      = "✓"
	IconDown    = "✗"
	IconUnknown = "○"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconBullet  = "•"
	IconSystem  = "●"
)

// StatusIcon returns the icon for a tool status string.
func StatusIcon(status string) string {
	switch status {
	case "up":
		return IconUp
	case "down":
		return IconDown
	default:
		return IconUnknown
	}
}

// LogLevelIcon returns the icon for an event log level.
func LogLevelIcon(level string) string {
	switch level {
	case "error", "ERROR":
		return IconDown
	case "warn", "WARN", "warning", "WARNING":
		return IconWarning
	case "info", "INFO":
		return IconInfo
	default:
		return IconBullet
	}
}
