package tui

const (
	TopicHubEvents  = "hub.events"
	TopicUIMessages = "hub.ui.msgs"
	TopicUIActions  = "hub.ui.actions"
)

const (
	DomainTypeHealthSnapshot = "health.snapshot"
	DomainTypeToolTransition = "tool.transition"
	DomainTypeActionLog      = "action.log"
)

const (
	UITypeHealthSnapshot = "tui.health.snapshot"
	UITypeEventAppend    = "tui.event.append"
	UITypeActionRequest  = "tui.action.request"
)
