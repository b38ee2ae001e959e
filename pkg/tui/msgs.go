package tui

type HealthSnapshotMsg struct {
	Snapshot HealthSnapshot
}

type EventLogAppendMsg struct {
	Entry EventLogEntry
}
