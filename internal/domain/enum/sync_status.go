package enum

// SyncStatus is the connectivity state of the cloud sync adapter. It is the
// single authoritative flag; call sites never infer readiness another way.
type SyncStatus string

const (
	SyncStatusOffline SyncStatus = "offline"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusOnline  SyncStatus = "online"
)
