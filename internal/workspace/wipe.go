package workspace

import "workspace-service/pkg/store"

// Clear resets the workspace to its empty state. Every user, channel, DM,
// message and notification is discarded and all sessions become invalid.
func Clear() error {
	return store.Clear()
}
