package model

// Statistics are append-only time-series logs: each join/leave/create/remove
// event appends a new entry whose count is the previous count plus or minus
// one. The latest entry is the current value.

type ChannelsJoinedLog struct {
	NumChannelsJoined int   `json:"numChannelsJoined"`
	TimeStamp         int64 `json:"timeStamp"`
}

type DmsJoinedLog struct {
	NumDmsJoined int   `json:"numDmsJoined"`
	TimeStamp    int64 `json:"timeStamp"`
}

type MessagesSentLog struct {
	NumMessagesSent int   `json:"numMessagesSent"`
	TimeStamp       int64 `json:"timeStamp"`
}

type ChannelsExistLog struct {
	NumChannelsExist int   `json:"numChannelsExist"`
	TimeStamp        int64 `json:"timeStamp"`
}

type DmsExistLog struct {
	NumDmsExist int   `json:"numDmsExist"`
	TimeStamp   int64 `json:"timeStamp"`
}

type MessagesExistLog struct {
	NumMessagesExist int   `json:"numMessagesExist"`
	TimeStamp        int64 `json:"timeStamp"`
}

// WorkspaceStats is the workspace-wide counterpart of the per-user logs.
// UtilizationRate is recomputed and persisted whenever workspace stats are
// read.
type WorkspaceStats struct {
	ChannelsExist   []ChannelsExistLog `json:"channelsExist"`
	DmsExist        []DmsExistLog      `json:"dmsExist"`
	MessagesExist   []MessagesExistLog `json:"messagesExist"`
	UtilizationRate float64            `json:"utilizationRate"`
}
