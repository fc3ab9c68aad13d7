package model

// Notification references its channel-or-DM origin; whichever side does not
// apply holds -1.
type Notification struct {
	ChannelID           int    `json:"channelId"`
	DmID                int    `json:"dmId"`
	NotificationMessage string `json:"notificationMessage"`
}

// UserNotifications is one recipient's log, most recent first.
type UserNotifications struct {
	UID           int            `json:"uId"`
	Notifications []Notification `json:"notifications"`
}
