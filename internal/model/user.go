package model

// Global permission levels. The first registered user becomes a global owner;
// everyone after that is a member until promoted.
const (
	PermissionOwner  = 1
	PermissionMember = 2
)

// User is a registered account. Removed users are scrubbed in place rather
// than deleted so that historical message authorship keeps resolving.
type User struct {
	UID          int    `json:"uId"`
	NameFirst    string `json:"nameFirst"`
	NameLast     string `json:"nameLast"`
	Email        string `json:"email"`
	Handle       string `json:"handleStr"`
	PasswordHash string `json:"password"`
	PermissionID int    `json:"globalPermissionId"`
	Sessions     []string `json:"sessions"`
	ResetCode    string   `json:"resetCode"`

	ChannelsJoined []ChannelsJoinedLog `json:"channelsJoined"`
	DmsJoined      []DmsJoinedLog      `json:"dmsJoined"`
	MessagesSent   []MessagesSentLog   `json:"messagesSent"`
}

// Profile is the public view of a user returned by the API and denormalized
// into channel member lists.
type Profile struct {
	UID       int    `json:"uId"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	Email     string `json:"email"`
	Handle    string `json:"handleStr"`
}

// Profile returns the user's public fields.
func (u *User) Profile() Profile {
	return Profile{
		UID:       u.UID,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Email:     u.Email,
		Handle:    u.Handle,
	}
}

// IsRemoved reports whether the user has been scrubbed by an admin removal.
func (u *User) IsRemoved() bool {
	return u.NameFirst == RemovedUserFirstName && u.NameLast == RemovedUserLastName && u.Email == "" && u.Handle == ""
}

// Sentinel values written into a removed user's profile and messages.
const (
	RemovedUserFirstName = "Removed"
	RemovedUserLastName  = "user"
	RemovedMessageText   = "Removed user"
)
