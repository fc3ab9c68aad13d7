package model

// Channel holds a denormalized snapshot of its members' public profiles.
// Owner members are always a subset of all members.
type Channel struct {
	ChannelID         int       `json:"channelId"`
	Name              string    `json:"name"`
	IsPublic          bool      `json:"isPublic"`
	StandupActive     bool      `json:"standupActive"`
	StandupFinishTime int64     `json:"standupFinishTime"`
	StandupStarterUID int       `json:"standupStarterUId"`
	Standup           []string  `json:"standup"`
	OwnerMembers      []Profile `json:"ownerMembers"`
	AllMembers        []Profile `json:"allMembers"`
	Messages          []Message `json:"messages"`
}

// HasMember reports whether the user is in the channel's member list.
func (c *Channel) HasMember(uID int) bool {
	for _, m := range c.AllMembers {
		if m.UID == uID {
			return true
		}
	}
	return false
}

// HasOwner reports whether the user is in the channel's owner list.
func (c *Channel) HasOwner(uID int) bool {
	for _, m := range c.OwnerMembers {
		if m.UID == uID {
			return true
		}
	}
	return false
}
