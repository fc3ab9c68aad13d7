package model

import "time"

// Snapshot is the entire application state, serialized as one JSON document.
type Snapshot struct {
	Users             []User              `json:"users"`
	Channels          []Channel           `json:"channels"`
	Dms               []Dm                `json:"dms"`
	UserNotifications []UserNotifications `json:"usernotifications"`
	Statistics        WorkspaceStats      `json:"statistics"`
}

// EmptySnapshot builds the default state: no entities, every workspace log
// seeded with a single zero entry.
func EmptySnapshot() *Snapshot {
	now := time.Now().Unix()
	return &Snapshot{
		Users:             []User{},
		Channels:          []Channel{},
		Dms:               []Dm{},
		UserNotifications: []UserNotifications{},
		Statistics: WorkspaceStats{
			ChannelsExist: []ChannelsExistLog{{NumChannelsExist: 0, TimeStamp: now}},
			DmsExist:      []DmsExistLog{{NumDmsExist: 0, TimeStamp: now}},
			MessagesExist: []MessagesExistLog{{NumMessagesExist: 0, TimeStamp: now}},
		},
	}
}

// FindUser returns the user with the given id, or nil.
func (s *Snapshot) FindUser(uID int) *User {
	for i := range s.Users {
		if s.Users[i].UID == uID {
			return &s.Users[i]
		}
	}
	return nil
}

// FindChannel returns the channel with the given id, or nil.
func (s *Snapshot) FindChannel(channelID int) *Channel {
	for i := range s.Channels {
		if s.Channels[i].ChannelID == channelID {
			return &s.Channels[i]
		}
	}
	return nil
}

// FindDm returns the DM with the given id, or nil.
func (s *Snapshot) FindDm(dmID int) *Dm {
	for i := range s.Dms {
		if s.Dms[i].DmID == dmID {
			return &s.Dms[i]
		}
	}
	return nil
}
