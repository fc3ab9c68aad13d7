package workspace

import (
	"net/mail"

	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// UserStatsResult is a user's involvement view: the full history of each
// per-user log plus an involvement rate against the workspace totals.
type UserStatsResult struct {
	ChannelsJoined  []model.ChannelsJoinedLog `json:"channelsJoined"`
	DmsJoined       []model.DmsJoinedLog      `json:"dmsJoined"`
	MessagesSent    []model.MessagesSentLog   `json:"messagesSent"`
	InvolvementRate float64                   `json:"involvementRate"`
}

// UserProfile returns a user's profile. Removed users remain resolvable so
// their past messages stay attributable.
func UserProfile(authUserID, uID int) (*model.Profile, error) {
	var profile model.Profile
	err := store.View(func(s *model.Snapshot) error {
		u := s.FindUser(uID)
		if u == nil {
			return validationError("user does not exist")
		}
		profile = u.Profile()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UsersAll lists the profiles of every active user, skipping removed ones.
func UsersAll(authUserID int) ([]model.Profile, error) {
	users := []model.Profile{}
	err := store.View(func(s *model.Snapshot) error {
		for i := range s.Users {
			if s.Users[i].IsRemoved() {
				continue
			}
			users = append(users, s.Users[i].Profile())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UserSetName updates the caller's first and last name. The change propagates
// to channel member lists, which carry profile copies.
func UserSetName(authUserID int, nameFirst, nameLast string) error {
	if runeLen(nameFirst) < 1 || runeLen(nameFirst) > 50 {
		return validationError("nameFirst must be between 1 and 50 characters")
	}
	if runeLen(nameLast) < 1 || runeLen(nameLast) > 50 {
		return validationError("nameLast must be between 1 and 50 characters")
	}

	return store.Update(func(s *model.Snapshot) error {
		u := s.FindUser(authUserID)
		if u == nil {
			return validationError("user does not exist")
		}
		u.NameFirst = nameFirst
		u.NameLast = nameLast
		refreshProfiles(s, u)
		return nil
	})
}

// UserSetEmail updates the caller's email address.
func UserSetEmail(authUserID int, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return validationError("invalid email")
	}

	return store.Update(func(s *model.Snapshot) error {
		for i := range s.Users {
			if s.Users[i].Email == email && s.Users[i].UID != authUserID {
				return validationError("email is already in use")
			}
		}
		u := s.FindUser(authUserID)
		if u == nil {
			return validationError("user does not exist")
		}
		u.Email = email
		refreshProfiles(s, u)
		return nil
	})
}

// UserSetHandle updates the caller's handle: 3 to 20 alphanumeric characters,
// unique across the workspace.
func UserSetHandle(authUserID int, handle string) error {
	if runeLen(handle) < 3 || runeLen(handle) > 20 {
		return validationError("handle must be between 3 and 20 characters")
	}
	for _, r := range handle {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return validationError("handle must be alphanumeric")
		}
	}

	return store.Update(func(s *model.Snapshot) error {
		for i := range s.Users {
			if s.Users[i].Handle == handle && s.Users[i].UID != authUserID {
				return validationError("handle is already in use")
			}
		}
		u := s.FindUser(authUserID)
		if u == nil {
			return validationError("user does not exist")
		}
		u.Handle = handle
		refreshProfiles(s, u)
		return nil
	})
}

// refreshProfiles rewrites the profile copies embedded in channel member
// lists after a profile field changes.
func refreshProfiles(s *model.Snapshot, u *model.User) {
	profile := u.Profile()
	for i := range s.Channels {
		c := &s.Channels[i]
		for j := range c.OwnerMembers {
			if c.OwnerMembers[j].UID == u.UID {
				c.OwnerMembers[j] = profile
			}
		}
		for j := range c.AllMembers {
			if c.AllMembers[j].UID == u.UID {
				c.AllMembers[j] = profile
			}
		}
	}
}

// UserStats returns the caller's log histories and involvement rate: the sum
// of channels joined, DMs joined and messages sent over the workspace totals,
// clamped to 1. A workspace with nothing in it yields 0.
func UserStats(authUserID int) (*UserStatsResult, error) {
	var stats UserStatsResult
	err := store.View(func(s *model.Snapshot) error {
		u := s.FindUser(authUserID)
		if u == nil {
			return validationError("user does not exist")
		}

		channelsJoined := 0
		if n := len(u.ChannelsJoined); n > 0 {
			channelsJoined = u.ChannelsJoined[n-1].NumChannelsJoined
		}
		dmsJoined := 0
		if n := len(u.DmsJoined); n > 0 {
			dmsJoined = u.DmsJoined[n-1].NumDmsJoined
		}
		messagesSent := 0
		if n := len(u.MessagesSent); n > 0 {
			messagesSent = u.MessagesSent[n-1].NumMessagesSent
		}

		denominator := len(s.Channels) + len(s.Dms) + totalMessages(s)
		rate := 0.0
		if denominator > 0 {
			rate = float64(channelsJoined+dmsJoined+messagesSent) / float64(denominator)
			if rate > 1 {
				rate = 1
			}
		}

		stats = UserStatsResult{
			ChannelsJoined:  u.ChannelsJoined,
			DmsJoined:       u.DmsJoined,
			MessagesSent:    u.MessagesSent,
			InvolvementRate: rate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// UsersStats returns the workspace-wide logs and utilization rate: the share
// of users belonging to at least one channel or DM. The computed rate is
// persisted with the snapshot.
func UsersStats(authUserID int) (*model.WorkspaceStats, error) {
	var stats model.WorkspaceStats
	err := store.Update(func(s *model.Snapshot) error {
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}

		active := 0
		for i := range s.Users {
			u := &s.Users[i]
			joined := 0
			if n := len(u.ChannelsJoined); n > 0 {
				joined += u.ChannelsJoined[n-1].NumChannelsJoined
			}
			if n := len(u.DmsJoined); n > 0 {
				joined += u.DmsJoined[n-1].NumDmsJoined
			}
			if joined > 0 {
				active++
			}
		}
		rate := 0.0
		if len(s.Users) > 0 {
			rate = float64(active) / float64(len(s.Users))
		}
		s.Statistics.UtilizationRate = rate

		stats = s.Statistics
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
