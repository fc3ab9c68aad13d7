package workspace

import (
	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// ChannelSummary is the listing view of a channel.
type ChannelSummary struct {
	ChannelID int    `json:"channelId"`
	Name      string `json:"name"`
}

// ChannelDetailsResult is the full membership view of a channel.
type ChannelDetailsResult struct {
	Name         string          `json:"name"`
	IsPublic     bool            `json:"isPublic"`
	OwnerMembers []model.Profile `json:"ownerMembers"`
	AllMembers   []model.Profile `json:"allMembers"`
}

// MessagesPage is one page of a message listing. End is -1 when the page
// reaches the end of the history, otherwise Start+50.
type MessagesPage struct {
	Messages []model.MessageView `json:"messages"`
	Start    int                 `json:"start"`
	End      int                 `json:"end"`
}

// ChannelsCreate creates a channel with the caller as its first owner and
// member.
func ChannelsCreate(authUserID int, name string, isPublic bool) (int, error) {
	if runeLen(name) < 1 || runeLen(name) > 20 {
		return 0, validationError("channel name must be between 1 and 20 characters")
	}

	channelID := 0
	err := store.Update(func(s *model.Snapshot) error {
		creator := s.FindUser(authUserID)
		if creator == nil {
			return validationError("user does not exist")
		}

		channelID = nextChannelID(s)
		profile := creator.Profile()
		s.Channels = append(s.Channels, model.Channel{
			ChannelID:    channelID,
			Name:         name,
			IsPublic:     isPublic,
			Standup:      []string{},
			OwnerMembers: []model.Profile{profile},
			AllMembers:   []model.Profile{profile},
			Messages:     []model.Message{},
		})

		appendWorkspaceChannelStat(s, 1)
		appendUserChannelStat(creator, 1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return channelID, nil
}

// ChannelsList returns the channels the caller belongs to.
func ChannelsList(authUserID int) ([]ChannelSummary, error) {
	channels := []ChannelSummary{}
	err := store.View(func(s *model.Snapshot) error {
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		for _, c := range s.Channels {
			if c.HasMember(authUserID) {
				channels = append(channels, ChannelSummary{ChannelID: c.ChannelID, Name: c.Name})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// ChannelsListAll returns every channel, joined or not.
func ChannelsListAll(authUserID int) ([]ChannelSummary, error) {
	channels := []ChannelSummary{}
	err := store.View(func(s *model.Snapshot) error {
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		for _, c := range s.Channels {
			channels = append(channels, ChannelSummary{ChannelID: c.ChannelID, Name: c.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// ChannelDetails returns name, visibility and membership for members only.
func ChannelDetails(authUserID, channelID int) (*ChannelDetailsResult, error) {
	var details ChannelDetailsResult
	err := store.View(func(s *model.Snapshot) error {
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}
		details = ChannelDetailsResult{
			Name:         c.Name,
			IsPublic:     c.IsPublic,
			OwnerMembers: c.OwnerMembers,
			AllMembers:   c.AllMembers,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// ChannelJoin adds the caller to a channel. Private channels admit only
// global owners.
func ChannelJoin(authUserID, channelID int) error {
	return store.Update(func(s *model.Snapshot) error {
		u := s.FindUser(authUserID)
		if u == nil {
			return validationError("user does not exist")
		}
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if c.HasMember(authUserID) {
			return validationError("already a member of channel")
		}
		if !c.IsPublic && u.PermissionID != model.PermissionOwner {
			return authorizationError("cannot join a private channel")
		}

		c.AllMembers = append(c.AllMembers, u.Profile())
		appendUserChannelStat(u, 1)
		return nil
	})
}

// ChannelInvite adds uID to the channel on behalf of an existing member and
// notifies the invitee.
func ChannelInvite(authUserID, channelID, uID int) error {
	return store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		invitee := s.FindUser(uID)
		if invitee == nil {
			return validationError("user does not exist")
		}
		if c.HasMember(uID) {
			return validationError("already a member of channel")
		}
		inviter := s.FindUser(authUserID)
		if inviter == nil || !c.HasMember(authUserID) {
			return authorizationError("inviter is not a member of channel")
		}

		c.AllMembers = append(c.AllMembers, invitee.Profile())
		pushNotification(s, uID, model.Notification{
			ChannelID:           channelID,
			DmID:                -1,
			NotificationMessage: inviter.Handle + " added you to " + c.Name,
		})
		appendUserChannelStat(invitee, 1)
		return nil
	})
}

// ChannelMessages pages through a channel's history, 50 messages at a time.
func ChannelMessages(authUserID, channelID, start int) (*MessagesPage, error) {
	var page MessagesPage
	err := store.View(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		if start < 0 || start > len(c.Messages) {
			return validationError("start is greater than the number of messages")
		}
		if !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}
		messages, end := paginateMessages(c.Messages, start, authUserID)
		page = MessagesPage{Messages: messages, Start: start, End: end}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ChannelLeave removes the caller from both member lists. Leaving as the
// last owner is allowed and leaves the channel ownerless.
func ChannelLeave(authUserID, channelID int) error {
	return store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}

		c.OwnerMembers = removeProfile(c.OwnerMembers, authUserID)
		c.AllMembers = removeProfile(c.AllMembers, authUserID)
		if u := s.FindUser(authUserID); u != nil {
			appendUserChannelStat(u, -1)
		}
		return nil
	})
}

// ChannelAddOwner promotes an existing member to owner. Only owners may
// promote.
func ChannelAddOwner(authUserID, channelID, uID int) error {
	return store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		target := s.FindUser(uID)
		if target == nil {
			return validationError("user does not exist")
		}
		if c.HasOwner(uID) {
			return validationError("user is already an owner")
		}
		if !c.HasMember(uID) {
			return validationError("user is not a member of channel")
		}
		if !c.HasOwner(authUserID) {
			return authorizationError("caller is not an owner of channel")
		}

		c.OwnerMembers = append(c.OwnerMembers, target.Profile())
		return nil
	})
}

// ChannelRemoveOwner demotes an owner. The last owner cannot be removed.
func ChannelRemoveOwner(authUserID, channelID, uID int) error {
	return store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if s.FindUser(uID) == nil {
			return validationError("user does not exist")
		}
		if len(c.OwnerMembers) == 1 {
			return validationError("cannot remove the only owner")
		}
		if !c.HasOwner(authUserID) {
			return authorizationError("caller is not an owner of channel")
		}
		if !c.HasOwner(uID) {
			return validationError("user is not an owner of channel")
		}

		c.OwnerMembers = removeProfile(c.OwnerMembers, uID)
		return nil
	})
}

func removeProfile(members []model.Profile, uID int) []model.Profile {
	out := members[:0]
	for _, m := range members {
		if m.UID != uID {
			out = append(out, m)
		}
	}
	return out
}
