package workspace

import (
	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// findMessage locates a message by id anywhere in the workspace and returns
// pointers to it and to the channel or DM holding it. Exactly one of the
// containers is non-nil on success.
func findMessage(s *model.Snapshot, messageID int) (*model.Message, *model.Channel, *model.Dm) {
	for i := range s.Channels {
		c := &s.Channels[i]
		for j := range c.Messages {
			if c.Messages[j].MessageID == messageID {
				return &c.Messages[j], c, nil
			}
		}
	}
	for i := range s.Dms {
		d := &s.Dms[i]
		for j := range d.Messages {
			if d.Messages[j].MessageID == messageID {
				return &d.Messages[j], nil, d
			}
		}
	}
	return nil, nil, nil
}

// messageIsSent reports whether a message's send time has passed. Messages
// scheduled for the future exist in storage but cannot be interacted with
// until due.
func messageIsSent(m *model.Message) bool {
	return now() >= m.TimeSent
}

func deleteMessage(msgs []model.Message, messageID int) []model.Message {
	for i := range msgs {
		if msgs[i].MessageID == messageID {
			return append(msgs[:i], msgs[i+1:]...)
		}
	}
	return msgs
}

// notifyTagged fans out a tag notification to every member of the channel or
// DM whose handle appears as "@handle" in the message body.
func notifyTagged(s *model.Snapshot, sender *model.User, body, placeName string, memberIDs []int, channelID, dmID int) {
	for _, uID := range memberIDs {
		u := s.FindUser(uID)
		if u == nil || u.Handle == "" {
			continue
		}
		if !containsFold(body, "@"+u.Handle) {
			continue
		}
		pushNotification(s, uID, model.Notification{
			ChannelID:           channelID,
			DmID:                dmID,
			NotificationMessage: sender.Handle + " tagged you in " + placeName + ": " + preview(body),
		})
	}
}

func channelMemberIDs(c *model.Channel) []int {
	ids := make([]int, 0, len(c.AllMembers))
	for _, m := range c.AllMembers {
		ids = append(ids, m.UID)
	}
	return ids
}

func dmMemberIDs(d *model.Dm) []int {
	ids := append([]int{}, d.UIDs...)
	if d.CreatorID != nil {
		ids = append(ids, *d.CreatorID)
	}
	return ids
}

// MessageSend posts a message to a channel the caller belongs to.
func MessageSend(authUserID, channelID int, message string) (int, error) {
	return sendToChannel(authUserID, channelID, message, now())
}

// MessageSendDm posts a message to a DM the caller belongs to.
func MessageSendDm(authUserID, dmID int, message string) (int, error) {
	return sendToDm(authUserID, dmID, message, now())
}

// MessageSendLater schedules a channel message for a future time. The message
// is stored immediately with its future timestamp but is invisible to
// interaction until due, and raises no tag notifications or statistics.
func MessageSendLater(authUserID, channelID int, message string, timeSent int64) (int, error) {
	if timeSent < now() {
		return 0, validationError("timeSent is in the past")
	}

	messageID := 0
	err := store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if runeLen(message) < 1 || runeLen(message) > 1000 {
			return validationError("message must be between 1 and 1000 characters")
		}
		if !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}

		messageID = nextMessageID(s)
		c.Messages = append(c.Messages, model.Message{
			MessageID: messageID,
			UID:       authUserID,
			Message:   message,
			TimeSent:  timeSent,
			Reacts:    []model.React{},
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return messageID, nil
}

// MessageSendLaterDm schedules a DM message for a future time.
func MessageSendLaterDm(authUserID, dmID int, message string, timeSent int64) (int, error) {
	if timeSent < now() {
		return 0, validationError("timeSent is in the past")
	}

	messageID := 0
	err := store.Update(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		if d == nil {
			return validationError("dm does not exist")
		}
		if runeLen(message) < 1 || runeLen(message) > 1000 {
			return validationError("message must be between 1 and 1000 characters")
		}
		if !d.HasMember(authUserID) {
			return authorizationError("not a member of this dm")
		}

		messageID = nextMessageID(s)
		d.Messages = append(d.Messages, model.Message{
			MessageID: messageID,
			UID:       authUserID,
			Message:   message,
			TimeSent:  timeSent,
			Reacts:    []model.React{},
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return messageID, nil
}

func sendToChannel(authUserID, channelID int, message string, timeSent int64) (int, error) {
	messageID := 0
	err := store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if runeLen(message) < 1 || runeLen(message) > 1000 {
			return validationError("message must be between 1 and 1000 characters")
		}
		sender := s.FindUser(authUserID)
		if sender == nil || !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}

		messageID = nextMessageID(s)
		c.Messages = append(c.Messages, model.Message{
			MessageID: messageID,
			UID:       authUserID,
			Message:   message,
			TimeSent:  timeSent,
			Reacts:    []model.React{},
		})

		notifyTagged(s, sender, message, c.Name, channelMemberIDs(c), channelID, -1)
		appendUserMessageStat(sender, 1)
		appendWorkspaceMessageStat(s, 1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return messageID, nil
}

func sendToDm(authUserID, dmID int, message string, timeSent int64) (int, error) {
	messageID := 0
	err := store.Update(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		if d == nil {
			return validationError("dm does not exist")
		}
		if runeLen(message) < 1 || runeLen(message) > 1000 {
			return validationError("message must be between 1 and 1000 characters")
		}
		sender := s.FindUser(authUserID)
		if sender == nil || !d.HasMember(authUserID) {
			return authorizationError("not a member of this dm")
		}

		messageID = nextMessageID(s)
		d.Messages = append(d.Messages, model.Message{
			MessageID: messageID,
			UID:       authUserID,
			Message:   message,
			TimeSent:  timeSent,
			Reacts:    []model.React{},
		})

		notifyTagged(s, sender, message, d.Name, dmMemberIDs(d), -1, dmID)
		appendUserMessageStat(sender, 1)
		appendWorkspaceMessageStat(s, 1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return messageID, nil
}

// canModifyChannelMessage reports whether the caller may edit or remove a
// channel message: the author, a channel owner, or a global owner, and in all
// cases still a member of the channel.
func canModifyChannelMessage(s *model.Snapshot, c *model.Channel, m *model.Message, authUserID int) bool {
	if !c.HasMember(authUserID) {
		return false
	}
	return m.UID == authUserID || c.HasOwner(authUserID) || isGlobalOwner(s, authUserID)
}

// canModifyDmMessage is the DM equivalent: the author or the DM creator,
// while still a member.
func canModifyDmMessage(d *model.Dm, m *model.Message, authUserID int) bool {
	if !d.HasMember(authUserID) {
		return false
	}
	return m.UID == authUserID || d.IsCreator(authUserID)
}

// MessageEdit replaces a message's body. Editing to an empty string deletes
// the message instead. An edited message keeps its author and timestamp but
// loses its pin and reacts.
func MessageEdit(authUserID, messageID int, message string) error {
	return store.Update(func(s *model.Snapshot) error {
		if runeLen(message) > 1000 {
			return validationError("message must be at most 1000 characters")
		}
		m, c, d := findMessage(s, messageID)
		if m == nil {
			return validationError("message does not exist")
		}
		allowed := false
		if c != nil {
			allowed = canModifyChannelMessage(s, c, m, authUserID)
		} else {
			allowed = canModifyDmMessage(d, m, authUserID)
		}
		if !allowed {
			return authorizationError("not permitted to edit this message")
		}

		if message == "" {
			if c != nil {
				c.Messages = deleteMessage(c.Messages, messageID)
			} else {
				d.Messages = deleteMessage(d.Messages, messageID)
			}
			appendWorkspaceMessageStat(s, -1)
			return nil
		}

		m.Message = message
		m.IsPinned = false
		m.Reacts = []model.React{}
		return nil
	})
}

// MessageRemove deletes a message.
func MessageRemove(authUserID, messageID int) error {
	return store.Update(func(s *model.Snapshot) error {
		m, c, d := findMessage(s, messageID)
		if m == nil || !messageIsSent(m) {
			return validationError("message does not exist")
		}
		allowed := false
		if c != nil {
			allowed = canModifyChannelMessage(s, c, m, authUserID)
		} else {
			allowed = canModifyDmMessage(d, m, authUserID)
		}
		if !allowed {
			return authorizationError("not permitted to remove this message")
		}

		if c != nil {
			c.Messages = deleteMessage(c.Messages, messageID)
		} else {
			d.Messages = deleteMessage(d.Messages, messageID)
		}
		appendWorkspaceMessageStat(s, -1)
		return nil
	})
}

// canPinChannelMessage mirrors the edit permissions: the author, a channel
// owner, or a global owner, while a member of the channel.
func canPinChannelMessage(s *model.Snapshot, c *model.Channel, m *model.Message, authUserID int) bool {
	if !c.HasMember(authUserID) {
		return false
	}
	return m.UID == authUserID || c.HasOwner(authUserID) || isGlobalOwner(s, authUserID)
}

// canPinDmMessage allows the author, the DM creator, and global owners who
// are members.
func canPinDmMessage(s *model.Snapshot, d *model.Dm, m *model.Message, authUserID int) bool {
	if !d.HasMember(authUserID) {
		return false
	}
	return m.UID == authUserID || d.IsCreator(authUserID) || isGlobalOwner(s, authUserID)
}

// MessagePin marks a message as pinned. Pinning an already-pinned message is
// rejected.
func MessagePin(authUserID, messageID int) error {
	return store.Update(func(s *model.Snapshot) error {
		m, c, d := findMessage(s, messageID)
		if m == nil || !messageIsSent(m) {
			return validationError("message does not exist")
		}
		if m.IsPinned {
			return validationError("message is already pinned")
		}
		allowed := false
		if c != nil {
			allowed = canPinChannelMessage(s, c, m, authUserID)
		} else {
			allowed = canPinDmMessage(s, d, m, authUserID)
		}
		if !allowed {
			return authorizationError("not permitted to pin this message")
		}

		m.IsPinned = true
		return nil
	})
}

// MessageUnpin clears a message's pin. Unpinning an unpinned message is
// rejected.
func MessageUnpin(authUserID, messageID int) error {
	return store.Update(func(s *model.Snapshot) error {
		m, c, d := findMessage(s, messageID)
		if m == nil || !messageIsSent(m) {
			return validationError("message does not exist")
		}
		if !m.IsPinned {
			return validationError("message is not pinned")
		}
		allowed := false
		if c != nil {
			allowed = canPinChannelMessage(s, c, m, authUserID)
		} else {
			allowed = canPinDmMessage(s, d, m, authUserID)
		}
		if !allowed {
			return authorizationError("not permitted to unpin this message")
		}

		m.IsPinned = false
		return nil
	})
}

// MessageReact records the caller's reaction and notifies the message's
// author.
func MessageReact(authUserID, messageID, reactID int) error {
	return store.Update(func(s *model.Snapshot) error {
		if reactID != model.ReactID {
			return validationError("invalid reactId")
		}
		m, c, d := findMessage(s, messageID)
		if m == nil || !messageIsSent(m) {
			return validationError("message does not exist")
		}
		if c != nil {
			if !c.HasMember(authUserID) {
				return validationError("not a member of this channel")
			}
		} else if !d.HasMember(authUserID) {
			return validationError("not a member of this dm")
		}

		for i := range m.Reacts {
			r := &m.Reacts[i]
			if r.ReactID != reactID {
				continue
			}
			for _, uID := range r.UIDs {
				if uID == authUserID {
					return validationError("already reacted to this message")
				}
			}
			r.UIDs = append(r.UIDs, authUserID)
			notifyReact(s, m, c, d, authUserID)
			return nil
		}

		m.Reacts = append(m.Reacts, model.React{ReactID: reactID, UIDs: []int{authUserID}})
		notifyReact(s, m, c, d, authUserID)
		return nil
	})
}

// MessageUnreact withdraws the caller's reaction. Removing the last reactor
// drops the react entry entirely.
func MessageUnreact(authUserID, messageID, reactID int) error {
	return store.Update(func(s *model.Snapshot) error {
		if reactID != model.ReactID {
			return validationError("invalid reactId")
		}
		m, c, d := findMessage(s, messageID)
		if m == nil || !messageIsSent(m) {
			return validationError("message does not exist")
		}
		if c != nil {
			if !c.HasMember(authUserID) {
				return validationError("not a member of this channel")
			}
		} else if !d.HasMember(authUserID) {
			return validationError("not a member of this dm")
		}

		for i := range m.Reacts {
			r := &m.Reacts[i]
			if r.ReactID != reactID {
				continue
			}
			for j, uID := range r.UIDs {
				if uID == authUserID {
					r.UIDs = append(r.UIDs[:j], r.UIDs[j+1:]...)
					if len(r.UIDs) == 0 {
						m.Reacts = append(m.Reacts[:i], m.Reacts[i+1:]...)
					}
					return nil
				}
			}
			return validationError("no reaction from this user")
		}
		return validationError("no reaction from this user")
	})
}

// notifyReact tells the message's author someone reacted, naming the channel
// or DM it happened in. Reacting to your own message still notifies you.
func notifyReact(s *model.Snapshot, m *model.Message, c *model.Channel, d *model.Dm, reactorID int) {
	reactor := s.FindUser(reactorID)
	if reactor == nil {
		return
	}
	n := model.Notification{ChannelID: -1, DmID: -1}
	if c != nil {
		n.ChannelID = c.ChannelID
		n.NotificationMessage = reactor.Handle + " reacted to your message in " + c.Name
	} else {
		n.DmID = d.DmID
		n.NotificationMessage = reactor.Handle + " reacted to your message in " + d.Name
	}
	pushNotification(s, m.UID, n)
}

// MessageShare forwards an existing message into another channel or DM the
// caller belongs to, with an optional comment appended. Exactly one of
// channelID and dmID must be -1.
func MessageShare(authUserID, ogMessageID, channelID, dmID int, message string) (int, error) {
	var body string
	err := store.View(func(s *model.Snapshot) error {
		if runeLen(message) > 1000 {
			return validationError("message must be at most 1000 characters")
		}
		if dmID != -1 && s.FindDm(dmID) == nil {
			return validationError("dm does not exist")
		}
		if channelID == -1 && dmID == -1 {
			return validationError("no destination given")
		}
		if channelID != -1 && dmID != -1 {
			return validationError("only one destination allowed")
		}
		if channelID != -1 && s.FindChannel(channelID) == nil {
			return validationError("channel does not exist")
		}
		if dmID != -1 && !s.FindDm(dmID).HasMember(authUserID) {
			return authorizationError("not a member of this dm")
		}
		if channelID != -1 && !s.FindChannel(channelID).HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}
		og, _, _ := findMessage(s, ogMessageID)
		if og == nil || !messageIsSent(og) {
			return validationError("message does not exist")
		}
		// The optional extra text is appended directly to the copied body.
		body = og.Message + message
		return nil
	})
	if err != nil {
		return 0, err
	}

	if channelID != -1 {
		return MessageSend(authUserID, channelID, body)
	}
	return MessageSendDm(authUserID, dmID, body)
}
