package workspace

import (
	"strings"
	"time"
	"unicode/utf8"

	"workspace-service/internal/model"
)

func now() int64 {
	return time.Now().Unix()
}

// runeLen counts characters, not bytes. All user-facing length limits are
// expressed in characters so multi-byte input is not penalized.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func isGlobalOwner(s *model.Snapshot, uID int) bool {
	u := s.FindUser(uID)
	return u != nil && u.PermissionID == model.PermissionOwner
}

// isOnlyGlobalOwner reports whether exactly one global owner exists and it is
// the given user. Used to block removal or demotion of the last owner.
func isOnlyGlobalOwner(s *model.Snapshot, uID int) bool {
	count := 0
	for _, u := range s.Users {
		if u.PermissionID == model.PermissionOwner {
			count++
		}
	}
	if count != 1 {
		return false
	}
	u := s.FindUser(uID)
	return u != nil && u.PermissionID == model.PermissionOwner
}

// containsFold reports whether phrase occurs in text, case-insensitively.
func containsFold(text, phrase string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(phrase))
}

// preview returns the first 20 characters of a message for notification
// bodies.
func preview(message string) string {
	runes := []rune(message)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return string(runes)
}

// pushNotification prepends a notification to the recipient's log, creating
// the log on first use. Most recent entries sit at the front.
func pushNotification(s *model.Snapshot, uID int, n model.Notification) {
	for i := range s.UserNotifications {
		if s.UserNotifications[i].UID == uID {
			s.UserNotifications[i].Notifications = append([]model.Notification{n}, s.UserNotifications[i].Notifications...)
			return
		}
	}
	s.UserNotifications = append(s.UserNotifications, model.UserNotifications{
		UID:           uID,
		Notifications: []model.Notification{n},
	})
}

// Per-user statistic logs. Each event appends an entry whose count is the
// previous count plus delta.

func appendUserChannelStat(u *model.User, delta int) {
	last := 0
	if n := len(u.ChannelsJoined); n > 0 {
		last = u.ChannelsJoined[n-1].NumChannelsJoined
	}
	u.ChannelsJoined = append(u.ChannelsJoined, model.ChannelsJoinedLog{
		NumChannelsJoined: last + delta,
		TimeStamp:         now(),
	})
}

func appendUserDmStat(u *model.User, delta int) {
	last := 0
	if n := len(u.DmsJoined); n > 0 {
		last = u.DmsJoined[n-1].NumDmsJoined
	}
	u.DmsJoined = append(u.DmsJoined, model.DmsJoinedLog{
		NumDmsJoined: last + delta,
		TimeStamp:    now(),
	})
}

func appendUserMessageStat(u *model.User, delta int) {
	last := 0
	if n := len(u.MessagesSent); n > 0 {
		last = u.MessagesSent[n-1].NumMessagesSent
	}
	u.MessagesSent = append(u.MessagesSent, model.MessagesSentLog{
		NumMessagesSent: last + delta,
		TimeStamp:       now(),
	})
}

// Workspace-wide statistic logs.

func appendWorkspaceChannelStat(s *model.Snapshot, delta int) {
	last := 0
	if n := len(s.Statistics.ChannelsExist); n > 0 {
		last = s.Statistics.ChannelsExist[n-1].NumChannelsExist
	}
	s.Statistics.ChannelsExist = append(s.Statistics.ChannelsExist, model.ChannelsExistLog{
		NumChannelsExist: last + delta,
		TimeStamp:        now(),
	})
}

func appendWorkspaceDmStat(s *model.Snapshot, delta int) {
	last := 0
	if n := len(s.Statistics.DmsExist); n > 0 {
		last = s.Statistics.DmsExist[n-1].NumDmsExist
	}
	s.Statistics.DmsExist = append(s.Statistics.DmsExist, model.DmsExistLog{
		NumDmsExist: last + delta,
		TimeStamp:   now(),
	})
}

func appendWorkspaceMessageStat(s *model.Snapshot, delta int) {
	last := 0
	if n := len(s.Statistics.MessagesExist); n > 0 {
		last = s.Statistics.MessagesExist[n-1].NumMessagesExist
	}
	s.Statistics.MessagesExist = append(s.Statistics.MessagesExist, model.MessagesExistLog{
		NumMessagesExist: last + delta,
		TimeStamp:        now(),
	})
}

func totalMessages(s *model.Snapshot) int {
	count := 0
	for _, c := range s.Channels {
		count += len(c.Messages)
	}
	for _, d := range s.Dms {
		count += len(d.Messages)
	}
	return count
}

// paginateMessages returns up to 50 messages from start, rendered for the
// viewer. end is -1 when the page reaches the end of the list, otherwise
// start+50. start may equal the message count (empty page); anything larger
// is a validation failure handled by the caller.
func paginateMessages(msgs []model.Message, start, viewerID int) ([]model.MessageView, int) {
	end := start + 50
	if end >= len(msgs) {
		end = -1
	}

	upto := start + 50
	if upto > len(msgs) {
		upto = len(msgs)
	}
	page := make([]model.MessageView, 0, upto-start)
	for _, m := range msgs[start:upto] {
		page = append(page, m.View(viewerID))
	}
	return page, end
}
