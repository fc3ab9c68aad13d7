package workspace

import (
	"strings"
	"time"

	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// StandupActiveResult reports whether a standup is running and when it ends.
// TimeFinish is nil while no standup is active.
type StandupActiveResult struct {
	IsActive   bool   `json:"isActive"`
	TimeFinish *int64 `json:"timeFinish"`
}

// StandupStart begins a standup in the channel lasting length seconds.
// Messages sent to the standup are buffered and flattened into a single
// channel message from the starter when the period ends.
func StandupStart(authUserID, channelID, length int) (int64, error) {
	var finish int64
	err := store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if length < 0 {
			return validationError("length cannot be negative")
		}
		if c.StandupActive {
			return validationError("a standup is already active in this channel")
		}
		if !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}

		finish = now() + int64(length)
		c.StandupActive = true
		c.StandupFinishTime = finish
		c.StandupStarterUID = authUserID
		c.Standup = []string{}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// The sweeper also finalizes overdue standups, so a missed timer only
	// delays the flattened message, never loses it.
	time.AfterFunc(time.Duration(length)*time.Second, func() {
		_ = store.Update(func(s *model.Snapshot) error {
			finalizeDueStandups(s)
			return nil
		})
	})
	return finish, nil
}

// StandupActive reports the channel's standup state, finalizing it first if
// the period has already lapsed.
func StandupActive(authUserID, channelID int) (*StandupActiveResult, error) {
	var result StandupActiveResult
	err := store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}

		finalizeDueStandups(s)
		if c.StandupActive {
			finish := c.StandupFinishTime
			result = StandupActiveResult{IsActive: true, TimeFinish: &finish}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// StandupSend buffers a message into the channel's running standup as
// "handle: message".
func StandupSend(authUserID, channelID int, message string) error {
	return store.Update(func(s *model.Snapshot) error {
		c := s.FindChannel(channelID)
		if c == nil {
			return validationError("channel does not exist")
		}
		if runeLen(message) > 1000 {
			return validationError("message must be at most 1000 characters")
		}
		finalizeDueStandups(s)
		if !c.StandupActive {
			return validationError("no standup is active in this channel")
		}
		sender := s.FindUser(authUserID)
		if sender == nil || !c.HasMember(authUserID) {
			return authorizationError("not a member of this channel")
		}

		c.Standup = append(c.Standup, sender.Handle+": "+message)
		return nil
	})
}

// finalizeDueStandups closes every standup whose finish time has passed,
// posting the buffered lines as one newline-joined message authored by the
// starter. An empty buffer just deactivates the standup. The flattened
// message raises no tag notifications.
func finalizeDueStandups(s *model.Snapshot) {
	ts := now()
	for i := range s.Channels {
		c := &s.Channels[i]
		if !c.StandupActive || ts < c.StandupFinishTime {
			continue
		}

		if len(c.Standup) > 0 {
			c.Messages = append(c.Messages, model.Message{
				MessageID: nextMessageID(s),
				UID:       c.StandupStarterUID,
				Message:   strings.Join(c.Standup, "\n"),
				TimeSent:  c.StandupFinishTime,
				Reacts:    []model.React{},
			})
			if starter := s.FindUser(c.StandupStarterUID); starter != nil {
				appendUserMessageStat(starter, 1)
			}
			appendWorkspaceMessageStat(s, 1)
		}

		c.StandupActive = false
		c.StandupFinishTime = 0
		c.StandupStarterUID = 0
		c.Standup = []string{}
	}
}

// StartSweeper finalizes overdue standups on a fixed interval until the
// context of the process ends. It backstops the per-standup timers across
// restarts.
func StartSweeper(interval time.Duration) chan<- struct{} {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = store.Update(func(s *model.Snapshot) error {
					finalizeDueStandups(s)
					return nil
				})
			case <-stop:
				return
			}
		}
	}()
	return stop
}
