package workspace

import "workspace-service/internal/model"

// Id allocation is first-fit: the smallest unused id of the kind is returned,
// so a deleted entity's id is reused by the next creation. User and channel
// ids start at 1, DM and message ids at 0. Message ids share one namespace
// across channels and DMs.

func nextUserID(s *model.Snapshot) int {
	used := make(map[int]bool, len(s.Users))
	for _, u := range s.Users {
		used[u.UID] = true
	}
	id := 1
	for used[id] {
		id++
	}
	return id
}

func nextChannelID(s *model.Snapshot) int {
	used := make(map[int]bool, len(s.Channels))
	for _, c := range s.Channels {
		used[c.ChannelID] = true
	}
	id := 1
	for used[id] {
		id++
	}
	return id
}

func nextDmID(s *model.Snapshot) int {
	used := make(map[int]bool, len(s.Dms))
	for _, d := range s.Dms {
		used[d.DmID] = true
	}
	id := 0
	for used[id] {
		id++
	}
	return id
}

func nextMessageID(s *model.Snapshot) int {
	used := make(map[int]bool)
	for _, c := range s.Channels {
		for _, m := range c.Messages {
			used[m.MessageID] = true
		}
	}
	for _, d := range s.Dms {
		for _, m := range d.Messages {
			used[m.MessageID] = true
		}
	}
	id := 0
	for used[id] {
		id++
	}
	return id
}
