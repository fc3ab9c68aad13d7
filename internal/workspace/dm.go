package workspace

import (
	"sort"
	"strings"

	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// DmSummary is the listing view of a DM.
type DmSummary struct {
	DmID int    `json:"dmId"`
	Name string `json:"name"`
}

// DmDetailsResult is the membership view of a DM.
type DmDetailsResult struct {
	Name    string          `json:"name"`
	Members []model.Profile `json:"members"`
}

// DmCreate opens a DM between the caller and uIDs. The DM's name is the
// sorted, comma-joined handles of every participant, fixed at creation.
func DmCreate(authUserID int, uIDs []int) (int, error) {
	dmID := 0
	err := store.Update(func(s *model.Snapshot) error {
		creator := s.FindUser(authUserID)
		if creator == nil {
			return validationError("user does not exist")
		}
		seen := make(map[int]bool, len(uIDs))
		for _, uID := range uIDs {
			if s.FindUser(uID) == nil {
				return validationError("user does not exist")
			}
			if seen[uID] {
				return validationError("duplicate uIds")
			}
			seen[uID] = true
		}

		handles := []string{creator.Handle}
		for _, uID := range uIDs {
			handles = append(handles, s.FindUser(uID).Handle)
		}
		sort.Strings(handles)
		name := strings.Join(handles, ", ")

		dmID = nextDmID(s)
		creatorID := authUserID
		members := append([]int{}, uIDs...)
		s.Dms = append(s.Dms, model.Dm{
			DmID:      dmID,
			CreatorID: &creatorID,
			UIDs:      members,
			Name:      name,
			Messages:  []model.Message{},
		})

		for _, uID := range uIDs {
			pushNotification(s, uID, model.Notification{
				ChannelID:           -1,
				DmID:                dmID,
				NotificationMessage: creator.Handle + " added you to " + name,
			})
		}

		appendUserDmStat(creator, 1)
		for _, uID := range uIDs {
			appendUserDmStat(s.FindUser(uID), 1)
		}
		appendWorkspaceDmStat(s, 1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return dmID, nil
}

// DmList returns the DMs the caller belongs to.
func DmList(authUserID int) ([]DmSummary, error) {
	dms := []DmSummary{}
	err := store.View(func(s *model.Snapshot) error {
		for _, d := range s.Dms {
			if d.HasMember(authUserID) {
				dms = append(dms, DmSummary{DmID: d.DmID, Name: d.Name})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dms, nil
}

// DmRemove deletes a DM and its messages entirely. Only the creator may do
// this, and only while still a member.
func DmRemove(authUserID, dmID int) error {
	return store.Update(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		if d == nil {
			return validationError("dm does not exist")
		}
		if !d.HasMember(authUserID) {
			return authorizationError("no longer a member of this dm")
		}
		if !d.IsCreator(authUserID) {
			return authorizationError("only the dm creator can remove it")
		}

		// Capture membership before deletion so the statistic logs cover
		// exactly the users who lose the DM.
		memberIDs := append([]int{}, d.UIDs...)
		if d.CreatorID != nil {
			memberIDs = append(memberIDs, *d.CreatorID)
		}
		messageCount := len(d.Messages)

		for i := range s.Dms {
			if s.Dms[i].DmID == dmID {
				s.Dms = append(s.Dms[:i], s.Dms[i+1:]...)
				break
			}
		}

		for i := 0; i < messageCount; i++ {
			appendWorkspaceMessageStat(s, -1)
		}
		for _, uID := range memberIDs {
			if u := s.FindUser(uID); u != nil {
				appendUserDmStat(u, -1)
			}
		}
		appendWorkspaceDmStat(s, -1)
		return nil
	})
}

// DmDetails returns the DM's name and current member profiles.
func DmDetails(authUserID, dmID int) (*DmDetailsResult, error) {
	var details DmDetailsResult
	err := store.View(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		if d == nil {
			return validationError("dm does not exist")
		}
		if !d.HasMember(authUserID) {
			return authorizationError("not a member of this dm")
		}

		members := []model.Profile{}
		if d.CreatorID != nil {
			if u := s.FindUser(*d.CreatorID); u != nil {
				members = append(members, u.Profile())
			}
		}
		for _, uID := range d.UIDs {
			if u := s.FindUser(uID); u != nil {
				members = append(members, u.Profile())
			}
		}
		details = DmDetailsResult{Name: d.Name, Members: members}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// DmLeave removes the caller from the DM. A leaving creator is cleared from
// the creator slot but the DM and its name survive.
func DmLeave(authUserID, dmID int) error {
	return store.Update(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		if d == nil {
			return validationError("dm does not exist")
		}
		if !d.HasMember(authUserID) {
			return authorizationError("not a member of this dm")
		}

		if d.IsCreator(authUserID) {
			d.CreatorID = nil
		} else {
			for i, uID := range d.UIDs {
				if uID == authUserID {
					d.UIDs = append(d.UIDs[:i], d.UIDs[i+1:]...)
					break
				}
			}
		}
		if u := s.FindUser(authUserID); u != nil {
			appendUserDmStat(u, -1)
		}
		return nil
	})
}

// DmMessages pages through a DM's history, 50 messages at a time.
func DmMessages(authUserID, dmID, start int) (*MessagesPage, error) {
	var page MessagesPage
	err := store.View(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		if d == nil {
			return validationError("dm does not exist")
		}
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		if start < 0 || start > len(d.Messages) {
			return validationError("start is greater than the number of messages")
		}
		if !d.HasMember(authUserID) {
			return authorizationError("not a member of this dm")
		}
		messages, end := paginateMessages(d.Messages, start, authUserID)
		page = MessagesPage{Messages: messages, Start: start, End: end}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}
