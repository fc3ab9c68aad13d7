package workspace

import (
	"workspace-service/internal/model"
	"workspace-service/pkg/store"
	"workspace-service/prometheus"
)

// AdminUserRemove removes a user from the workspace. Their messages remain
// with scrubbed bodies, their profile resolves as "Removed user", and their
// email and handle become reusable. The last global owner cannot be removed.
func AdminUserRemove(authUserID, uID int) error {
	revoked := 0
	err := store.Update(func(s *model.Snapshot) error {
		target := s.FindUser(uID)
		if target == nil {
			return validationError("user does not exist")
		}
		if !isGlobalOwner(s, authUserID) {
			return authorizationError("caller is not a global owner")
		}
		if isOnlyGlobalOwner(s, uID) {
			return validationError("cannot remove the only global owner")
		}

		for i := range s.Channels {
			c := &s.Channels[i]
			c.OwnerMembers = removeProfile(c.OwnerMembers, uID)
			c.AllMembers = removeProfile(c.AllMembers, uID)
			for j := range c.Messages {
				if c.Messages[j].UID == uID {
					c.Messages[j].Message = model.RemovedMessageText
				}
			}
		}

		for i := range s.Dms {
			d := &s.Dms[i]
			if d.IsCreator(uID) {
				d.CreatorID = nil
			}
			for j, member := range d.UIDs {
				if member == uID {
					d.UIDs = append(d.UIDs[:j], d.UIDs[j+1:]...)
					break
				}
			}
			for j := range d.Messages {
				if d.Messages[j].UID == uID {
					d.Messages[j].Message = model.RemovedMessageText
				}
			}
		}

		target.NameFirst = model.RemovedUserFirstName
		target.NameLast = model.RemovedUserLastName
		target.Email = ""
		target.Handle = ""
		revoked = len(target.Sessions)
		target.Sessions = []string{}
		target.ResetCode = ""
		return nil
	})
	if err == nil {
		prometheus.RemoveActiveSessions(revoked)
	}
	return err
}

// AdminPermissionChange sets a user's global permission level. The last
// global owner cannot be demoted.
func AdminPermissionChange(authUserID, uID, permissionID int) error {
	return store.Update(func(s *model.Snapshot) error {
		target := s.FindUser(uID)
		if target == nil {
			return validationError("user does not exist")
		}
		if !isGlobalOwner(s, authUserID) {
			return authorizationError("caller is not a global owner")
		}
		if target.PermissionID == permissionID {
			return validationError("user already has this permission level")
		}
		if isOnlyGlobalOwner(s, uID) {
			return validationError("cannot demote the only global owner")
		}
		if permissionID != model.PermissionOwner && permissionID != model.PermissionMember {
			return validationError("invalid permissionId")
		}

		target.PermissionID = permissionID
		return nil
	})
}
