package workspace

import (
	"testing"

	"workspace-service/internal/model"
	"workspace-service/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUserRemove(t *testing.T) {
	setup(t)
	owner := registerUser(t, "owner@example.com", "Olive", "Owner")
	target := registerUser(t, "target@example.com", "Tara", "Target")

	channelID, err := ChannelsCreate(target.AuthUserID, "general", true)
	require.NoError(t, err)
	require.NoError(t, ChannelJoin(owner.AuthUserID, channelID))
	messageID, err := MessageSend(target.AuthUserID, channelID, "soon to be scrubbed")
	require.NoError(t, err)

	dmID, err := DmCreate(target.AuthUserID, []int{owner.AuthUserID})
	require.NoError(t, err)
	_, err = MessageSendDm(target.AuthUserID, dmID, "also scrubbed")
	require.NoError(t, err)

	requireValidation(t, AdminUserRemove(owner.AuthUserID, 999))
	requireAuthorization(t, AdminUserRemove(target.AuthUserID, owner.AuthUserID))
	requireValidation(t, AdminUserRemove(owner.AuthUserID, owner.AuthUserID)) // sole global owner

	require.NoError(t, AdminUserRemove(owner.AuthUserID, target.AuthUserID))

	// The target's sessions die with them.
	_, err = ResolveToken(target.Token)
	requireAuthorization(t, err)

	// Membership is gone, message bodies are scrubbed, ids and authors stay.
	details, err := ChannelDetails(owner.AuthUserID, channelID)
	require.NoError(t, err)
	assert.Empty(t, details.OwnerMembers)
	require.Len(t, details.AllMembers, 1)

	page, err := ChannelMessages(owner.AuthUserID, channelID, 0)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, messageID, page.Messages[0].MessageID)
	assert.Equal(t, target.AuthUserID, page.Messages[0].UID)
	assert.Equal(t, "Removed user", page.Messages[0].Message)

	dmPage, err := DmMessages(owner.AuthUserID, dmID, 0)
	require.NoError(t, err)
	require.Len(t, dmPage.Messages, 1)
	assert.Equal(t, "Removed user", dmPage.Messages[0].Message)

	// The profile resolves as Removed user with reusable email and handle.
	profile, err := UserProfile(owner.AuthUserID, target.AuthUserID)
	require.NoError(t, err)
	assert.Equal(t, "Removed", profile.NameFirst)
	assert.Equal(t, "user", profile.NameLast)
	assert.Empty(t, profile.Email)
	assert.Empty(t, profile.Handle)

	fresh, err := Register("target@example.com", "password123", "Tara", "Target")
	require.NoError(t, err)
	assert.Equal(t, "taratarget", userHandle(t, fresh.AuthUserID))
}

func TestAdminUserRemoveDmCreator(t *testing.T) {
	setup(t)
	owner := registerUser(t, "owner@example.com", "Olive", "Owner")
	target := registerUser(t, "target@example.com", "Tara", "Target")

	dmID, err := DmCreate(target.AuthUserID, []int{owner.AuthUserID})
	require.NoError(t, err)

	require.NoError(t, AdminUserRemove(owner.AuthUserID, target.AuthUserID))

	require.NoError(t, store.View(func(s *model.Snapshot) error {
		d := s.FindDm(dmID)
		require.NotNil(t, d)
		assert.Nil(t, d.CreatorID)
		assert.Equal(t, []int{owner.AuthUserID}, d.UIDs)
		return nil
	}))
}

func TestAdminPermissionChange(t *testing.T) {
	setup(t)
	owner := registerUser(t, "owner@example.com", "Olive", "Owner")
	member := registerUser(t, "member@example.com", "Mel", "Member")

	requireValidation(t, AdminPermissionChange(owner.AuthUserID, 999, model.PermissionOwner))
	requireAuthorization(t, AdminPermissionChange(member.AuthUserID, member.AuthUserID, model.PermissionOwner))
	requireValidation(t, AdminPermissionChange(owner.AuthUserID, member.AuthUserID, model.PermissionMember)) // already member
	requireValidation(t, AdminPermissionChange(owner.AuthUserID, owner.AuthUserID, model.PermissionMember))  // sole owner
	requireValidation(t, AdminPermissionChange(owner.AuthUserID, member.AuthUserID, 3))

	require.NoError(t, AdminPermissionChange(owner.AuthUserID, member.AuthUserID, model.PermissionOwner))

	// With two owners the original owner can step down, and the promoted
	// member can remove them.
	require.NoError(t, AdminPermissionChange(member.AuthUserID, owner.AuthUserID, model.PermissionMember))
	require.NoError(t, AdminUserRemove(member.AuthUserID, owner.AuthUserID))
}
