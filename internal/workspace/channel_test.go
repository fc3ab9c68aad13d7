package workspace

import (
	"fmt"
	"strings"
	"testing"

	"workspace-service/internal/model"
	"workspace-service/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelsCreate(t *testing.T) {
	setup(t)
	owner := registerUser(t, "owner@example.com", "Olive", "Owner")

	_, err := ChannelsCreate(owner.AuthUserID, "", true)
	requireValidation(t, err)
	_, err = ChannelsCreate(owner.AuthUserID, strings.Repeat("x", 21), true)
	requireValidation(t, err)

	channelID, err := ChannelsCreate(owner.AuthUserID, "general", true)
	require.NoError(t, err)
	assert.Equal(t, 1, channelID)

	second, err := ChannelsCreate(owner.AuthUserID, "random", false)
	require.NoError(t, err)
	assert.Equal(t, 2, second)

	details, err := ChannelDetails(owner.AuthUserID, channelID)
	require.NoError(t, err)
	assert.Equal(t, "general", details.Name)
	assert.True(t, details.IsPublic)
	require.Len(t, details.OwnerMembers, 1)
	require.Len(t, details.AllMembers, 1)
	assert.Equal(t, owner.AuthUserID, details.OwnerMembers[0].UID)
}

func TestChannelsListScoping(t *testing.T) {
	setup(t)
	a := registerUser(t, "a@example.com", "Ada", "Lovelace")
	b := registerUser(t, "b@example.com", "Grace", "Hopper")

	mine, err := ChannelsCreate(a.AuthUserID, "mine", true)
	require.NoError(t, err)
	theirs, err := ChannelsCreate(b.AuthUserID, "theirs", true)
	require.NoError(t, err)

	listed, err := ChannelsList(a.AuthUserID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine, listed[0].ChannelID)

	all, err := ChannelsListAll(a.AuthUserID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, mine, all[0].ChannelID)
	assert.Equal(t, theirs, all[1].ChannelID)
}

func TestChannelJoin(t *testing.T) {
	setup(t)
	globalOwner := registerUser(t, "first@example.com", "Glenda", "Owner")
	member := registerUser(t, "member@example.com", "Mel", "Member")
	outsider := registerUser(t, "out@example.com", "Oscar", "Out")

	public, err := ChannelsCreate(member.AuthUserID, "public", true)
	require.NoError(t, err)
	private, err := ChannelsCreate(member.AuthUserID, "private", false)
	require.NoError(t, err)

	require.NoError(t, ChannelJoin(outsider.AuthUserID, public))
	requireValidation(t, ChannelJoin(outsider.AuthUserID, public)) // already a member
	requireValidation(t, ChannelJoin(outsider.AuthUserID, 999))

	// Private channels admit global owners only.
	requireAuthorization(t, ChannelJoin(outsider.AuthUserID, private))
	require.NoError(t, ChannelJoin(globalOwner.AuthUserID, private))

	// Joining does not confer channel ownership.
	details, err := ChannelDetails(globalOwner.AuthUserID, private)
	require.NoError(t, err)
	assert.Len(t, details.OwnerMembers, 1)
	assert.Len(t, details.AllMembers, 2)
}

func TestChannelInvite(t *testing.T) {
	setup(t)
	inviter := registerUser(t, "inviter@example.com", "Ida", "Inviter")
	invitee := registerUser(t, "invitee@example.com", "Eve", "Invitee")
	outsider := registerUser(t, "out@example.com", "Oscar", "Out")

	channelID, err := ChannelsCreate(inviter.AuthUserID, "general", false)
	require.NoError(t, err)

	requireValidation(t, ChannelInvite(inviter.AuthUserID, 999, invitee.AuthUserID))
	requireValidation(t, ChannelInvite(inviter.AuthUserID, channelID, 999))
	requireAuthorization(t, ChannelInvite(outsider.AuthUserID, channelID, invitee.AuthUserID))

	require.NoError(t, ChannelInvite(inviter.AuthUserID, channelID, invitee.AuthUserID))
	requireValidation(t, ChannelInvite(inviter.AuthUserID, channelID, invitee.AuthUserID))

	// Inviting works into private channels and notifies the invitee.
	notifications, err := NotificationsGet(invitee.AuthUserID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, channelID, notifications[0].ChannelID)
	assert.Equal(t, -1, notifications[0].DmID)
	assert.Equal(t, "idainviter added you to general", notifications[0].NotificationMessage)
}

func TestChannelMessagesPagination(t *testing.T) {
	setup(t)
	user := registerUser(t, "u@example.com", "Uma", "User")
	channelID, err := ChannelsCreate(user.AuthUserID, "general", true)
	require.NoError(t, err)

	page, err := ChannelMessages(user.AuthUserID, channelID, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
	assert.Equal(t, 0, page.Start)
	assert.Equal(t, -1, page.End)

	for i := 0; i < 60; i++ {
		_, err := MessageSend(user.AuthUserID, channelID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	page, err = ChannelMessages(user.AuthUserID, channelID, 0)
	require.NoError(t, err)
	assert.Len(t, page.Messages, 50)
	assert.Equal(t, 50, page.End)
	assert.Equal(t, "message 0", page.Messages[0].Message)

	page, err = ChannelMessages(user.AuthUserID, channelID, 50)
	require.NoError(t, err)
	assert.Len(t, page.Messages, 10)
	assert.Equal(t, -1, page.End)

	// start equal to the message count yields an empty final page.
	page, err = ChannelMessages(user.AuthUserID, channelID, 60)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
	assert.Equal(t, -1, page.End)

	_, err = ChannelMessages(user.AuthUserID, channelID, 61)
	requireValidation(t, err)

	outsider := registerUser(t, "o@example.com", "Oscar", "Out")
	_, err = ChannelMessages(outsider.AuthUserID, channelID, 0)
	requireAuthorization(t, err)
}

func TestChannelLeave(t *testing.T) {
	setup(t)
	owner := registerUser(t, "owner@example.com", "Olive", "Owner")
	member := registerUser(t, "member@example.com", "Mel", "Member")

	channelID, err := ChannelsCreate(owner.AuthUserID, "general", true)
	require.NoError(t, err)
	require.NoError(t, ChannelJoin(member.AuthUserID, channelID))

	requireValidation(t, ChannelLeave(owner.AuthUserID, 999))

	// The sole owner may leave, leaving the channel ownerless.
	require.NoError(t, ChannelLeave(owner.AuthUserID, channelID))
	requireAuthorization(t, ChannelLeave(owner.AuthUserID, channelID))

	details, err := ChannelDetails(member.AuthUserID, channelID)
	require.NoError(t, err)
	assert.Empty(t, details.OwnerMembers)
	require.Len(t, details.AllMembers, 1)
	assert.Equal(t, member.AuthUserID, details.AllMembers[0].UID)

	// Messages sent by the departed owner survive.
	require.NoError(t, store.View(func(s *model.Snapshot) error {
		assert.NotNil(t, s.FindChannel(channelID))
		return nil
	}))
}

func TestChannelOwnerManagement(t *testing.T) {
	setup(t)
	registerUser(t, "first@example.com", "Glenda", "Owner")
	owner := registerUser(t, "owner@example.com", "Olive", "Owner")
	member := registerUser(t, "member@example.com", "Mel", "Member")
	outsider := registerUser(t, "out@example.com", "Oscar", "Out")

	channelID, err := ChannelsCreate(owner.AuthUserID, "general", true)
	require.NoError(t, err)
	require.NoError(t, ChannelJoin(member.AuthUserID, channelID))

	requireValidation(t, ChannelAddOwner(owner.AuthUserID, 999, member.AuthUserID))
	requireValidation(t, ChannelAddOwner(owner.AuthUserID, channelID, 999))
	requireValidation(t, ChannelAddOwner(owner.AuthUserID, channelID, owner.AuthUserID))  // already owner
	requireValidation(t, ChannelAddOwner(owner.AuthUserID, channelID, outsider.AuthUserID)) // not a member
	requireAuthorization(t, ChannelAddOwner(member.AuthUserID, channelID, member.AuthUserID))

	require.NoError(t, ChannelAddOwner(owner.AuthUserID, channelID, member.AuthUserID))

	details, err := ChannelDetails(owner.AuthUserID, channelID)
	require.NoError(t, err)
	assert.Len(t, details.OwnerMembers, 2)

	requireAuthorization(t, ChannelRemoveOwner(outsider.AuthUserID, channelID, member.AuthUserID))
	require.NoError(t, ChannelRemoveOwner(owner.AuthUserID, channelID, member.AuthUserID))
	requireValidation(t, ChannelRemoveOwner(owner.AuthUserID, channelID, member.AuthUserID)) // no longer an owner

	// The last owner cannot be demoted.
	requireValidation(t, ChannelRemoveOwner(owner.AuthUserID, channelID, owner.AuthUserID))
}
