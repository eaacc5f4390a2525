package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/common"
	"github.com/stretchr/testify/require"
)

// twoUsers registers alice and bob on a shared gateway and returns a friend
// service bound to each.
func twoUsers(t *testing.T, gw gateway.Gateway) (*FriendService, *FriendService) {
	t.Helper()
	ctx := context.Background()
	accounts := NewAccountService(gw, testLogger())

	alice, err := accounts.Create(ctx, profile("Alice"), "secret1")
	require.NoError(t, err)
	bob, err := accounts.Create(ctx, profile("Bob"), "secret2")
	require.NoError(t, err)

	return NewFriendService(gw, testLogger(), accounts, alice),
		NewFriendService(gw, testLogger(), accounts, bob)
}

func TestFriendFlow_SendThenAccept(t *testing.T) {
	mem := gateway.NewMemory()
	a, b := twoUsers(t, mem)
	ctx := context.Background()

	out, err := a.SendRequest(ctx, "Bob", models.TagClassmate)
	require.NoError(t, err)
	require.True(t, out.Persisted)

	b.Refresh(ctx)
	box := b.Requests()
	require.Len(t, box.Received, 1)
	require.Equal(t, "Alice", box.Received[0].Name)
	require.Equal(t, models.TagClassmate, box.Received[0].Tag)

	out, err = b.AcceptRequest(ctx, "Alice", models.TagClassmate)
	require.NoError(t, err)
	require.True(t, out.Persisted)

	// Both parties hold the symmetric record.
	require.Len(t, b.Friends(), 1)
	require.Equal(t, "Alice", b.Friends()[0].Name)

	a.Refresh(ctx)
	require.Len(t, a.Friends(), 1)
	require.Equal(t, "Bob", a.Friends()[0].Name)

	// B's received entry is gone...
	require.Empty(t, b.Requests().Received)

	// ...but A's sent entry is never cleaned up. Known asymmetry of the
	// protocol; assert it rather than assume cleanup.
	require.Len(t, a.Requests().Sent, 1)
	require.Equal(t, "Bob", a.Requests().Sent[0].Name)
}

func TestSendRequest_ToSelfFailsWithoutAnyWrite(t *testing.T) {
	mem := gateway.NewMemory()
	gw := newFaultGateway(mem)
	accounts := NewAccountService(gw, testLogger())
	alice, err := accounts.Create(context.Background(), profile("Alice"), "secret1")
	require.NoError(t, err)
	svc := NewFriendService(gw, testLogger(), accounts, alice)

	before := gw.setCount()
	_, err = svc.SendRequest(context.Background(), " ALICE ", models.TagOther)
	require.ErrorIs(t, err, common.ErrSelfReference)
	require.Equal(t, before, gw.setCount())
}

func TestSearch_SelfAndUnknown(t *testing.T) {
	mem := gateway.NewMemory()
	a, _ := twoUsers(t, mem)
	ctx := context.Background()

	_, err := a.Search(ctx, "alice")
	require.ErrorIs(t, err, common.ErrSelfReference)

	_, err = a.Search(ctx, "Charlie")
	require.ErrorIs(t, err, common.ErrUserNotFound)

	got, err := a.Search(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "Bob", got.Name)
}

func TestSendRequest_DuplicateAndAlreadyFriends(t *testing.T) {
	mem := gateway.NewMemory()
	a, b := twoUsers(t, mem)
	ctx := context.Background()

	_, err := a.SendRequest(ctx, "Bob", models.TagSchoolFriend)
	require.NoError(t, err)

	_, err = a.SendRequest(ctx, "bob", models.TagSchoolFriend)
	require.ErrorIs(t, err, common.ErrRequestAlreadySent)

	b.Refresh(ctx)
	_, err = b.AcceptRequest(ctx, "Alice", models.TagSchoolFriend)
	require.NoError(t, err)

	a.Refresh(ctx)
	_, err = a.SendRequest(ctx, "Bob", models.TagSchoolFriend)
	require.ErrorIs(t, err, common.ErrAlreadyFriends)
}

func TestSendRequest_InvalidTagRejected(t *testing.T) {
	mem := gateway.NewMemory()
	a, _ := twoUsers(t, mem)

	_, err := a.SendRequest(context.Background(), "Bob", "bff")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestSendRequest_FanoutFailureQueuesRetry(t *testing.T) {
	gw := newFaultGateway(gateway.NewMemory())
	a, b := twoUsers(t, gw)
	ctx := context.Background()

	gw.breakSet(gateway.FriendRequestsKey("bob"), true)

	out, err := a.SendRequest(ctx, "Bob", models.TagClassmate)
	require.NoError(t, err, "delivery failure is not surfaced")
	require.False(t, out.Persisted)
	require.Equal(t, 1, a.PendingFanouts())

	// Sender's own record advanced regardless.
	require.Len(t, a.Requests().Sent, 1)

	// Recipient sees nothing yet.
	b.Refresh(ctx)
	require.Empty(t, b.Requests().Received)

	// A failing retry keeps the task queued.
	a.DrainRetries(ctx)
	require.Equal(t, 1, a.PendingFanouts())

	// Once the gateway recovers, the next drain delivers exactly once.
	gw.breakSet(gateway.FriendRequestsKey("bob"), false)
	a.DrainRetries(ctx)
	require.Zero(t, a.PendingFanouts())

	b.Refresh(ctx)
	require.Len(t, b.Requests().Received, 1)
	require.Equal(t, "Alice", b.Requests().Received[0].Name)
}

func TestAcceptRequest_FanoutFailureQueuesRetry(t *testing.T) {
	gw := newFaultGateway(gateway.NewMemory())
	a, b := twoUsers(t, gw)
	ctx := context.Background()

	_, err := a.SendRequest(ctx, "Bob", models.TagOther)
	require.NoError(t, err)
	b.Refresh(ctx)

	gw.breakSet(gateway.FriendsKey("alice"), true)
	out, err := b.AcceptRequest(ctx, "Alice", models.TagOther)
	require.NoError(t, err)
	require.False(t, out.Persisted)
	require.Equal(t, 1, b.PendingFanouts())

	// B's side is complete: friend recorded, received entry cleared.
	require.Len(t, b.Friends(), 1)
	require.Empty(t, b.Requests().Received)

	// A has no friend record until the retry lands.
	a.Refresh(ctx)
	require.Empty(t, a.Friends())

	gw.breakSet(gateway.FriendsKey("alice"), false)
	b.DrainRetries(ctx)
	require.Zero(t, b.PendingFanouts())

	a.Refresh(ctx)
	require.Len(t, a.Friends(), 1)
	require.Equal(t, "Bob", a.Friends()[0].Name)
}

func TestAcceptRequest_NoPendingRequest(t *testing.T) {
	mem := gateway.NewMemory()
	_, b := twoUsers(t, mem)

	_, err := b.AcceptRequest(context.Background(), "Alice", models.TagClassmate)
	require.Error(t, err)
}

func TestSendRequest_StepAFailureSurfacesAndRollsBackLocalAppend(t *testing.T) {
	gw := newFaultGateway(gateway.NewMemory())
	a, _ := twoUsers(t, gw)
	ctx := context.Background()

	gw.breakSet(gateway.FriendRequestsKey("alice"), true)
	_, err := a.SendRequest(ctx, "Bob", models.TagClassmate)
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	require.Empty(t, a.Requests().Sent)
	require.Zero(t, a.PendingFanouts())
}
