package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/stretchr/testify/require"
)

// registerMia signs up a session user "Mia" and returns the shared in-memory
// gateway for direct record inspection.
func registerMia(t *testing.T, app *App) *gateway.Memory {
	t.Helper()
	stubInputs(t,
		[]string{"Mia", "4B", "Mr. Holm", "Northside Elementary"},
		[]string{"secret1", "secret1"})
	require.NoError(t, app.Register(context.Background()))
	return app.gw.(*gateway.Memory)
}

func decodeRecord[T any](t *testing.T, mem *gateway.Memory, key string, dst *T) {
	t.Helper()
	raw, found, err := mem.Get(context.Background(), key, true)
	require.NoError(t, err)
	require.True(t, found, "record %s not found", key)
	require.NoError(t, json.Unmarshal([]byte(raw), dst))
}

func TestAddFriend_KeepsEnteredCasing(t *testing.T) {
	app := newTestApp(t)
	mem := registerMia(t, app)

	_, err := app.accounts.Create(context.Background(), models.Account{Name: "Ben"}, "secret2")
	require.NoError(t, err)

	// Upper-cased input resolves the account but is stored as entered.
	app.addFriend(context.Background(), []string{"BEN", "classmate"})

	var mine models.FriendRequestBox
	decodeRecord(t, mem, "friend-requests:mia", &mine)
	require.Len(t, mine.Sent, 1)
	require.Equal(t, "BEN", mine.Sent[0].Name)

	var theirs models.FriendRequestBox
	decodeRecord(t, mem, "friend-requests:ben", &theirs)
	require.Len(t, theirs.Received, 1)
	require.Equal(t, "Mia", theirs.Received[0].Name)
}

func TestStartDM_KeepsEnteredCasing(t *testing.T) {
	app := newTestApp(t)
	mem := registerMia(t, app)

	_, err := app.accounts.Create(context.Background(), models.Account{Name: "Ben"}, "secret2")
	require.NoError(t, err)

	app.startDM(context.Background(), []string{"Ben"})
	require.Equal(t, "dm:ben:mia", app.active)

	var mine []models.Conversation
	decodeRecord(t, mem, "dms:mia", &mine)
	require.Len(t, mine, 1)
	require.Equal(t, "Ben", mine[0].With)
	require.Equal(t, "dm:ben:mia", mine[0].Channel)

	var theirs []models.Conversation
	decodeRecord(t, mem, "dms:ben", &theirs)
	require.Len(t, theirs, 1)
	require.Equal(t, "Mia", theirs[0].With)
}
