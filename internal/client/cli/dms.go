package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/schoolchat/internal/common"
)

func (a *App) listDMs() {
	convos := a.dms.Conversations()
	if len(convos) == 0 {
		fmt.Println("No conversations — try 'dm <name>'")
		return
	}
	for _, c := range convos {
		fmt.Printf("  ✉️ %s (%s)\n", c.With, c.Channel)
	}
}

// startDM opens a conversation and switches to its channel, so 'send' and
// 'msgs' work on it immediately.
func (a *App) startDM(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: dm <name>")
		return
	}
	name := args[0]

	if _, err := a.accounts.Lookup(ctx, name); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			fmt.Println("No user named", name)
		} else {
			fmt.Println("Lookup failed:", err)
		}
		return
	}

	conv, outcome, err := a.dms.Start(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrSelfReference) {
			fmt.Println("That's you!")
		} else {
			fmt.Println("Could not start conversation:", err)
		}
		return
	}
	a.active = conv.Channel
	if outcome.Err != nil {
		fmt.Printf("Chatting with %s (they'll see it once their client syncs)\n", conv.With)
		return
	}
	fmt.Println("Chatting with", conv.With)
}
