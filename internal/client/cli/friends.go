package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/common"
)

func (a *App) listFriends() {
	friends := a.friends.Friends()
	if len(friends) == 0 {
		fmt.Println("No friends yet — try 'add <name> <relationship>'")
		return
	}
	for _, f := range friends {
		fmt.Printf("  %s (%s, since %s)\n", f.Name, f.Tag, f.AddedAt.Format("2 Jan 2006"))
	}
}

func (a *App) addFriend(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: add <name> <classmate|school-relationship|school-friend|other>")
		return
	}
	// Passed through as entered: the services normalize for keys and
	// comparisons, and stored records keep the display casing.
	name := args[0]
	tag := models.RelationshipTag(args[1])

	if _, err := a.friends.Search(ctx, name); err != nil {
		switch {
		case errors.Is(err, common.ErrSelfReference):
			fmt.Println("That's you!")
		case errors.Is(err, common.ErrUserNotFound):
			fmt.Println("No user named", name)
		default:
			fmt.Println("Search failed:", err)
		}
		return
	}

	outcome, err := a.friends.SendRequest(ctx, name, tag)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyFriends):
			fmt.Println("You are already friends")
		case errors.Is(err, common.ErrRequestAlreadySent):
			fmt.Println("Request already sent")
		default:
			fmt.Println("Could not send request:", err)
		}
		return
	}
	if outcome.Err != nil {
		fmt.Println("Request saved — delivery pending, will retry")
		return
	}
	fmt.Println("Request sent to", name)
}

func (a *App) listRequests() {
	box := a.friends.Requests()
	if len(box.Received) == 0 && len(box.Sent) == 0 {
		fmt.Println("No pending requests")
		return
	}
	if len(box.Received) > 0 {
		fmt.Println("Received:")
		for _, r := range box.Received {
			fmt.Printf("  %s (%s) — 'accept %s <relationship>'\n", r.Name, r.Tag, r.Name)
		}
	}
	if len(box.Sent) > 0 {
		fmt.Println("Sent:")
		for _, r := range box.Sent {
			fmt.Printf("  %s (%s)\n", r.Name, r.Tag)
		}
	}
}

func (a *App) acceptRequest(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: accept <name> <classmate|school-relationship|school-friend|other>")
		return
	}
	name := args[0]
	tag := models.RelationshipTag(args[1])
	if !models.ValidTag(tag) {
		fmt.Println("Unknown relationship:", args[1])
		return
	}

	outcome, err := a.friends.AcceptRequest(ctx, name, tag)
	if err != nil {
		fmt.Println("Could not accept:", err)
		return
	}
	if outcome.Err != nil {
		fmt.Println("Accepted — the other side will catch up shortly")
		return
	}
	fmt.Println("You and", name, "are now friends")
}
