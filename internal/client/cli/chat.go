package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/client/models"
)

func (a *App) listChannels() {
	for _, ch := range a.messages.Channels() {
		marker := " "
		if ch.ID == a.active {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n", marker, ch.Icon, ch.ID)
	}
}

func (a *App) createChannel(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: create <name>")
		return
	}
	ch := a.messages.CreateChannel(strings.Join(args, " "))
	a.active = ch.ID
	fmt.Printf("Created %s %s (only you can see it)\n", ch.Icon, ch.ID)
}

func (a *App) switchChannel(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: switch <channel>")
		return
	}
	id := models.ChannelID(args[0])
	if !a.messages.HasChannel(id) {
		fmt.Println("No such channel:", id)
		return
	}
	a.active = id
}

func (a *App) send(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: send <text>")
		return
	}
	_, outcome := a.messages.Append(ctx, a.active, strings.Join(args, " "))
	if outcome.Err != nil {
		fmt.Println("(not synced yet — will appear for others once the connection recovers)")
	}
}

// showMessages renders the active channel with day markers and grouped
// author headers, reloading it first so the view is fresh.
func (a *App) showMessages(ctx context.Context) {
	if _, err := a.messages.LoadChannel(ctx, a.active); err != nil {
		fmt.Println("(showing local view — refresh failed)")
	}
	msgs := a.messages.Messages(a.active)
	if len(msgs) == 0 {
		fmt.Println("No messages yet")
		return
	}

	loc := time.Local
	var prev *models.Message
	for i := range msgs {
		msg := msgs[i]
		if models.StartsNewDay(prev, msg, loc) {
			fmt.Printf("--- %s ---\n", msg.Timestamp.In(loc).Format("Mon, 2 Jan 2006"))
		}
		if models.StartsGroup(prev, msg) {
			fmt.Printf("%s @ %s\n", msg.Author, msg.Timestamp.In(loc).Format("15:04"))
		}
		fmt.Println("  " + msg.Text)
		prev = &msgs[i]
	}
}

func (a *App) showOnline(ctx context.Context) {
	names := a.presence.ListOnline(ctx)
	fmt.Printf("Online (%d):\n", len(names))
	for _, n := range names {
		fmt.Println("  " + n)
	}
}
