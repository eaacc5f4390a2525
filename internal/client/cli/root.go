package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.user.Name != "" {
		s = a.user.Name
	}
	if a.active != "" {
		s = s + " #" + a.active
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to schoolchat (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("sc %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				fmt.Println("Available commands: register, login, exit")
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				fmt.Println("Bye!")
				return
			default:
				fmt.Println("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			fmt.Println("Available commands: channels, create, switch, send, msgs, online,")
			fmt.Println("  friends, add, requests, accept, dms, dm, logout, exit")
		case "channels":
			a.listChannels()
		case "create":
			a.createChannel(args)
		case "switch":
			a.switchChannel(args)
		case "send":
			a.send(ctx, args)
		case "msgs":
			a.showMessages(ctx)
		case "online":
			a.showOnline(ctx)
		case "friends":
			a.listFriends()
		case "add":
			a.addFriend(ctx, args)
		case "requests":
			a.listRequests()
		case "accept":
			a.acceptRequest(ctx, args)
		case "dms":
			a.listDMs()
		case "dm":
			a.startDM(ctx, args)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
