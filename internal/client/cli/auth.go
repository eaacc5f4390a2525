package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/client/services"
	"github.com/dmitrijs2005/schoolchat/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// sleepFn is a test seam for the welcome banner pause.
var sleepFn = time.Sleep

// Welcome banner durations. Returning users get a shorter pause than fresh
// sign-ups, who see the onboarding hint a moment longer.
const (
	welcomeBackPause = 3 * time.Second
	welcomeNewPause  = 4 * time.Second
)

// Register prompts for the profile fields and a password, creates the
// account, and starts a session right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Pick a username", os.Stdout)
	if err != nil {
		return err
	}
	grade, err := getSimpleText(a.reader, "Your grade", os.Stdout)
	if err != nil {
		return err
	}
	teacher, err := getSimpleText(a.reader, "Your teacher", os.Stdout)
	if err != nil {
		return err
	}
	school, err := getSimpleText(a.reader, "Your school", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Pick a password")
	if err != nil {
		return err
	}
	if len(password) < services.MinSecretLen {
		fmt.Printf("Password must be at least %d characters\n", services.MinSecretLen)
		return common.ErrSecretTooShort
	}
	confirm, err := getPassword(os.Stdout, "Repeat the password")
	if err != nil {
		return err
	}
	if password != confirm {
		fmt.Println("Passwords do not match")
		return errors.New("password mismatch")
	}

	// The entered casing is stored and displayed; only the storage key and
	// comparisons are normalized.
	profile := models.Account{
		Name:    strings.TrimSpace(name),
		Grade:   grade,
		Teacher: teacher,
		School:  school,
	}
	account, err := a.accounts.Create(ctx, profile, password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			fmt.Println("That username is taken")
			return err
		}
		fmt.Println("Sign-up failed:", err)
		return err
	}

	fmt.Printf("Welcome to schoolchat, %s!\n", account.Name)
	sleepFn(welcomeNewPause)
	a.startSession(ctx, account)
	return nil
}

// Login prompts for credentials and starts a session on success.
func (a *App) Login(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}

	account, err := a.accounts.Authenticate(ctx, name, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAccountNotFound):
			fmt.Println("No such account — try 'register'")
		case errors.Is(err, common.ErrInvalidCredential):
			fmt.Println("Wrong password")
		default:
			fmt.Println("Login failed:", err)
		}
		return err
	}

	fmt.Printf("Welcome back, %s!\n", account.Name)
	sleepFn(welcomeBackPause)
	a.startSession(ctx, account)
	return nil
}

// Logout tears the session down; the scheduler's shutdown marks the user
// offline.
func (a *App) Logout(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	a.endSession(ctx)
	fmt.Println("Logged out")
}
