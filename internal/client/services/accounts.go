package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/common"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
)

// MinSecretLen is the minimum accepted password length at sign-up.
const MinSecretLen = 6

// AccountService is the account directory: it maps normalized user names to
// immutable account records. There is no update or delete.
type AccountService struct {
	gw  gateway.Gateway
	log logging.Logger
	now func() time.Time
}

func NewAccountService(gw gateway.Gateway, log logging.Logger) *AccountService {
	return &AccountService{gw: gw, log: log, now: time.Now}
}

// Create validates the secret, rejects duplicate normalized names, and writes
// a new account record. The secret length check runs before any storage
// access so an invalid sign-up never touches the gateway.
func (s *AccountService) Create(ctx context.Context, profile models.Account, secret string) (models.Account, error) {
	if len(secret) < MinSecretLen {
		return models.Account{}, common.ErrSecretTooShort
	}

	key := gateway.UserKey(profile.Name)

	var existing models.Account
	found, err := getRecord(ctx, s.gw, key, false, &existing)
	if err != nil {
		observability.IncStorageError("account_lookup")
		return models.Account{}, fmt.Errorf("checking for existing account: %w", err)
	}
	if found {
		return models.Account{}, common.ErrDuplicateAccount
	}

	account := profile
	account.Password = secret
	account.CreatedAt = s.now()

	if err := putRecord(ctx, s.gw, key, false, account); err != nil {
		observability.IncStorageError("account_create")
		return models.Account{}, fmt.Errorf("writing account record: %w", err)
	}
	return account, nil
}

// Authenticate looks up the account by normalized name and compares the
// stored secret byte for byte.
func (s *AccountService) Authenticate(ctx context.Context, name, secret string) (models.Account, error) {
	var account models.Account
	found, err := getRecord(ctx, s.gw, gateway.UserKey(name), false, &account)
	if err != nil {
		observability.IncStorageError("account_lookup")
		return models.Account{}, fmt.Errorf("reading account record: %w", err)
	}
	if !found {
		return models.Account{}, common.ErrAccountNotFound
	}
	if account.Password != secret {
		return models.Account{}, common.ErrInvalidCredential
	}
	return account, nil
}

// Lookup fetches an account for friend search. Unlike Authenticate, an
// absent record maps to ErrUserNotFound.
func (s *AccountService) Lookup(ctx context.Context, name string) (models.Account, error) {
	var account models.Account
	found, err := getRecord(ctx, s.gw, gateway.UserKey(name), false, &account)
	if err != nil {
		observability.IncStorageError("account_lookup")
		return models.Account{}, fmt.Errorf("reading account record: %w", err)
	}
	if !found {
		return models.Account{}, common.ErrUserNotFound
	}
	return account, nil
}
