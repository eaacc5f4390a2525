package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/schoolchat/internal/client/config"
	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/client/services"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
)

// App holds the interactive session state. Before login only the account
// directory is available; the per-user services are built when a session
// starts and torn down on logout.
type App struct {
	config   *config.Config
	gw       gateway.Gateway
	log      logging.Logger
	accounts *services.AccountService
	reader   *bufio.Reader

	user     models.Account
	messages *services.MessageService
	presence *services.PresenceService
	friends  *services.FriendService
	dms      *services.DMService
	active   string

	stopSync context.CancelFunc
	syncDone chan struct{}
}

// NewApp wires the gateway and the account directory. An empty GatewayURL
// selects the in-memory gateway, useful for demos and tests.
func NewApp(c *config.Config, log logging.Logger) *App {
	var gw gateway.Gateway
	if c.GatewayURL == "" {
		gw = gateway.NewMemory()
	} else {
		gw = gateway.NewHTTPGateway(c.GatewayURL)
	}

	return &App{
		config:   c,
		gw:       gw,
		log:      log,
		accounts: services.NewAccountService(gw, log),
		reader:   bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
	a.endSession(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user.Name != ""
}

// startSession builds the per-user services and launches the sync scheduler.
func (a *App) startSession(ctx context.Context, account models.Account) {
	a.user = account
	a.messages = services.NewMessageService(a.gw, a.log, account.Name)
	a.presence = services.NewPresenceService(a.gw, a.log, account.Name)
	a.friends = services.NewFriendService(a.gw, a.log, a.accounts, account)
	a.dms = services.NewDMService(a.gw, a.log, account.Name, a.messages)
	a.active = models.DefaultChannels()[0].ID

	scheduler := services.NewSyncScheduler(
		a.config.SyncInterval, a.presence, a.messages, a.friends, a.dms, a.log)

	sessionCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		scheduler.Run(sessionCtx)
		close(done)
	}()
	a.stopSync = cancel
	a.syncDone = done
}

// endSession stops the scheduler (which marks the user offline on its way
// out) and clears the session state. Safe to call when not logged in.
func (a *App) endSession(ctx context.Context) {
	if a.stopSync == nil {
		return
	}
	a.stopSync()
	<-a.syncDone
	a.log.Info(ctx, "session ended", "user", a.user.Name)

	a.user = models.Account{}
	a.messages = nil
	a.presence = nil
	a.friends = nil
	a.dms = nil
	a.active = ""
	a.stopSync = nil
	a.syncDone = nil
}
