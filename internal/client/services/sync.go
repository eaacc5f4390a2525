package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
)

// DefaultSyncInterval matches the 3000 ms polling contract of the stored
// data: every client refreshes messages, presence and friend state on this
// cadence.
const DefaultSyncInterval = 3 * time.Second

// SyncScheduler drives a session's periodic refresh loop. On start it marks
// the user online and performs one immediate full refresh, then repeats on a
// fixed interval until the context is cancelled, at which point it performs
// one final MarkOffline with a fresh context (the session's own context is
// already dead by then).
type SyncScheduler struct {
	interval time.Duration
	presence *PresenceService
	messages *MessageService
	friends  *FriendService
	dms      *DMService
	log      logging.Logger
}

func NewSyncScheduler(
	interval time.Duration,
	presence *PresenceService,
	messages *MessageService,
	friends *FriendService,
	dms *DMService,
	log logging.Logger,
) *SyncScheduler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &SyncScheduler{
		interval: interval,
		presence: presence,
		messages: messages,
		friends:  friends,
		dms:      dms,
		log:      log,
	}
}

// Run blocks until ctx is cancelled. Typically started as
//
//	go scheduler.Run(sessionCtx)
//
// In-flight gateway calls are not cancelled on shutdown; their results are
// simply ignored.
func (s *SyncScheduler) Run(ctx context.Context) {
	s.presence.MarkOnline(ctx)
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-ctx.Done():
			s.presence.MarkOffline(context.Background())
			return
		}
	}
}

// refresh performs one full poll: dm index first so newly discovered
// conversations are included in the message pass, then channels, presence,
// friend state, and finally any queued fan-out retries.
func (s *SyncScheduler) refresh(ctx context.Context) {
	observability.IncSyncTick()
	s.dms.Refresh(ctx)
	s.messages.RefreshAll(ctx)
	s.presence.Refresh(ctx)
	s.friends.Refresh(ctx)
	s.friends.DrainRetries(ctx)
	s.log.Debug(ctx, "refresh complete", "online", len(s.presence.Online()))
}
