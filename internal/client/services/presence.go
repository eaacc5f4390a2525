package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
)

// PresenceService maintains the shared set of online user names under the
// "online-users" record. Updates are read-modify-write without any locking
// across clients: two sessions racing on stale reads can lose one side's
// update (last writer wins). Duplicate names are collapsed at decode time.
type PresenceService struct {
	gw   gateway.Gateway
	log  logging.Logger
	self string

	mu     sync.Mutex
	online []string
}

func NewPresenceService(gw gateway.Gateway, log logging.Logger, self string) *PresenceService {
	return &PresenceService{gw: gw, log: log, self: self}
}

// MarkOnline adds the local user to the shared set if absent. Best-effort:
// a gateway failure is logged and reported via Outcome, never surfaced.
func (s *PresenceService) MarkOnline(ctx context.Context) Outcome {
	var names []string
	_, err := getRecord(ctx, s.gw, gateway.PresenceKey, true, &names)
	if err != nil {
		observability.IncStorageError("presence_read")
		s.log.Warn(ctx, "presence read failed", "user", s.self, "err", err)
		return failed(err)
	}
	names = dedupeNames(names)

	for _, n := range names {
		if n == s.self {
			s.setOnline(names)
			return persisted()
		}
	}
	names = append(names, s.self)

	if err := putRecord(ctx, s.gw, gateway.PresenceKey, true, names); err != nil {
		observability.IncStorageError("presence_write")
		s.log.Warn(ctx, "mark online failed", "user", s.self, "err", err)
		return failed(err)
	}
	s.setOnline(names)
	return persisted()
}

// MarkOffline removes every occurrence of the local user from the shared set.
func (s *PresenceService) MarkOffline(ctx context.Context) Outcome {
	var names []string
	found, err := getRecord(ctx, s.gw, gateway.PresenceKey, true, &names)
	if err != nil {
		observability.IncStorageError("presence_read")
		s.log.Warn(ctx, "presence read failed", "user", s.self, "err", err)
		return failed(err)
	}
	if !found {
		return persisted()
	}

	kept := names[:0]
	for _, n := range names {
		if n != s.self {
			kept = append(kept, n)
		}
	}

	if err := putRecord(ctx, s.gw, gateway.PresenceKey, true, dedupeNames(kept)); err != nil {
		observability.IncStorageError("presence_write")
		s.log.Warn(ctx, "mark offline failed", "user", s.self, "err", err)
		return failed(err)
	}
	return persisted()
}

// Refresh re-reads the shared set into the local cache. Fail-open: when the
// record is absent or the read fails, the cache becomes a singleton holding
// the local user so the viewer never appears alone in an empty room.
func (s *PresenceService) Refresh(ctx context.Context) {
	var names []string
	found, err := getRecord(ctx, s.gw, gateway.PresenceKey, true, &names)
	if err != nil {
		observability.IncStorageError("presence_read")
		s.log.Warn(ctx, "presence refresh failed", "user", s.self, "err", err)
		s.setOnline([]string{s.self})
		return
	}
	if !found {
		s.setOnline([]string{s.self})
		return
	}
	s.setOnline(dedupeNames(names))
}

// ListOnline returns the current shared set, fetching it first.
func (s *PresenceService) ListOnline(ctx context.Context) []string {
	s.Refresh(ctx)
	return s.Online()
}

// Online returns the cached set from the last refresh.
func (s *PresenceService) Online() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.online))
	copy(out, s.online)
	return out
}

func (s *PresenceService) setOnline(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = names
}

// dedupeNames collapses repeated names, keeping first-occurrence order.
// Applied at read time to reduce (not eliminate) lost-update artifacts.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
