package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/common"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
	"github.com/google/uuid"
)

// fanoutKind names the second half of a two-party friend mutation.
type fanoutKind string

const (
	fanoutRequest fanoutKind = "request" // deliver to target's received list
	fanoutAccept  fanoutKind = "accept"  // deliver to counterpart's friend list
)

// fanoutTask is a queued retry for a failed best-effort half of a dual write.
// Queuing keeps the delivery alive until the gateway recovers; the scheduler
// drains the queue every tick. Deliveries are idempotent, so a retry racing a
// successful earlier attempt is a no-op.
type fanoutTask struct {
	ID          string
	Kind        fanoutKind
	Counterpart string
	Request     models.FriendRequest
	Record      models.FriendRecord
}

// FriendService implements the friend relationship protocol for one session:
// NONE -> REQUESTED -> ACCEPTED, no decline. Each accepted request mutates
// two users' records without atomicity; the second write is best-effort.
type FriendService struct {
	gw       gateway.Gateway
	log      logging.Logger
	accounts *AccountService
	self     models.Account
	now      func() time.Time

	mu      sync.Mutex
	friends []models.FriendRecord
	box     models.FriendRequestBox
	pending []fanoutTask
}

func NewFriendService(gw gateway.Gateway, log logging.Logger, accounts *AccountService, self models.Account) *FriendService {
	return &FriendService{gw: gw, log: log, accounts: accounts, self: self, now: time.Now}
}

// Search resolves a prospective friend by normalized name. Searching for
// yourself is rejected before any storage access.
func (s *FriendService) Search(ctx context.Context, name string) (models.Account, error) {
	if common.SameName(name, s.self.Name) {
		return models.Account{}, common.ErrSelfReference
	}
	return s.accounts.Lookup(ctx, name)
}

// SendRequest records an outbound request. Validation (self reference,
// already friends, already sent) happens before any write. Step (a) persists
// the local user's sent list and surfaces failures; step (b) delivers into
// the target's received list and is best-effort — on failure the delivery is
// queued for retry and reported via Outcome.
func (s *FriendService) SendRequest(ctx context.Context, target string, tag models.RelationshipTag) (Outcome, error) {
	if !models.ValidTag(tag) {
		return Outcome{}, fmt.Errorf("unknown relationship tag %q", tag)
	}
	if common.SameName(target, s.self.Name) {
		return Outcome{}, common.ErrSelfReference
	}

	s.mu.Lock()
	for _, f := range s.friends {
		if common.SameName(f.Name, target) {
			s.mu.Unlock()
			return Outcome{}, common.ErrAlreadyFriends
		}
	}
	for _, r := range s.box.Sent {
		if common.SameName(r.Name, target) {
			s.mu.Unlock()
			return Outcome{}, common.ErrRequestAlreadySent
		}
	}
	sentAt := s.now()
	s.box.Sent = append(s.box.Sent, models.FriendRequest{Name: target, Tag: tag, SentAt: sentAt})
	box := s.box
	s.mu.Unlock()

	// Step (a): persist own request box.
	if err := putRecord(ctx, s.gw, gateway.FriendRequestsKey(s.self.Name), true, box); err != nil {
		observability.IncStorageError("requests_write")
		s.mu.Lock()
		s.box.Sent = s.box.Sent[:len(s.box.Sent)-1]
		s.mu.Unlock()
		return Outcome{}, fmt.Errorf("persisting sent request: %w", err)
	}

	// Step (b): deliver into the target's received list.
	inbound := models.FriendRequest{Name: s.self.Name, Tag: tag, SentAt: sentAt}
	if err := s.deliverRequest(ctx, target, inbound); err != nil {
		s.log.Warn(ctx, "request delivery failed, queued for retry", "target", target, "err", err)
		s.enqueue(fanoutTask{ID: uuid.NewString(), Kind: fanoutRequest, Counterpart: target, Request: inbound})
		return failed(err), nil
	}
	return persisted(), nil
}

// AcceptRequest confirms a received request. Step (a) appends to the local
// friend list and surfaces failures; step (b) appends the symmetric record to
// the counterpart's list, best-effort with retry; step (c) removes the entry
// from the local received list, best-effort. The counterpart's stale sent
// entry is left in place — nothing in the protocol cleans it up.
func (s *FriendService) AcceptRequest(ctx context.Context, from string, tag models.RelationshipTag) (Outcome, error) {
	s.mu.Lock()
	idx := -1
	for i, r := range s.box.Received {
		if common.SameName(r.Name, from) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Outcome{}, fmt.Errorf("no pending request from %q", from)
	}
	addedAt := s.now()
	s.friends = append(s.friends, models.FriendRecord{Name: from, Tag: tag, AddedAt: addedAt})
	friends := make([]models.FriendRecord, len(s.friends))
	copy(friends, s.friends)
	s.mu.Unlock()

	// Step (a): persist own friend list.
	if err := putRecord(ctx, s.gw, gateway.FriendsKey(s.self.Name), true, friends); err != nil {
		observability.IncStorageError("friends_write")
		s.mu.Lock()
		s.friends = s.friends[:len(s.friends)-1]
		s.mu.Unlock()
		return Outcome{}, fmt.Errorf("persisting friend record: %w", err)
	}

	outcome := persisted()

	// Step (b): symmetric record for the counterpart.
	symmetric := models.FriendRecord{Name: s.self.Name, Tag: tag, AddedAt: addedAt}
	if err := s.deliverFriend(ctx, from, symmetric); err != nil {
		s.log.Warn(ctx, "symmetric friend write failed, queued for retry", "counterpart", from, "err", err)
		s.enqueue(fanoutTask{ID: uuid.NewString(), Kind: fanoutAccept, Counterpart: from, Record: symmetric})
		outcome = failed(err)
	}

	// Step (c): drop the entry from the local received list.
	s.mu.Lock()
	s.box.Received = append(s.box.Received[:idx], s.box.Received[idx+1:]...)
	box := s.box
	s.mu.Unlock()
	if err := putRecord(ctx, s.gw, gateway.FriendRequestsKey(s.self.Name), true, box); err != nil {
		observability.IncStorageError("requests_write")
		s.log.Warn(ctx, "clearing accepted request failed", "from", from, "err", err)
		if outcome.Err == nil {
			outcome = failed(err)
		}
	}

	return outcome, nil
}

// deliverRequest appends req to the counterpart's received list, defaulting
// to an empty box when none exists yet. Idempotent: an entry with the same
// sender and timestamp is not appended twice.
func (s *FriendService) deliverRequest(ctx context.Context, counterpart string, req models.FriendRequest) error {
	key := gateway.FriendRequestsKey(counterpart)
	var box models.FriendRequestBox
	if _, err := getRecord(ctx, s.gw, key, true, &box); err != nil {
		observability.IncStorageError("requests_read")
		return err
	}
	for _, r := range box.Received {
		if common.SameName(r.Name, req.Name) && r.SentAt.Equal(req.SentAt) {
			return nil
		}
	}
	box.Received = append(box.Received, req)
	if err := putRecord(ctx, s.gw, key, true, box); err != nil {
		observability.IncStorageError("requests_write")
		return err
	}
	return nil
}

// deliverFriend appends rec to the counterpart's friend list, skipping the
// append when a record for the same name is already present.
func (s *FriendService) deliverFriend(ctx context.Context, counterpart string, rec models.FriendRecord) error {
	key := gateway.FriendsKey(counterpart)
	var friends []models.FriendRecord
	if _, err := getRecord(ctx, s.gw, key, true, &friends); err != nil {
		observability.IncStorageError("friends_read")
		return err
	}
	for _, f := range friends {
		if common.SameName(f.Name, rec.Name) {
			return nil
		}
	}
	friends = append(friends, rec)
	if err := putRecord(ctx, s.gw, key, true, friends); err != nil {
		observability.IncStorageError("friends_write")
		return err
	}
	return nil
}

func (s *FriendService) enqueue(t fanoutTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, t)
}

// DrainRetries re-attempts queued fan-out deliveries. Tasks that fail again
// stay queued for the next tick.
func (s *FriendService) DrainRetries(ctx context.Context) {
	s.mu.Lock()
	tasks := make([]fanoutTask, len(s.pending))
	copy(tasks, s.pending)
	s.mu.Unlock()
	if len(tasks) == 0 {
		return
	}

	var remaining []fanoutTask
	for _, t := range tasks {
		observability.IncFanoutRetry()
		var err error
		switch t.Kind {
		case fanoutRequest:
			err = s.deliverRequest(ctx, t.Counterpart, t.Request)
		case fanoutAccept:
			err = s.deliverFriend(ctx, t.Counterpart, t.Record)
		}
		if err != nil {
			s.log.Warn(ctx, "fan-out retry failed", "id", t.ID, "kind", string(t.Kind), "err", err)
			remaining = append(remaining, t)
		}
	}

	s.mu.Lock()
	s.pending = remaining
	s.mu.Unlock()
}

// Refresh re-reads this user's friend list and request box. Absent records
// reset to empty; read failures keep the previous local state.
func (s *FriendService) Refresh(ctx context.Context) {
	var friends []models.FriendRecord
	if _, err := getRecord(ctx, s.gw, gateway.FriendsKey(s.self.Name), true, &friends); err != nil {
		observability.IncStorageError("friends_read")
		s.log.Warn(ctx, "friend list refresh failed", "err", err)
	} else {
		s.mu.Lock()
		s.friends = friends
		s.mu.Unlock()
	}

	var box models.FriendRequestBox
	if _, err := getRecord(ctx, s.gw, gateway.FriendRequestsKey(s.self.Name), true, &box); err != nil {
		observability.IncStorageError("requests_read")
		s.log.Warn(ctx, "request box refresh failed", "err", err)
	} else {
		s.mu.Lock()
		s.box = box
		s.mu.Unlock()
	}
}

// Friends returns the local view of confirmed friendships.
func (s *FriendService) Friends() []models.FriendRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FriendRecord, len(s.friends))
	copy(out, s.friends)
	return out
}

// Requests returns the local view of the sent/received box.
func (s *FriendService) Requests() models.FriendRequestBox {
	s.mu.Lock()
	defer s.mu.Unlock()
	box := models.FriendRequestBox{
		Sent:     make([]models.FriendRequest, len(s.box.Sent)),
		Received: make([]models.FriendRequest, len(s.box.Received)),
	}
	copy(box.Sent, s.box.Sent)
	copy(box.Received, s.box.Received)
	return box
}

// PendingFanouts reports how many deliveries await retry.
func (s *FriendService) PendingFanouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
