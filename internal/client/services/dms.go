package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/common"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
)

// DMService maintains the per-user direct-message conversation index stored
// under "dms:<user>". The messages themselves travel through the regular
// channel log under the derived dm channel id.
type DMService struct {
	gw       gateway.Gateway
	log      logging.Logger
	self     string
	messages *MessageService

	mu     sync.Mutex
	convos []models.Conversation
}

func NewDMService(gw gateway.Gateway, log logging.Logger, self string, messages *MessageService) *DMService {
	return &DMService{gw: gw, log: log, self: self, messages: messages}
}

// Start opens (or returns) a conversation with another user. The local index
// is written first and failures surface; the counterpart's index entry is
// best-effort, reported via Outcome. The dm channel is registered with the
// message service so the scheduler polls it.
func (s *DMService) Start(ctx context.Context, other string) (models.Conversation, Outcome, error) {
	if common.SameName(other, s.self) {
		return models.Conversation{}, Outcome{}, common.ErrSelfReference
	}

	conv := models.Conversation{With: other, Channel: models.DMChannelID(s.self, other)}

	s.mu.Lock()
	for _, c := range s.convos {
		if c.Channel == conv.Channel {
			s.mu.Unlock()
			s.messages.ensureChannel(conv.Channel, "✉️")
			return c, persisted(), nil
		}
	}
	s.convos = append(s.convos, conv)
	mine := make([]models.Conversation, len(s.convos))
	copy(mine, s.convos)
	s.mu.Unlock()

	if err := putRecord(ctx, s.gw, gateway.DMsKey(s.self), false, mine); err != nil {
		observability.IncStorageError("dms_write")
		s.mu.Lock()
		s.convos = s.convos[:len(s.convos)-1]
		s.mu.Unlock()
		return models.Conversation{}, Outcome{}, fmt.Errorf("persisting dm index: %w", err)
	}

	s.messages.ensureChannel(conv.Channel, "✉️")

	outcome := persisted()
	if err := s.deliverIndexEntry(ctx, other, models.Conversation{With: s.self, Channel: conv.Channel}); err != nil {
		s.log.Warn(ctx, "counterpart dm index write failed", "with", other, "err", err)
		outcome = failed(err)
	}
	return conv, outcome, nil
}

func (s *DMService) deliverIndexEntry(ctx context.Context, other string, entry models.Conversation) error {
	key := gateway.DMsKey(other)
	var theirs []models.Conversation
	if _, err := getRecord(ctx, s.gw, key, false, &theirs); err != nil {
		observability.IncStorageError("dms_read")
		return err
	}
	for _, c := range theirs {
		if c.Channel == entry.Channel {
			return nil
		}
	}
	theirs = append(theirs, entry)
	if err := putRecord(ctx, s.gw, key, false, theirs); err != nil {
		observability.IncStorageError("dms_write")
		return err
	}
	return nil
}

// Refresh re-reads the conversation index and registers any conversations
// started by counterparts since the last tick.
func (s *DMService) Refresh(ctx context.Context) {
	var convos []models.Conversation
	found, err := getRecord(ctx, s.gw, gateway.DMsKey(s.self), false, &convos)
	if err != nil {
		observability.IncStorageError("dms_read")
		s.log.Warn(ctx, "dm index refresh failed", "err", err)
		return
	}
	if !found {
		return
	}

	s.mu.Lock()
	s.convos = convos
	s.mu.Unlock()
	for _, c := range convos {
		s.messages.ensureChannel(c.Channel, "✉️")
	}
}

// Conversations returns the local view of the index.
func (s *DMService) Conversations() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Conversation, len(s.convos))
	copy(out, s.convos)
	return out
}
