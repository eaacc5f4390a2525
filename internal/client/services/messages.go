package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/client/models"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
)

// MessageService owns the client's channel list and its local view of every
// channel's message log.
//
// The channel list starts with the built-in set. Channels created at runtime
// are registered in this client's memory only — there is no shared channel
// registry, so other clients never learn about them. Preserved as-is from
// the stored-data contract; see the accompanying tests.
type MessageService struct {
	gw   gateway.Gateway
	log  logging.Logger
	self string
	now  func() time.Time

	mu       sync.Mutex
	channels []models.Channel
	local    map[string][]models.Message
}

func NewMessageService(gw gateway.Gateway, log logging.Logger, self string) *MessageService {
	return &MessageService{
		gw:       gw,
		log:      log,
		self:     self,
		now:      time.Now,
		channels: models.DefaultChannels(),
		local:    make(map[string][]models.Message),
	}
}

// Channels returns the channels known to this client.
func (s *MessageService) Channels() []models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

// HasChannel reports whether id is in this client's channel list.
func (s *MessageService) HasChannel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.channels {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CreateChannel registers a new channel in this client's in-memory list and
// returns it. Nothing is written to the gateway: the channel becomes visible
// to other clients only through messages appearing under its key.
func (s *MessageService) CreateChannel(name string) models.Channel {
	id := models.ChannelID(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.channels {
		if c.ID == id {
			return c
		}
	}
	ch := models.Channel{ID: id, Name: id, Icon: "💬"}
	s.channels = append(s.channels, ch)
	s.local[id] = nil
	return ch
}

// ensureChannel registers a channel id this client has not seen before, so a
// DM conversation started by the counterpart still gets polled.
func (s *MessageService) ensureChannel(id, icon string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.channels {
		if c.ID == id {
			return
		}
	}
	s.channels = append(s.channels, models.Channel{ID: id, Name: id, Icon: icon})
}

// LoadChannel fetches the stored message sequence for a channel and replaces
// the local view. A missing record is a brand-new channel, not an error.
func (s *MessageService) LoadChannel(ctx context.Context, channelID string) ([]models.Message, error) {
	var msgs []models.Message
	_, err := getRecord(ctx, s.gw, gateway.MessagesKey(channelID), true, &msgs)
	if err != nil {
		observability.IncStorageError("messages_read")
		return nil, fmt.Errorf("loading channel %s: %w", channelID, err)
	}

	s.mu.Lock()
	s.local[channelID] = msgs
	s.mu.Unlock()
	return msgs, nil
}

// Messages returns the local view of a channel, in stored order.
func (s *MessageService) Messages(channelID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.local[channelID]))
	copy(out, s.local[channelID])
	return out
}

// Append constructs a message, applies it to the local view immediately, and
// then tries to persist the full sequence: read the stored log, append, write
// back. The write is fire-and-forget — its failure is logged and reported via
// Outcome but the optimistic local append stays.
func (s *MessageService) Append(ctx context.Context, channelID, text string) (models.Message, Outcome) {
	now := s.now()
	msg := models.Message{
		ID:        now.UnixMilli(),
		Author:    s.self,
		Text:      text,
		Timestamp: now,
		Channel:   channelID,
	}

	s.mu.Lock()
	s.local[channelID] = append(s.local[channelID], msg)
	s.mu.Unlock()
	observability.IncMessageSent()

	key := gateway.MessagesKey(channelID)

	var stored []models.Message
	if _, err := getRecord(ctx, s.gw, key, true, &stored); err != nil {
		// Fall back to the local view so the write still carries this message.
		observability.IncStorageError("messages_read")
		s.log.Warn(ctx, "reading channel before append failed", "channel", channelID, "err", err)
		stored = s.Messages(channelID)
	} else {
		stored = append(stored, msg)
	}

	if err := putRecord(ctx, s.gw, key, true, stored); err != nil {
		observability.IncStorageError("messages_write")
		s.log.Warn(ctx, "persisting message failed", "channel", channelID, "err", err)
		return msg, failed(err)
	}

	s.mu.Lock()
	s.local[channelID] = stored
	s.mu.Unlock()
	return msg, persisted()
}

// RefreshAll reloads every known channel. Per-channel failures are logged
// and skipped; the previous local view survives until the next good read.
func (s *MessageService) RefreshAll(ctx context.Context) {
	for _, ch := range s.Channels() {
		if _, err := s.LoadChannel(ctx, ch.ID); err != nil {
			s.log.Warn(ctx, "channel refresh failed", "channel", ch.ID, "err", err)
		}
	}
}
