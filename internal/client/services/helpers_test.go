package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/common"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// faultGateway wraps a real gateway and fails selected keys on demand,
// so tests can exercise the best-effort/swallowed-failure paths.
type faultGateway struct {
	inner gateway.Gateway

	mu      sync.Mutex
	failGet map[string]bool
	failSet map[string]bool
	sets    int
}

func newFaultGateway(inner gateway.Gateway) *faultGateway {
	return &faultGateway{
		inner:   inner,
		failGet: make(map[string]bool),
		failSet: make(map[string]bool),
	}
}

func (g *faultGateway) breakGet(key string, broken bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failGet[key] = broken
}

func (g *faultGateway) breakSet(key string, broken bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failSet[key] = broken
}

func (g *faultGateway) setCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sets
}

func (g *faultGateway) Get(ctx context.Context, key string, shared bool) (string, bool, error) {
	g.mu.Lock()
	broken := g.failGet[key]
	g.mu.Unlock()
	if broken {
		return "", false, common.ErrStorageUnavailable
	}
	return g.inner.Get(ctx, key, shared)
}

func (g *faultGateway) Set(ctx context.Context, key, value string, shared bool) error {
	g.mu.Lock()
	broken := g.failSet[key]
	g.mu.Unlock()
	if broken {
		return common.ErrStorageUnavailable
	}
	g.mu.Lock()
	g.sets++
	g.mu.Unlock()
	return g.inner.Set(ctx, key, value, shared)
}
