package handlers

import (
	"context"
	"sync"

	"travel_journal/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockRuntime struct {
	id     string
	frames chan service.Frame
	done   chan struct{}

	dispatchErr error

	mu       sync.Mutex
	received []service.Message
	got      chan service.Message
}

func newMockRuntime(id string) *mockRuntime {
	return &mockRuntime{
		id:     id,
		frames: make(chan service.Frame, 8),
		done:   make(chan struct{}),
		got:    make(chan service.Message, 8),
	}
}

func (m *mockRuntime) ID() string                   { return m.id }
func (m *mockRuntime) Frames() <-chan service.Frame { return m.frames }
func (m *mockRuntime) Done() <-chan struct{}        { return m.done }

func (m *mockRuntime) Dispatch(msg service.Message) error {
	m.mu.Lock()
	m.received = append(m.received, msg)
	m.mu.Unlock()
	m.got <- msg
	return m.dispatchErr
}

type mockTabs struct {
	rt *mockRuntime

	mu       sync.Mutex
	lastPath string
	lastID   string
	opened   chan context.Context
}

func newMockTabs(rt *mockRuntime) *mockTabs {
	return &mockTabs{rt: rt, opened: make(chan context.Context, 1)}
}

func (m *mockTabs) Open(ctx context.Context, id, path string) service.Runtime {
	m.mu.Lock()
	m.lastID, m.lastPath = id, path
	m.mu.Unlock()
	m.opened <- ctx
	return m.rt
}

func (m *mockTabs) opening() (id, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastID, m.lastPath
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, Config{}, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
