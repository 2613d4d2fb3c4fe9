package service

import (
	"context"
	"time"

	"travel_journal/internal/logger"
	"travel_journal/internal/observability"
	"travel_journal/internal/repository"
)

// Runtime is a live browser tab as seen by the transport.
type Runtime interface {
	ID() string
	Frames() <-chan Frame
	Done() <-chan struct{}
	Dispatch(msg Message) error
}

// Tabs opens tab runtimes. A tab lives until ctx is cancelled.
type Tabs interface {
	Open(ctx context.Context, id, path string) Runtime
}

type Config struct {
	PageSize int
	Debounce time.Duration
}

// Service aggregates what the transport layer needs.
type Service struct {
	Tabs
}

// NewService wires the shared backend client into per-tab runtimes.
func NewService(client *repository.Client, cfg Config, log *logger.Logger, metrics *observability.Collector) *Service {
	return newService(func(tokens repository.TokenSource) *repository.Repository {
		return repository.NewRepository(client, tokens)
	}, cfg, log, metrics)
}

type repoFactory func(tokens repository.TokenSource) *repository.Repository

func newService(newRepo repoFactory, cfg Config, log *logger.Logger, metrics *observability.Collector) *Service {
	return &Service{
		Tabs: &TabService{
			newRepo: newRepo,
			deps: tabDeps{
				log:       log,
				metrics:   metrics,
				guard:     NewGuard(),
				validator: NewValidator(),
				pageSize:  cfg.PageSize,
				debounce:  cfg.Debounce,
			},
		},
	}
}

// TabService starts one runtime per browser tab, each with its own session.
type TabService struct {
	newRepo repoFactory
	deps    tabDeps
}

func (s *TabService) Open(ctx context.Context, id, path string) Runtime {
	return s.open(ctx, id, path)
}

func (s *TabService) open(ctx context.Context, id, path string) *Tab {
	session := NewSessionStore()
	t := newTab(ctx, id, session, s.newRepo(session), s.deps)
	t.start(path)
	return t
}
