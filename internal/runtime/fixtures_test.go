package runtime_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// journal records driver-level effects in order.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// fakeScreen is a scriptable navigable.
type fakeScreen struct {
	id    string
	edges []domain.Transition
	log   *journal

	// readyAfter is the number of Ready polls answering false before true;
	// negative means never ready.
	readyAfter int
	exists     bool
	probeErr   error
	readyPolls atomic.Int32
}

func newScreen(id string, log *journal) *fakeScreen {
	return &fakeScreen{id: id, log: log, exists: true}
}

func (s *fakeScreen) ID() string                       { return s.id }
func (s *fakeScreen) Transitions() []domain.Transition { return s.edges }

func (s *fakeScreen) Exists(ctx context.Context) (bool, error) {
	return s.exists, s.probeErr
}

func (s *fakeScreen) Ready(ctx context.Context) (bool, error) {
	n := int(s.readyPolls.Add(1))
	if s.probeErr != nil {
		return false, s.probeErr
	}
	ready := s.readyAfter >= 0 && n > s.readyAfter
	if ready && s.log != nil {
		s.log.add("ready:" + s.id)
	}
	return ready, nil
}

func (s *fakeScreen) polls() int {
	return int(s.readyPolls.Load())
}

// link declares a transition from s to target that journals its execution.
func (s *fakeScreen) link(target *fakeScreen, err error) *fakeScreen {
	s.edges = append(s.edges, domain.Transition{
		To: target,
		Action: func(ctx context.Context) error {
			if s.log != nil {
				s.log.add("act:" + s.id + "->" + target.id)
			}
			return err
		},
	})
	return s
}

// titled is a navigable exposing a richer state kind.
type titled struct {
	*fakeScreen
	title string
}

func (t *titled) Inspect(ctx context.Context, kind domain.StateKind) (any, error) {
	if kind == "title" {
		return t.title, nil
	}
	return nil, domain.ErrUnsupportedKind
}
