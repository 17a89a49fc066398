package wayfinder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/dsl"
	"github.com/aretw0/wayfinder/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// app simulates a single-window application for facade tests.
type app struct {
	mu      sync.Mutex
	current string
	broken  map[string]bool
}

func (a *app) showing(id string) dsl.Probe {
	return func(ctx context.Context) (bool, error) {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.current == id && !a.broken[id], nil
	}
}

func (a *app) open(id string) domain.Action {
	return func(ctx context.Context) error {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.current = id
		return nil
	}
}

func (a *app) where() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// newApp builds login -> home -> {settings, profile}, settings -> home, and an
// unreachable "admin" screen.
func newApp(t *testing.T, opts ...Option) (*Session, *app) {
	t.Helper()
	a := &app{current: "login", broken: map[string]bool{}}

	b := dsl.New()
	b.Add("login").Ready(a.showing("login")).Go("home", a.open("home"))
	b.Add("home").Ready(a.showing("home")).
		Go("settings", a.open("settings")).
		Go("profile", a.open("profile"))
	b.Add("settings").Ready(a.showing("settings")).Go("home", a.open("home"))
	b.Add("profile").Ready(a.showing("profile"))
	b.Add("admin").Ready(a.showing("admin"))

	screens, err := b.Build()
	require.NoError(t, err)

	base := []Option{
		WithDefaultTimeout(50 * time.Millisecond),
		WithPollInterval(2 * time.Millisecond),
		WithStartID("login"),
	}
	s, err := New(screens, append(base, opts...)...)
	require.NoError(t, err)
	return s, a
}

func lookup(t *testing.T, s *Session, id string) domain.Navigable {
	t.Helper()
	n, ok := s.Graph().Lookup(id)
	require.True(t, ok, "screen %q", id)
	return n
}

func TestNew_Errors(t *testing.T) {
	twinA, twinB := dsl.NewScreen("twin"), dsl.NewScreen("twin")
	_, err := New([]domain.Navigable{twinA, twinB})
	assert.ErrorIs(t, err, domain.ErrDuplicateNavigable)

	_, err = New([]domain.Navigable{twinA}, WithStartID("nowhere"))
	assert.ErrorContains(t, err, `start navigable "nowhere" not in graph`)

	s, err := New([]domain.Navigable{twinA}, WithStart(twinA), WithName("solo"))
	require.NoError(t, err)
	assert.Same(t, twinA, s.Position())
	assert.Equal(t, "solo", s.Name)
}

func TestSession_ShortestPath(t *testing.T) {
	s, _ := newApp(t)
	login, profile := lookup(t, s, "login"), lookup(t, s, "profile")

	assert.Equal(t, []string{"home", "profile"}, graph.IDs(s.ShortestPath(login, profile)))
	assert.Empty(t, s.ShortestPath(login, login))
	assert.Empty(t, s.ShortestPath(login, lookup(t, s, "admin")))
}

func TestSession_Queries(t *testing.T) {
	s, _ := newApp(t)
	ctx := context.Background()
	login, home := lookup(t, s, "login"), lookup(t, s, "home")

	assert.True(t, s.Exists(ctx, login))
	assert.False(t, s.IsReady(ctx, home))

	rec, err := s.LastRecord(ctx, home, domain.KindReady)
	require.NoError(t, err)
	assert.Same(t, home, rec.Navigable)
	assert.Equal(t, false, rec.Value)

	_, err = s.LastRecord(ctx, home, domain.KindExists)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	records, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSession_Waits(t *testing.T) {
	ctx := context.Background()

	t.Run("Without Signal Is A Configuration Error", func(t *testing.T) {
		a := &app{current: "x"}
		screen := dsl.New()
		screen.Add("x").Ready(a.showing("x"))
		screens, err := screen.Build()
		require.NoError(t, err)

		s, err := New(screens)
		require.NoError(t, err)

		_, err = s.WaitForReady(ctx, screens[0])
		assert.ErrorIs(t, err, domain.ErrSignalNotConfigured)

		tctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		ok, err := s.WaitForReady(tctx, screens[0])
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Default Timeout Gives Up", func(t *testing.T) {
		s, _ := newApp(t)
		ok, err := s.WaitForExists(ctx, lookup(t, s, "home"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Expired Context", func(t *testing.T) {
		s, _ := newApp(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		ok, err := s.WaitForReady(cctx, lookup(t, s, "login"))
		require.NoError(t, err)
		assert.False(t, ok, "an expired context yields false even for a ready screen")
	})
}

func TestSession_Navigate(t *testing.T) {
	s, a := newApp(t)
	ctx := context.Background()

	ran := false
	c := s.Navigate(ctx, lookup(t, s, "profile")).
		Do(func(ctx context.Context) error {
			ran = true
			return nil
		})

	require.NoError(t, c.Err())
	assert.True(t, ran)
	assert.True(t, c.Reached())
	assert.Equal(t, []string{"home", "profile"}, graph.IDs(c.Hops()))
	assert.Equal(t, []string{"home", "profile"}, graph.IDs(c.Path()))
	assert.Equal(t, "profile", a.where())
	assert.Equal(t, "profile", s.Position().ID())
}

func TestSession_GoToSelf(t *testing.T) {
	s, _ := newApp(t)
	login := lookup(t, s, "login")

	ran := false
	c := s.GoTo(context.Background(), login, login).Do(func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, c.Err())
	assert.True(t, ran)
	assert.Empty(t, c.Hops())
}

func TestSession_NavigateFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Hop Not Ready", func(t *testing.T) {
		s, a := newApp(t)
		a.broken["settings"] = true

		ran := false
		c := s.Navigate(ctx, lookup(t, s, "settings")).Do(func(ctx context.Context) error {
			ran = true
			return nil
		})

		assert.False(t, ran, "follow-up work never runs after a failed traversal")
		assert.False(t, c.Reached())

		var hopErr *domain.HopError
		require.ErrorAs(t, c.Err(), &hopErr)
		assert.Equal(t, "home", hopErr.From)
		assert.Equal(t, "settings", hopErr.To)
		assert.ErrorIs(t, c.Err(), domain.ErrNotReady)
		assert.Equal(t, "home", s.Position().ID(), "position is the last confirmed hop")
	})

	t.Run("No Route", func(t *testing.T) {
		s, _ := newApp(t)
		c := s.Navigate(ctx, lookup(t, s, "admin"))
		assert.ErrorIs(t, c.Err(), domain.ErrNoRoute)
		assert.Equal(t, "login", s.Position().ID())
	})

	t.Run("Explicit Origin Is Not Confirmed", func(t *testing.T) {
		s, a := newApp(t)

		c := s.GoTo(ctx, lookup(t, s, "settings"), lookup(t, s, "admin"))
		assert.ErrorIs(t, c.Err(), domain.ErrNoRoute)
		assert.Equal(t, "settings", c.Position().ID())
		assert.Equal(t, "login", s.Position().ID(), "an unvisited origin never becomes the position")

		a.broken["profile"] = true
		c = s.GoTo(ctx, lookup(t, s, "home"), lookup(t, s, "profile"))
		assert.ErrorIs(t, c.Err(), domain.ErrNotReady)
		assert.Equal(t, "login", s.Position().ID())
	})

	t.Run("Unknown Position", func(t *testing.T) {
		s, _ := newApp(t)
		s.SetPosition(nil)
		c := s.Navigate(ctx, lookup(t, s, "home"))
		assert.ErrorIs(t, c.Err(), domain.ErrUnknownPosition)
		assert.Empty(t, c.Hops())
	})

	t.Run("Follow Up Failure", func(t *testing.T) {
		s, _ := newApp(t)
		boom := errors.New("toggle missing")
		second := false
		c := s.Navigate(ctx, lookup(t, s, "home")).
			Do(func(ctx context.Context) error { return boom }).
			Do(func(ctx context.Context) error {
				second = true
				return nil
			})

		assert.ErrorIs(t, c.Err(), boom)
		assert.ErrorContains(t, c.Err(), "action at home")
		assert.False(t, second)
		assert.True(t, c.Reached())
	})

	t.Run("Configuration Error Keeps Position", func(t *testing.T) {
		a := &app{current: "login", broken: map[string]bool{}}
		b := dsl.New()
		b.Add("login").Ready(a.showing("login")).Go("home", a.open("home"))
		b.Add("home").Ready(a.showing("home"))
		screens, err := b.Build()
		require.NoError(t, err)

		s, err := New(screens, WithStartID("login"))
		require.NoError(t, err)

		c := s.Navigate(ctx, screens[1])
		assert.ErrorIs(t, c.Err(), domain.ErrSignalNotConfigured)
		assert.Equal(t, "login", a.where(), "no action runs without a cancellation signal")
		assert.Equal(t, "login", s.Position().ID())
	})
}

func TestSession_Locate(t *testing.T) {
	s, a := newApp(t)
	ctx := context.Background()

	a.open("settings")(ctx)
	located := s.Locate(ctx)
	require.NotNil(t, located)
	assert.Equal(t, "settings", located.ID())
	assert.Equal(t, "settings", s.Position().ID())

	a.broken["settings"] = true
	assert.Nil(t, s.Locate(ctx))
}

func TestSession_Hooks(t *testing.T) {
	var hops, arrivals, published int32
	hooks := domain.LifecycleHooks{
		OnHopComplete:    func(ctx context.Context, e *domain.HopEvent) { atomic.AddInt32(&hops, 1) },
		OnArrive:         func(ctx context.Context, e *domain.ArrivalEvent) { atomic.AddInt32(&arrivals, 1) },
		OnStatePublished: func(ctx context.Context, rec domain.StateRecord) { atomic.AddInt32(&published, 1) },
	}
	store := memory.NewStore()
	s, _ := newApp(t, WithLifecycleHooks(hooks), WithRecordStore(store))

	require.NoError(t, s.Navigate(context.Background(), lookup(t, s, "settings")).Err())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hops))
	assert.Equal(t, int32(1), atomic.LoadInt32(&arrivals))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&published), int32(2))

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSession_SerializedTraversals(t *testing.T) {
	s, _ := newApp(t)
	ctx := context.Background()
	home, settings := lookup(t, s, "home"), lookup(t, s, "settings")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		dest := home
		if i%2 == 0 {
			dest = settings
		}
		go func() {
			defer wg.Done()
			errs <- s.Navigate(ctx, dest).Err()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestSession_NavigateTo(t *testing.T) {
	s, _ := newApp(t)
	hops, err := s.NavigateTo(context.Background(), lookup(t, s, "settings"))
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "settings"}, graph.IDs(hops))
}
