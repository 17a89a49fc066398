package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type stubScreen struct{ id string }

func (s *stubScreen) ID() string                               { return s.id }
func (s *stubScreen) Transitions() []domain.Transition         { return nil }
func (s *stubScreen) Exists(ctx context.Context) (bool, error) { return true, nil }
func (s *stubScreen) Ready(ctx context.Context) (bool, error)  { return true, nil }

func TestStateRecord(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	home := &stubScreen{id: "home"}

	t.Run("Carries Identity And Label", func(t *testing.T) {
		rec := domain.NewStateRecord(home, domain.KindReady, true, at)
		assert.Same(t, home, rec.Navigable)
		assert.Equal(t, "home", rec.NavigableID)
		assert.Equal(t, domain.KindReady, rec.Kind)
		assert.Equal(t, at, rec.Timestamp)
		assert.True(t, rec.Bool())
		assert.False(t, rec.Failed())
	})

	t.Run("Non Boolean Values Are False", func(t *testing.T) {
		rec := domain.NewStateRecord(home, "title", "Home", at)
		assert.False(t, rec.Bool())
		assert.Equal(t, "Home", rec.Value)
	})

	t.Run("WithError Leaves Original Untouched", func(t *testing.T) {
		rec := domain.NewStateRecord(home, domain.KindExists, false, at)
		failed := rec.WithError(errors.New("driver gone"))

		assert.True(t, failed.Failed())
		assert.Equal(t, "driver gone", failed.Err)
		assert.False(t, rec.Failed())
		assert.Contains(t, failed.String(), "driver gone")
	})
}

func TestSame(t *testing.T) {
	a := &stubScreen{id: "dup"}
	b := &stubScreen{id: "dup"}

	assert.True(t, domain.Same(a, a))
	assert.False(t, domain.Same(a, b), "equal labels are not equal identities")
	assert.False(t, domain.Same(nil, a))
	assert.Equal(t, "", domain.IDOf(nil))

	v := sliceScreen{id: "dup"}
	assert.NotPanics(t, func() {
		assert.False(t, domain.Same(v, v), "non-comparable navigables have no identity")
		assert.False(t, domain.Same(v, a))
	})
}

type sliceScreen struct {
	id   string
	tags []string
}

func (s sliceScreen) ID() string                               { return s.id }
func (s sliceScreen) Transitions() []domain.Transition         { return nil }
func (s sliceScreen) Exists(ctx context.Context) (bool, error) { return true, nil }
func (s sliceScreen) Ready(ctx context.Context) (bool, error)  { return true, nil }

func TestHopError_Unwrap(t *testing.T) {
	err := &domain.HopError{From: "a", To: "b", Cause: domain.ErrNotReady}
	assert.ErrorIs(t, err, domain.ErrNotReady)
	assert.Equal(t, "hop a -> b failed: navigable not ready", err.Error())
}
