package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contractScreen struct{ id string }

func (s *contractScreen) ID() string                               { return s.id }
func (s *contractScreen) Transitions() []domain.Transition         { return nil }
func (s *contractScreen) Exists(ctx context.Context) (bool, error) { return true, nil }
func (s *contractScreen) Ready(ctx context.Context) (bool, error)  { return true, nil }

// RunRecordStoreContract runs a suite of tests to verify that a RecordStore implementation
// adheres to the defined interface contract. The store must be empty.
func RunRecordStoreContract(t *testing.T, store RecordStore) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405")
	home := &contractScreen{id: "home-" + suffix}
	login := &contractScreen{id: "login-" + suffix}
	t0 := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("Last Non-Existent", func(t *testing.T) {
		_, err := store.Last(ctx, home.ID(), domain.KindReady)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Put and Last", func(t *testing.T) {
		rec := domain.NewStateRecord(home, domain.KindReady, true, t0)
		require.NoError(t, store.Put(ctx, rec), "Put should not return error")

		got, err := store.Last(ctx, home.ID(), domain.KindReady)
		require.NoError(t, err)
		assert.Equal(t, home.ID(), got.NavigableID)
		assert.Equal(t, domain.KindReady, got.Kind)
		assert.True(t, got.Bool())
		assert.True(t, t0.Equal(got.Timestamp), "timestamp preserved: %v vs %v", t0, got.Timestamp)
	})

	t.Run("Newer Record Replaces Older", func(t *testing.T) {
		rec := domain.NewStateRecord(home, domain.KindReady, false, t0.Add(time.Second)).
			WithError(assert.AnError)
		require.NoError(t, store.Put(ctx, rec))

		got, err := store.Last(ctx, home.ID(), domain.KindReady)
		require.NoError(t, err)
		assert.False(t, got.Bool())
		assert.Equal(t, assert.AnError.Error(), got.Err)
	})

	t.Run("Kinds Are Independent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, domain.NewStateRecord(home, domain.KindExists, true, t0)))

		exists, err := store.Last(ctx, home.ID(), domain.KindExists)
		require.NoError(t, err)
		assert.True(t, exists.Bool())

		ready, err := store.Last(ctx, home.ID(), domain.KindReady)
		require.NoError(t, err)
		assert.False(t, ready.Bool())
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, domain.NewStateRecord(login, domain.KindReady, true, t0)))

		records, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, home.ID(), records[0].NavigableID)
		assert.Equal(t, domain.KindExists, records[0].Kind)
		assert.Equal(t, domain.KindReady, records[1].Kind)
		assert.Equal(t, login.ID(), records[2].NavigableID)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		_, err := store.Last(ctx, home.ID(), domain.KindExists)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)

		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
