package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_GotoAndBack(t *testing.T) {
	ctx := context.Background()
	d := New(WithStart("home"))

	ok, err := d.Probe(ctx, "home", domain.KindReady)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, d.Perform(ctx, "goto", map[string]any{"screen": "cart"}))
	assert.Equal(t, "cart", d.Current())

	exists, _ := d.Probe(ctx, "home", domain.KindExists)
	assert.False(t, exists)

	require.NoError(t, d.Perform(ctx, "back", nil))
	assert.Equal(t, "home", d.Current())

	err = d.Perform(ctx, "back", nil)
	assert.ErrorContains(t, err, "no history")

	log := d.Log()
	require.Len(t, log, 3)
	assert.Equal(t, "goto", log[0].Action)
	assert.Error(t, log[2].Err)
}

func TestDriver_Settle(t *testing.T) {
	ctx := context.Background()
	d := New(WithStart("home"), WithSettle(2))

	require.NoError(t, d.Perform(ctx, "goto", map[string]any{"screen": "cart"}))

	var answers []bool
	for range 3 {
		ok, err := d.Probe(ctx, "cart", domain.KindReady)
		require.NoError(t, err)
		answers = append(answers, ok)
	}
	assert.Equal(t, []bool{false, false, true}, answers)

	exists, _ := d.Probe(ctx, "cart", domain.KindExists)
	assert.True(t, exists, "a settling screen already exists")
}

func TestDriver_Failures(t *testing.T) {
	ctx := context.Background()
	d := New(WithStart("home"), WithFailingTarget("cart"), WithNeverReady("help"))

	err := d.Perform(ctx, "goto", map[string]any{"screen": "cart"})
	assert.ErrorIs(t, err, ErrActionFailed)
	assert.Equal(t, "home", d.Current())

	assert.ErrorIs(t, d.Perform(ctx, "fail", nil), ErrActionFailed)
	assert.ErrorContains(t, d.Perform(ctx, "goto", nil), "missing screen")
	assert.ErrorContains(t, d.Perform(ctx, "swipe", nil), "unsupported action")

	require.NoError(t, d.Perform(ctx, "goto", map[string]any{"screen": "help"}))
	ready, _ := d.Probe(ctx, "help", domain.KindReady)
	assert.False(t, ready)

	_, err = d.Probe(ctx, "help", "title")
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestDriver_Latency(t *testing.T) {
	d := New(WithLatency(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := d.Perform(ctx, "goto", map[string]any{"screen": "cart"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, d.Log())
}

func TestDriver_Register(t *testing.T) {
	d := New()
	r := registry.NewRegistry()
	d.Register(r)

	assert.Equal(t, []string{"back", "fail", "goto"}, r.Names())
	require.NoError(t, r.Execute(context.Background(), "goto", map[string]any{"screen": "home"}))
	assert.Equal(t, "home", d.Current())
}
