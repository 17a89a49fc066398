package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
name: demo
start: login
screens:
  - id: login
    transitions:
      - to: home
        label: submit
        action: tap
        args:
          selector: "#submit"
  - id: home
    probe: feed
    transitions:
      - to: login
        steps:
          - action: tap
            args: {selector: "#menu"}
          - action: tap
            args: {selector: "#logout"}
`

func TestParser_Parse(t *testing.T) {
	m, err := NewParser().Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "login", m.Start)
	require.Len(t, m.Screens, 2)

	login := m.Screens[0]
	assert.Equal(t, "login", login.ProbeKey())
	require.Len(t, login.Transitions, 1)
	steps := login.Transitions[0].AllSteps()
	require.Len(t, steps, 1)
	assert.Equal(t, "tap", steps[0].Action)
	assert.Equal(t, "#submit", steps[0].Args["selector"])

	home := m.Screens[1]
	assert.Equal(t, "feed", home.ProbeKey())
	assert.Len(t, home.Transitions[0].AllSteps(), 2)
}

func TestParser_Errors(t *testing.T) {
	p := NewParser()

	_, err := p.Parse([]byte("name: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse map")

	_, err = p.Parse([]byte("name: empty\n"))
	assert.ErrorContains(t, err, "no screens")

	_, err = p.Parse([]byte("screens:\n  - id: a\n    colour: red\n"))
	assert.ErrorContains(t, err, "colour")

	lenient := &Parser{}
	m, err := lenient.Parse([]byte("screens:\n  - id: a\n    colour: red\n"))
	require.NoError(t, err)
	assert.Equal(t, "a", m.Screens[0].ID)
}
