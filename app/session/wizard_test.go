package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardThreeSteps(t *testing.T) {
	w := NewWizard()
	const admin = int64(42)

	w.Start(admin)
	require.True(t, w.InProgress(admin))

	step, ok := w.Step(admin)
	require.True(t, ok)
	assert.Equal(t, StepChannelID, step)

	_, done, ok := w.Advance(admin, "@mychannel")
	require.True(t, ok)
	assert.False(t, done)

	_, done, ok = w.Advance(admin, "My Channel")
	require.True(t, ok)
	assert.False(t, done)

	ch, done, ok := w.Advance(admin, "https://t.me/mychannel")
	require.True(t, ok)
	require.True(t, done)
	assert.Equal(t, "@mychannel", ch.ChannelID)
	assert.Equal(t, "My Channel", ch.Name)
	assert.Equal(t, "https://t.me/mychannel", ch.InviteLink)

	assert.False(t, w.InProgress(admin))
}

func TestWizardAdvanceWithoutStart(t *testing.T) {
	w := NewWizard()
	_, _, ok := w.Advance(1, "x")
	assert.False(t, ok)
}

func TestWizardCancelMidway(t *testing.T) {
	w := NewWizard()
	w.Start(5)
	w.Advance(5, "@ch")

	require.True(t, w.Cancel(5))
	assert.False(t, w.InProgress(5))
	assert.False(t, w.Cancel(5))
}
