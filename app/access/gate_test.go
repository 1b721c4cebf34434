package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/filebot/app/model"
)

type staticChannels struct {
	channels []model.Channel
	err      error
}

func (s staticChannels) ListChannels(context.Context) ([]model.Channel, error) {
	return s.channels, s.err
}

type memberSet map[string]bool

func (m memberSet) IsMember(_ context.Context, channelID string, _ int64) bool {
	return m[channelID]
}

func TestGateOpenWithoutChannels(t *testing.T) {
	g := NewGate(staticChannels{}, memberSet{})
	missing, err := g.Missing(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGateReportsMissingOnly(t *testing.T) {
	src := staticChannels{channels: []model.Channel{
		{ChannelID: "@a"},
		{ChannelID: "@b"},
		{ChannelID: "@c"},
	}}
	g := NewGate(src, memberSet{"@a": true, "@c": true})

	missing, err := g.Missing(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "@b", missing[0].ChannelID)
}

func TestGateAllJoined(t *testing.T) {
	src := staticChannels{channels: []model.Channel{{ChannelID: "@a"}}}
	g := NewGate(src, memberSet{"@a": true})

	missing, err := g.Missing(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGatePropagatesSourceError(t *testing.T) {
	src := staticChannels{err: errors.New("db down")}
	g := NewGate(src, memberSet{})

	_, err := g.Missing(context.Background(), 1)
	assert.Error(t, err)
}
