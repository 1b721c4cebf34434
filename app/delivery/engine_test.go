package delivery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/filebot/app/model"

	tele "gopkg.in/telebot.v4"
)

type recordingSender struct {
	sent    []interface{}
	failOn  map[int]error
	attempt int
}

func (r *recordingSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	idx := r.attempt
	r.attempt++
	if err, ok := r.failOn[idx]; ok {
		return nil, err
	}
	r.sent = append(r.sent, what)
	return &tele.Message{}, nil
}

func noSleep() (func(time.Duration), *[]time.Duration) {
	var pauses []time.Duration
	return func(d time.Duration) { pauses = append(pauses, d) }, &pauses
}

func entries(ids ...string) []model.FileEntry {
	out := make([]model.FileEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.FileEntry{FileID: id, FileType: model.TypeDocument})
	}
	return out
}

func TestDeliverPreservesOrder(t *testing.T) {
	sender := &recordingSender{}
	sleep, _ := noSleep()
	e := NewEngine(sender, Options{Sleep: sleep})

	res, err := e.Deliver(context.Background(), &tele.User{ID: 1}, entries("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, Result{Sent: 3}, res)

	require.Len(t, sender.sent, 3)
	for i, want := range []string{"a", "b", "c"} {
		doc, ok := sender.sent[i].(*tele.Document)
		require.True(t, ok)
		assert.Equal(t, want, doc.FileID)
	}
}

func TestDeliverSkipsFailedFile(t *testing.T) {
	sender := &recordingSender{failOn: map[int]error{1: errors.New("flood")}}
	sleep, pauses := noSleep()
	e := NewEngine(sender, Options{Pace: 100 * time.Millisecond, Sleep: sleep})

	res, err := e.Deliver(context.Background(), &tele.User{ID: 1}, entries("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, Result{Sent: 2, Failed: 1}, res)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "a", sender.sent[0].(*tele.Document).FileID)
	assert.Equal(t, "c", sender.sent[1].(*tele.Document).FileID)

	// failure doubles the pause before the next file
	require.Len(t, *pauses, 2)
	assert.Equal(t, 100*time.Millisecond, (*pauses)[0])
	assert.Equal(t, 200*time.Millisecond, (*pauses)[1])
}

func TestDeliverNoPauseAfterLast(t *testing.T) {
	sender := &recordingSender{}
	sleep, pauses := noSleep()
	e := NewEngine(sender, Options{Sleep: sleep})

	_, err := e.Deliver(context.Background(), &tele.User{ID: 1}, entries("a", "b"))
	require.NoError(t, err)
	assert.Len(t, *pauses, 1)
}

func TestDeliverTruncatesCaption(t *testing.T) {
	sender := &recordingSender{}
	sleep, _ := noSleep()
	e := NewEngine(sender, Options{Sleep: sleep})

	files := []model.FileEntry{{
		FileID:   "a",
		FileType: model.TypePhoto,
		Caption:  strings.Repeat("x", 3000),
	}}
	_, err := e.Deliver(context.Background(), &tele.User{ID: 1}, files)
	require.NoError(t, err)

	photo := sender.sent[0].(*tele.Photo)
	assert.Equal(t, 1024, len([]rune(photo.Caption)))
}

func TestDeliverStopsOnCancelledContext(t *testing.T) {
	sender := &recordingSender{}
	sleep, _ := noSleep()
	e := NewEngine(sender, Options{Sleep: sleep})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.Deliver(ctx, &tele.User{ID: 1}, entries("a"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Result{}, res)
	assert.Empty(t, sender.sent)
}

func TestDeliverCountsUnsupportedAsFailed(t *testing.T) {
	sender := &recordingSender{}
	sleep, _ := noSleep()
	e := NewEngine(sender, Options{Sleep: sleep})

	files := []model.FileEntry{{FileID: "a", FileType: model.FileType("sticker")}}
	res, err := e.Deliver(context.Background(), &tele.User{ID: 1}, files)
	require.NoError(t, err)
	assert.Equal(t, Result{Failed: 1}, res)
}
