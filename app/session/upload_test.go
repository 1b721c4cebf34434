package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/filebot/app/model"
)

func TestUploadTrackerLifecycle(t *testing.T) {
	tr := NewUploadTracker()
	const admin = int64(100)

	assert.False(t, tr.InProgress(admin))
	_, ok := tr.Finish(admin)
	assert.False(t, ok)

	tr.Start(admin, "ab12cd34")
	require.True(t, tr.InProgress(admin))

	catID, ok := tr.CategoryID(admin)
	require.True(t, ok)
	assert.Equal(t, "ab12cd34", catID)

	n, ok := tr.Add(admin, model.FileEntry{FileID: "f1", FileType: model.TypeDocument})
	require.True(t, ok)
	assert.Equal(t, 1, n)
	n, _ = tr.Add(admin, model.FileEntry{FileID: "f2", FileType: model.TypePhoto})
	assert.Equal(t, 2, n)

	up, ok := tr.Finish(admin)
	require.True(t, ok)
	assert.Equal(t, "ab12cd34", up.CategoryID)
	assert.Len(t, up.Entries, 2)
	assert.False(t, tr.InProgress(admin))
}

func TestUploadTrackerRestartReplaces(t *testing.T) {
	tr := NewUploadTracker()
	const admin = int64(100)

	tr.Start(admin, "first000")
	tr.Add(admin, model.FileEntry{FileID: "f1"})
	tr.Start(admin, "second00")

	up, ok := tr.Finish(admin)
	require.True(t, ok)
	assert.Equal(t, "second00", up.CategoryID)
	assert.Empty(t, up.Entries)
}

func TestUploadTrackerCancel(t *testing.T) {
	tr := NewUploadTracker()
	assert.False(t, tr.Cancel(7))

	tr.Start(7, "cat00001")
	assert.True(t, tr.Cancel(7))
	assert.False(t, tr.InProgress(7))
}

func TestUploadTrackerIsolatedPerUser(t *testing.T) {
	tr := NewUploadTracker()
	tr.Start(1, "cat-a")
	tr.Start(2, "cat-b")

	tr.Add(1, model.FileEntry{FileID: "a1"})

	upB, ok := tr.Finish(2)
	require.True(t, ok)
	assert.Empty(t, upB.Entries)

	upA, ok := tr.Finish(1)
	require.True(t, ok)
	assert.Len(t, upA.Entries, 1)
}
