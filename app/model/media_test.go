package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestFromMessageDocument(t *testing.T) {
	msg := &tele.Message{
		Caption: "report",
		Document: &tele.Document{
			File:     tele.File{FileID: "doc-1", FileSize: 2048},
			FileName: "report.pdf",
		},
	}

	entry, err := FromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, TypeDocument, entry.FileType)
	assert.Equal(t, "doc-1", entry.FileID)
	assert.Equal(t, "report.pdf", entry.FileName)
	assert.Equal(t, int64(2048), entry.FileSize)
	assert.Equal(t, "report", entry.Caption)
}

func TestFromMessagePhotoDefaultsName(t *testing.T) {
	msg := &tele.Message{
		Photo: &tele.Photo{File: tele.File{FileID: "ph-1", FileSize: 512}},
	}

	entry, err := FromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, TypePhoto, entry.FileType)
	assert.Equal(t, "photo.jpg", entry.FileName)
}

func TestFromMessageFallbackName(t *testing.T) {
	msg := &tele.Message{
		Video: &tele.Video{File: tele.File{FileID: "vid-1"}},
	}

	entry, err := FromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "video.bin", entry.FileName)
}

func TestFromMessageUnsupported(t *testing.T) {
	_, err := FromMessage(&tele.Message{Text: "hello"})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = FromMessage(nil)
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestSendableKinds(t *testing.T) {
	cases := []struct {
		ft   FileType
		want interface{}
	}{
		{TypeDocument, (*tele.Document)(nil)},
		{TypePhoto, (*tele.Photo)(nil)},
		{TypeVideo, (*tele.Video)(nil)},
		{TypeAudio, (*tele.Audio)(nil)},
	}
	for _, tc := range cases {
		entry := FileEntry{FileID: "f", FileType: tc.ft}
		got, err := entry.Sendable()
		require.NoError(t, err, string(tc.ft))
		assert.IsType(t, tc.want, got, string(tc.ft))
	}
}

func TestSendableRejectsUnknownType(t *testing.T) {
	entry := FileEntry{FileID: "f", FileType: FileType("sticker")}
	_, err := entry.Sendable()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMedia))
}

func TestTruncateCaption(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, TruncateCaption(short))

	long := strings.Repeat("я", 2000)
	got := TruncateCaption(long)
	assert.Equal(t, 1024, len([]rune(got)))
}
