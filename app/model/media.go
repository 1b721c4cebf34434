package model

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"
)

// FileType is the supported media kind of a stored file.
type FileType string

const (
	TypeDocument FileType = "document"
	TypePhoto    FileType = "photo"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
)

// ErrUnsupportedMedia is returned when a message carries no storable media.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// Valid reports whether t is one of the supported kinds.
func (t FileType) Valid() bool {
	switch t {
	case TypeDocument, TypePhoto, TypeVideo, TypeAudio:
		return true
	}
	return false
}

// FromMessage extracts a FileEntry from an incoming message. The entry has
// no category assigned yet. Returns ErrUnsupportedMedia for messages that
// carry none of the supported media kinds.
func FromMessage(m *tele.Message) (FileEntry, error) {
	if m == nil {
		return FileEntry{}, ErrUnsupportedMedia
	}

	entry := FileEntry{Caption: m.Caption}

	switch {
	case m.Document != nil:
		entry.FileID = m.Document.FileID
		entry.FileName = m.Document.FileName
		entry.FileSize = m.Document.FileSize
		entry.FileType = TypeDocument
	case m.Photo != nil:
		entry.FileID = m.Photo.FileID
		entry.FileName = "photo.jpg"
		entry.FileSize = m.Photo.FileSize
		entry.FileType = TypePhoto
	case m.Video != nil:
		entry.FileID = m.Video.FileID
		entry.FileName = m.Video.FileName
		entry.FileSize = m.Video.FileSize
		entry.FileType = TypeVideo
	case m.Audio != nil:
		entry.FileID = m.Audio.FileID
		entry.FileName = m.Audio.FileName
		entry.FileSize = m.Audio.FileSize
		entry.FileType = TypeAudio
	default:
		return FileEntry{}, ErrUnsupportedMedia
	}

	if entry.FileName == "" {
		entry.FileName = fmt.Sprintf("%s.bin", entry.FileType)
	}
	return entry, nil
}

// Sendable converts a stored entry into a telebot media value ready for
// sending. The caption is truncated to Telegram's limit.
func (e FileEntry) Sendable() (interface{}, error) {
	caption := TruncateCaption(e.Caption)
	file := tele.File{FileID: e.FileID}

	switch e.FileType {
	case TypeDocument:
		return &tele.Document{File: file, Caption: caption, FileName: e.FileName}, nil
	case TypePhoto:
		return &tele.Photo{File: file, Caption: caption}, nil
	case TypeVideo:
		return &tele.Video{File: file, Caption: caption, FileName: e.FileName}, nil
	case TypeAudio:
		return &tele.Audio{File: file, Caption: caption, FileName: e.FileName}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMedia, e.FileType)
}

const captionLimit = 1024

// TruncateCaption cuts captions to Telegram's per-message limit.
func TruncateCaption(s string) string {
	runes := []rune(s)
	if len(runes) <= captionLimit {
		return s
	}
	return string(runes[:captionLimit])
}
