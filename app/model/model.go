package model

import "time"

// Category groups uploaded files under a shareable identifier.
type Category struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	// FileCount is populated by listing queries only.
	FileCount int `db:"file_count"`
}

// FileEntry is a single Telegram file stored in a category.
// FileID is the Telegram file identifier, reusable across sends.
type FileEntry struct {
	ID         int64     `db:"id"`
	CategoryID string    `db:"category_id"`
	FileID     string    `db:"file_id"`
	FileName   string    `db:"file_name"`
	FileSize   int64     `db:"file_size"`
	FileType   FileType  `db:"file_type"`
	Caption    string    `db:"caption"`
	UploadDate time.Time `db:"upload_date"`
}

// Channel is a required-subscription channel users must join before
// receiving files.
type Channel struct {
	ID         int64     `db:"id"`
	ChannelID  string    `db:"channel_id"`
	Name       string    `db:"channel_name"`
	InviteLink string    `db:"invite_link"`
	CreatedAt  time.Time `db:"created_at"`
}
