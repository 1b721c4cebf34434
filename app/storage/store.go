package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/filebot/app/model"
	"github.com/m3rciful/filebot/core/logger"
	"log/slog"
)

// Store provides persistence for categories, files, and channels.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an established database connection.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// NewCategoryID returns a short random category identifier.
func NewCategoryID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateCategory inserts a new category with a generated short id.
// Returns ErrAlreadyExists if a category with the same name exists.
func (s *Store) CreateCategory(ctx context.Context, name string, createdBy int64) (model.Category, error) {
	cat := model.Category{
		ID:        NewCategoryID(),
		Name:      name,
		CreatedBy: createdBy,
	}

	const q = `
		INSERT INTO categories (id, name, created_by)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	if err := s.db.GetContext(ctx, &cat.CreatedAt, q, cat.ID, cat.Name, cat.CreatedBy); err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", mapError(err))
	}

	logger.Info(ctx, "db", "category.create",
		slog.String("category_id", cat.ID),
		slog.String("category", cat.Name),
	)
	return cat, nil
}

// CategoryByID fetches one category by its short id.
func (s *Store) CategoryByID(ctx context.Context, id string) (model.Category, error) {
	var cat model.Category
	const q = `SELECT id, name, created_by, created_at FROM categories WHERE id = $1`
	if err := s.db.GetContext(ctx, &cat, q, id); err != nil {
		return model.Category{}, fmt.Errorf("category %s: %w", id, mapError(err))
	}
	return cat, nil
}

// CategoryByName fetches one category by its unique name.
func (s *Store) CategoryByName(ctx context.Context, name string) (model.Category, error) {
	var cat model.Category
	const q = `SELECT id, name, created_by, created_at FROM categories WHERE name = $1`
	if err := s.db.GetContext(ctx, &cat, q, name); err != nil {
		return model.Category{}, fmt.Errorf("category %q: %w", name, mapError(err))
	}
	return cat, nil
}

// ListCategories returns all categories with their file counts, newest first.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	const q = `
		SELECT c.id, c.name, c.created_by, c.created_at,
		       COUNT(f.id) AS file_count
		FROM categories c
		LEFT JOIN files f ON f.category_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`
	if err := s.db.SelectContext(ctx, &cats, q); err != nil {
		return nil, fmt.Errorf("list categories: %w", mapError(err))
	}
	return cats, nil
}

// DeleteCategory removes a category and, via cascade, its files.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, mapError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete category %s: %w", id, ErrNotFound)
	}
	logger.Info(ctx, "db", "category.delete",
		slog.String("category_id", id),
	)
	return nil
}

// AddFiles stores uploaded entries under a category. Entries whose file_id
// is already stored are skipped. Each insert is its own statement; a hard
// failure mid-batch keeps the rows already written and returns the count
// inserted up to that point alongside the error.
func (s *Store) AddFiles(ctx context.Context, categoryID string, entries []model.FileEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	start := time.Now()

	const q = `
		INSERT INTO files (category_id, file_id, file_name, file_size, file_type, caption)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (file_id) DO NOTHING`

	inserted := 0
	for _, e := range entries {
		res, err := s.db.ExecContext(ctx, q, categoryID, e.FileID, e.FileName, e.FileSize, e.FileType, e.Caption)
		if err != nil {
			return inserted, fmt.Errorf("add file %s: %w", e.FileID, mapError(err))
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	logger.Info(ctx, "db", "files.add",
		slog.String("category_id", categoryID),
		slog.Int("files", len(entries)),
		slog.Int("inserted", inserted),
		slog.Int("skipped", len(entries)-inserted),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return inserted, nil
}

// FilesByCategory returns stored files in upload order.
func (s *Store) FilesByCategory(ctx context.Context, categoryID string) ([]model.FileEntry, error) {
	var files []model.FileEntry
	const q = `
		SELECT id, category_id, file_id, file_name, file_size, file_type, caption, upload_date
		FROM files
		WHERE category_id = $1
		ORDER BY id`
	if err := s.db.SelectContext(ctx, &files, q, categoryID); err != nil {
		return nil, fmt.Errorf("files for %s: %w", categoryID, mapError(err))
	}
	return files, nil
}

// AddChannel registers a required-subscription channel.
func (s *Store) AddChannel(ctx context.Context, ch model.Channel) (model.Channel, error) {
	const q = `
		INSERT INTO channels (channel_id, channel_name, invite_link)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	row := s.db.QueryRowxContext(ctx, q, ch.ChannelID, ch.Name, ch.InviteLink)
	if err := row.Scan(&ch.ID, &ch.CreatedAt); err != nil {
		return model.Channel{}, fmt.Errorf("add channel %s: %w", ch.ChannelID, mapError(err))
	}

	logger.Info(ctx, "db", "channel.add",
		slog.String("channel_id", ch.ChannelID),
		slog.String("channel", ch.Name),
	)
	return ch, nil
}

// ListChannels returns all required channels, oldest first.
func (s *Store) ListChannels(ctx context.Context) ([]model.Channel, error) {
	var chs []model.Channel
	const q = `
		SELECT id, channel_id, channel_name, invite_link, created_at
		FROM channels
		ORDER BY id`
	if err := s.db.SelectContext(ctx, &chs, q); err != nil {
		return nil, fmt.Errorf("list channels: %w", mapError(err))
	}
	return chs, nil
}

// DeleteChannel removes a channel by its Telegram id.
func (s *Store) DeleteChannel(ctx context.Context, channelID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM channels WHERE channel_id = $1`, channelID)
	if err != nil {
		return fmt.Errorf("delete channel %s: %w", channelID, mapError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete channel %s: %w", channelID, ErrNotFound)
	}
	logger.Info(ctx, "db", "channel.delete",
		slog.String("channel_id", channelID),
	)
	return nil
}
