package delivery

import (
	"context"
	"time"

	"github.com/m3rciful/filebot/app/model"
	"github.com/m3rciful/filebot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Sender is the outbound slice of the Telegram API. *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Options tunes pacing of a delivery run.
type Options struct {
	// Pace is the pause between consecutive sends, to stay under
	// Telegram's per-chat rate limits.
	Pace time.Duration
	// Sleep is overridable for tests; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Result summarises a delivery run.
type Result struct {
	Sent   int
	Failed int
}

// Engine sends stored files to a user one by one, preserving upload
// order. A failed file is skipped rather than aborting the run.
type Engine struct {
	sender Sender
	opts   Options
}

// NewEngine builds an engine with defaults for zeroed options.
func NewEngine(sender Sender, opts Options) *Engine {
	if opts.Pace <= 0 {
		opts.Pace = 300 * time.Millisecond
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Engine{sender: sender, opts: opts}
}

// Deliver sends every file to the recipient in order. It returns early
// with the context error if the run is cancelled between sends.
func (e *Engine) Deliver(ctx context.Context, to tele.Recipient, files []model.FileEntry) (Result, error) {
	var res Result
	start := time.Now()

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		pause := e.opts.Pace

		media, err := f.Sendable()
		if err == nil {
			_, err = e.sender.Send(to, media)
		}
		if err != nil {
			res.Failed++
			// back off harder after a failure before the next file
			pause *= 2
			logger.Warn(ctx, "delivery", "file.skip",
				slog.String("category_id", f.CategoryID),
				slog.String("file_id", f.FileID),
				slog.String("file_type", string(f.FileType)),
				slog.String("err", err.Error()),
			)
		} else {
			res.Sent++
		}

		if i < len(files)-1 {
			e.opts.Sleep(pause)
		}
	}

	logger.Info(ctx, "delivery", "complete",
		slog.Int("files", len(files)),
		slog.Int("count", res.Sent),
		slog.Int("skipped", res.Failed),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return res, nil
}
