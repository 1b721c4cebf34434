package membership

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/m3rciful/filebot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// MemberAPI is the slice of the Telegram API needed for membership checks.
// *tele.Bot satisfies it.
type MemberAPI interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// recipient adapts a stored channel identifier ("@name" or "-100...") to telebot.
type recipient string

func (r recipient) Recipient() string { return string(r) }

// Options tunes retry behaviour of the checker.
type Options struct {
	// Attempts is the total number of API calls per check.
	Attempts uint64
	// RetryDelay is the constant pause between attempts.
	RetryDelay time.Duration
}

// Checker verifies channel membership against the Telegram API.
// Lookups that keep failing are treated as "not a member": access
// stays closed when the API cannot be reached.
type Checker struct {
	api  MemberAPI
	opts Options
}

// NewChecker builds a checker with sane defaults for zeroed options.
func NewChecker(api MemberAPI, opts Options) *Checker {
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	return &Checker{api: api, opts: opts}
}

// subscribed member roles
func roleGrantsAccess(role tele.MemberStatus) bool {
	switch role {
	case tele.Creator, tele.Administrator, tele.Member:
		return true
	}
	return false
}

var errNotJoined = errors.New("membership: not joined")

// IsMember reports whether the user is subscribed to the channel.
// A non-joined status counts as a failed attempt just like a transport
// error, so a membership that flips during the retry window is seen.
func (c *Checker) IsMember(ctx context.Context, channelID string, userID int64) bool {
	op := func() error {
		m, err := c.api.ChatMemberOf(recipient(channelID), &tele.User{ID: userID})
		if err != nil {
			return err
		}
		if !roleGrantsAccess(m.Role) {
			return errNotJoined
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.opts.RetryDelay), c.opts.Attempts-1),
		ctx,
	)

	attempt := 0
	notify := func(err error, _ time.Duration) {
		attempt++
		logger.Debug(ctx, "membership", "check.retry",
			slog.String("channel_id", channelID),
			slog.Int64("user_id", userID),
			slog.Int("attempt", attempt),
			slog.String("err", err.Error()),
		)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		if errors.Is(err, errNotJoined) {
			logger.Debug(ctx, "membership", "check.not_joined",
				slog.String("channel_id", channelID),
				slog.Int64("user_id", userID),
				slog.Uint64("attempts", c.opts.Attempts),
			)
		} else {
			logger.Warn(ctx, "membership", "check.fail_closed",
				slog.String("channel_id", channelID),
				slog.Int64("user_id", userID),
				slog.Uint64("attempts", c.opts.Attempts),
				slog.String("err", err.Error()),
			)
		}
		return false
	}

	return true
}
