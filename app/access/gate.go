package access

import (
	"context"
	"fmt"

	"github.com/m3rciful/filebot/app/model"
	"github.com/m3rciful/filebot/core/logger"
	"log/slog"
)

// ChannelSource lists the channels users must be subscribed to.
type ChannelSource interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
}

// MembershipChecker resolves a single channel membership.
type MembershipChecker interface {
	IsMember(ctx context.Context, channelID string, userID int64) bool
}

// Gate decides whether a user may receive files.
type Gate struct {
	channels ChannelSource
	checker  MembershipChecker
}

// NewGate wires a gate from its dependencies.
func NewGate(channels ChannelSource, checker MembershipChecker) *Gate {
	return &Gate{channels: channels, checker: checker}
}

// Missing returns the required channels the user has not joined. An empty
// result means access is granted. With no channels configured the gate
// is open for everyone.
func (g *Gate) Missing(ctx context.Context, userID int64) ([]model.Channel, error) {
	channels, err := g.channels.ListChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list required channels: %w", err)
	}

	var missing []model.Channel
	for _, ch := range channels {
		if !g.checker.IsMember(ctx, ch.ChannelID, userID) {
			missing = append(missing, ch)
		}
	}

	if len(missing) > 0 {
		logger.Info(ctx, "access", "gate.denied",
			slog.Int64("user_id", userID),
			slog.Int("missing", len(missing)),
			slog.Int("count", len(channels)),
		)
	}
	return missing, nil
}
