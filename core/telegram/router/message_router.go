package router

import (
	"time"

	tg "github.com/m3rciful/filebot/core/telegram"
	"github.com/m3rciful/filebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Flow is a per-user conversational flow that may claim incoming updates,
// such as an upload session or a channel registration wizard.
type Flow interface {
	InProgress(userID int64) bool
	Handle(c tele.Context) error
}

// MessageOptions controls fallback behaviour for text and media updates.
type MessageOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownMedia tele.HandlerFunc
}

// MessageRoutes builds handlers for text and media routing. Flows are
// consulted in order; the first one in progress for the sender wins.
func MessageRoutes(flows []Flow, reg *tg.Registry, opts MessageOptions) []tg.Route {
	activeFlow := func(c tele.Context) Flow {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		for _, f := range flows {
			if f != nil && f.InProgress(sender.ID) {
				return f
			}
		}
		return nil
	}

	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if flow := activeFlow(c); flow != nil {
			return handleWithSummary(c, "flow", start, func() error {
				return flow.Handle(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	mediaHandler := func(c tele.Context) error {
		start := time.Now()
		if flow := activeFlow(c); flow != nil {
			return handleWithSummary(c, "flow_media", start, func() error {
				return flow.Handle(c)
			})
		}
		if opts.UnknownMedia != nil {
			return handleWithSummary(c, "unexpected_media", start, func() error {
				return opts.UnknownMedia(c)
			})
		}
		logHandlerSummary(c, "unexpected_media", start, "skip", nil)
		return nil
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}

	routes := []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(textHandler)},
	}
	for _, ep := range []string{tele.OnDocument, tele.OnPhoto, tele.OnVideo, tele.OnAudio} {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: wrap(mediaHandler)})
	}
	return routes
}
