package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/filebot/app/model"
	"github.com/m3rciful/filebot/app/session"
	"github.com/m3rciful/filebot/app/storage"
	tghelpers "github.com/m3rciful/filebot/core/telegram/helpers"
	"github.com/m3rciful/filebot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// uploadFlow adapts the upload tracker to the message router.
type uploadFlow struct{ app *App }

func (a *App) uploadFlow() router.Flow { return uploadFlow{app: a} }

func (f uploadFlow) InProgress(userID int64) bool {
	return f.app.uploads.InProgress(userID)
}

func (f uploadFlow) Handle(c tele.Context) error {
	entry, err := model.FromMessage(c.Message())
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedMedia) {
			return tghelpers.SendText(c,
				"Send documents, photos, videos or audio. Finish with /finish_upload, abort with /cancel.")
		}
		return err
	}

	n, ok := f.app.uploads.Add(c.Sender().ID, entry)
	if !ok {
		return tghelpers.SendText(c, "No upload in progress. Start one with /upload <category_id>.")
	}
	return tghelpers.SendText(c, fmt.Sprintf("Collected %d file(s). /finish_upload to store them.", n))
}

// wizardFlow adapts the channel registration dialog to the message router.
type wizardFlow struct{ app *App }

func (a *App) wizardFlow() router.Flow { return wizardFlow{app: a} }

func (f wizardFlow) InProgress(userID int64) bool {
	return f.app.wizard.InProgress(userID)
}

func validChannelID(s string) bool {
	return strings.HasPrefix(s, "@") || strings.HasPrefix(s, "-")
}

func (f wizardFlow) Handle(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return tghelpers.SendText(c, "Reply with text, or abort with /cancel.")
	}

	userID := c.Sender().ID
	if step, ok := f.app.wizard.Step(userID); ok && step == session.StepChannelID && !validChannelID(text) {
		return tghelpers.SendText(c, "Channel id must look like @username or -100... Try again.")
	}

	ch, done, ok := f.app.wizard.Advance(userID, text)
	if !ok {
		return nil
	}

	if !done {
		switch {
		case ch.Name == "":
			return tghelpers.SendText(c, "Now send a display name for the channel.")
		default:
			return tghelpers.SendText(c, "Finally, send the invite link (https://t.me/...).")
		}
	}

	ctx := tghelpers.BuildContext(c)
	saved, err := f.app.store.AddChannel(ctx, ch)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return tghelpers.SendText(c, fmt.Sprintf("Channel %s is already required.", ch.ChannelID))
		}
		return tghelpers.SendText(c, "Could not save the channel, try again with /add_channel.")
	}

	return tghelpers.SendText(c, fmt.Sprintf(
		"Channel %q (%s) is now required for all downloads.", saved.Name, saved.ChannelID))
}
