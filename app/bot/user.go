package bot

import (
	"errors"
	"fmt"

	"github.com/m3rciful/filebot/app/model"
	"github.com/m3rciful/filebot/app/storage"
	tghelpers "github.com/m3rciful/filebot/core/telegram/helpers"
	"github.com/m3rciful/filebot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	payload := ""
	if msg := c.Message(); msg != nil {
		payload = msg.Payload
	}

	categoryID, ok := ParseStartPayload(payload)
	if !ok {
		if a.isAdmin(c.Sender().ID) {
			return tghelpers.SendText(c,
				"Welcome back. Use /new_category, /upload, /categories and /add_channel to manage content.")
		}
		return tghelpers.SendText(c,
			"Hi! Open a shared link to receive files.")
	}

	return a.serveCategory(c, categoryID)
}

// serveCategory is the deep-link entry point: admins get the management
// view, users pass through the subscription gate before delivery.
func (a *App) serveCategory(c tele.Context, categoryID string) error {
	if a.isAdmin(c.Sender().ID) {
		return a.sendCategoryView(c, categoryID)
	}

	ctx := tghelpers.BuildContext(c)
	missing, err := a.gate.Missing(ctx, c.Sender().ID)
	if err != nil {
		return tghelpers.SendText(c, "Something went wrong, try again later.")
	}
	if len(missing) > 0 {
		return a.sendJoinPrompt(c, categoryID, missing)
	}

	return a.deliverCategory(c, categoryID)
}

const joinPromptText = "To receive the files, join the required channels first:"

func joinPromptMarkup(categoryID string, missing []model.Channel) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(missing)+1)
	for _, ch := range missing {
		rows = append(rows, []keyboard.InlineBtn{{
			Text: fmt.Sprintf("Join %s", ch.Name),
			URL:  ch.InviteLink,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{
		Text:   "I joined, check again",
		Unique: cbCheck,
		Data:   categoryID,
	}})
	return keyboard.InlineButtonsRows(rows...)
}

func (a *App) sendJoinPrompt(c tele.Context, categoryID string, missing []model.Channel) error {
	return tghelpers.SendText(c, joinPromptText,
		&tele.SendOptions{ReplyMarkup: joinPromptMarkup(categoryID, missing)})
}

func (a *App) handleCheckCallback(c tele.Context) error {
	categoryID, ok := callbackCategoryID(c)
	if !ok {
		return tghelpers.RespondAlert(c, "This button has expired.")
	}

	ctx := tghelpers.BuildContext(c)
	missing, err := a.gate.Missing(ctx, c.Sender().ID)
	if err != nil {
		return tghelpers.RespondAlert(c, "Check failed, try again later.")
	}
	if len(missing) > 0 {
		// refresh the prompt so only still-unjoined channels remain;
		// the edit is a no-op when the subset has not changed
		_ = c.Edit(joinPromptText, &tele.SendOptions{ReplyMarkup: joinPromptMarkup(categoryID, missing)})
		return tghelpers.RespondAlert(c, "You have not joined all required channels yet.")
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "Access granted"})
	return a.deliverCategory(c, categoryID)
}

func (a *App) deliverCategory(c tele.Context, categoryID string) error {
	ctx := tghelpers.BuildContext(c)

	cat, err := a.store.CategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "This link points to a category that no longer exists.")
		}
		return tghelpers.SendText(c, "Something went wrong, try again later.")
	}

	files, err := a.store.FilesByCategory(ctx, cat.ID)
	if err != nil {
		return tghelpers.SendText(c, "Something went wrong, try again later.")
	}
	if len(files) == 0 {
		return tghelpers.SendText(c, fmt.Sprintf("Category %q has no files yet.", cat.Name))
	}

	if err := tghelpers.SendText(c, fmt.Sprintf("Sending %d file(s) from %q...", len(files), cat.Name)); err != nil {
		return err
	}

	res, err := a.engine.Deliver(ctx, c.Chat(), files)
	if err != nil {
		return err
	}
	if res.Failed > 0 {
		return tghelpers.SendText(c, fmt.Sprintf("Done, but %d file(s) could not be sent.", res.Failed))
	}
	return nil
}

func (a *App) handleStrayMedia(c tele.Context) error {
	if !a.isAdmin(c.Sender().ID) {
		return nil
	}
	return tghelpers.SendText(c, "Start an upload with /upload <category_id> before sending files.")
}
