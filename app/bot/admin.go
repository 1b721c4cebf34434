package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/filebot/app/storage"
	"github.com/m3rciful/filebot/core/telegram/callbacks"
	"github.com/m3rciful/filebot/core/telegram/format"
	tghelpers "github.com/m3rciful/filebot/core/telegram/helpers"
	"github.com/m3rciful/filebot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func callbackCategoryID(c tele.Context) (string, bool) {
	return callbacks.PayloadID(c)
}

func commandPayload(c tele.Context) string {
	if msg := c.Message(); msg != nil {
		return strings.TrimSpace(msg.Payload)
	}
	return ""
}

func (a *App) handleNewCategory(c tele.Context) error {
	name := commandPayload(c)
	if name == "" {
		return tghelpers.SendText(c, "Usage: /new_category <name>")
	}

	ctx := tghelpers.BuildContext(c)
	cat, err := a.store.CreateCategory(ctx, name, c.Sender().ID)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return tghelpers.SendText(c, fmt.Sprintf("Category %q already exists.", name))
		}
		return tghelpers.SendText(c, "Could not create the category, try again.")
	}

	return tghelpers.SendMD(c, fmt.Sprintf(
		"Category *%s* created.\nID: `%s`\nShare link: %s\nAdd files with /upload %s",
		format.EscapeV1(cat.Name), cat.ID, BuildDeepLink(a.username, cat.ID), cat.ID,
	))
}

func (a *App) handleCategories(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	cats, err := a.store.ListCategories(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Could not list categories, try again.")
	}
	if len(cats) == 0 {
		return tghelpers.SendText(c, "No categories yet. Create one with /new_category <name>.")
	}

	rows := make([][]keyboard.InlineBtn, 0, len(cats))
	for _, cat := range cats {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: fmt.Sprintf("%s (%d)", cat.Name, cat.FileCount), Unique: cbView, Data: cat.ID},
			{Text: "➕", Unique: cbAddFiles, Data: cat.ID},
			{Text: "🗑", Unique: cbDelCat, Data: cat.ID},
		})
	}

	return tghelpers.SendText(c,
		fmt.Sprintf("Categories (%d):", len(cats)),
		&tele.SendOptions{ReplyMarkup: keyboard.InlineButtonsRows(rows...)},
	)
}

func (a *App) sendCategoryView(c tele.Context, categoryID string) error {
	ctx := tghelpers.BuildContext(c)

	cat, err := a.store.CategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "This category no longer exists.")
		}
		return tghelpers.SendText(c, "Could not load the category, try again.")
	}

	files, err := a.store.FilesByCategory(ctx, cat.ID)
	if err != nil {
		return tghelpers.SendText(c, "Could not load the category, try again.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Category *%s*\nID: `%s`\nFiles: %d\nLink: %s\n",
		format.EscapeV1(cat.Name), cat.ID, len(files), BuildDeepLink(a.username, cat.ID))

	const maxListed = 10
	for i, f := range files {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more\n", len(files)-maxListed)
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, format.EscapeV1(f.FileName), f.FileType)
	}

	return tghelpers.SendMD(c, b.String())
}

func (a *App) handleViewCallback(c tele.Context) error {
	categoryID, ok := callbackCategoryID(c)
	if !ok {
		return tghelpers.RespondAlert(c, "This button has expired.")
	}
	return a.sendCategoryView(c, categoryID)
}

func (a *App) handleAddFilesCallback(c tele.Context) error {
	categoryID, ok := callbackCategoryID(c)
	if !ok {
		return tghelpers.RespondAlert(c, "This button has expired.")
	}
	return a.beginUpload(c, categoryID)
}

func (a *App) handleDeleteCategoryCallback(c tele.Context) error {
	categoryID, ok := callbackCategoryID(c)
	if !ok {
		return tghelpers.RespondAlert(c, "This button has expired.")
	}

	ctx := tghelpers.BuildContext(c)
	if err := a.store.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "This category was already deleted.")
		}
		return tghelpers.SendText(c, "Could not delete the category, try again.")
	}
	return tghelpers.SendText(c, "Category and its files deleted.")
}

func (a *App) handleUpload(c tele.Context) error {
	categoryID := commandPayload(c)
	if categoryID == "" {
		return tghelpers.SendText(c, "Usage: /upload <category_id>. See /categories for ids.")
	}
	return a.beginUpload(c, categoryID)
}

func (a *App) beginUpload(c tele.Context, categoryID string) error {
	ctx := tghelpers.BuildContext(c)

	cat, err := a.store.CategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "Unknown category id. See /categories.")
		}
		return tghelpers.SendText(c, "Could not start the upload, try again.")
	}

	a.uploads.Start(c.Sender().ID, cat.ID)
	return tghelpers.SendText(c, fmt.Sprintf(
		"Uploading into %q. Send documents, photos, videos or audio.\nFinish with /finish_upload, abort with /cancel.",
		cat.Name,
	))
}

func (a *App) handleFinishUpload(c tele.Context) error {
	up, ok := a.uploads.Finish(c.Sender().ID)
	if !ok {
		return tghelpers.SendText(c, "No upload in progress. Start one with /upload <category_id>.")
	}
	if len(up.Entries) == 0 {
		return tghelpers.SendText(c, "Upload closed, nothing was collected.")
	}

	ctx := tghelpers.BuildContext(c)
	inserted, err := a.store.AddFiles(ctx, up.CategoryID, up.Entries)
	if err != nil {
		return tghelpers.SendText(c, "Could not store the files, try again.")
	}

	skipped := len(up.Entries) - inserted
	reply := fmt.Sprintf("Stored %d file(s).", inserted)
	if skipped > 0 {
		reply += fmt.Sprintf(" Skipped %d duplicate(s).", skipped)
	}
	reply += "\nShare link: " + BuildDeepLink(a.username, up.CategoryID)
	return tghelpers.SendText(c, reply)
}

func (a *App) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	switch {
	case a.uploads.Cancel(userID):
		return tghelpers.SendText(c, "Upload cancelled.")
	case a.wizard.Cancel(userID):
		return tghelpers.SendText(c, "Channel setup cancelled.")
	}
	return tghelpers.SendText(c, "Nothing to cancel.")
}

func (a *App) handleAddChannel(c tele.Context) error {
	a.wizard.Start(c.Sender().ID)
	return tghelpers.SendText(c,
		"Send the channel id (@username or -100... numeric id).\nThe bot must be an admin there to check memberships.")
}

func (a *App) handleChannels(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	chs, err := a.store.ListChannels(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Could not list channels, try again.")
	}
	if len(chs) == 0 {
		return tghelpers.SendText(c, "No required channels. Add one with /add_channel.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Required channels (%d):\n", len(chs))
	for i, ch := range chs {
		fmt.Fprintf(&b, "%d. %s — %s\n   %s\n", i+1, ch.Name, ch.ChannelID, ch.InviteLink)
	}
	b.WriteString("\nRemove one with /remove_channel <channel_id>.")
	return tghelpers.SendText(c, b.String())
}

func (a *App) handleRemoveChannel(c tele.Context) error {
	channelID := commandPayload(c)
	if channelID == "" {
		return tghelpers.SendText(c, "Usage: /remove_channel <channel_id>. See /channels.")
	}

	ctx := tghelpers.BuildContext(c)
	if err := a.store.DeleteChannel(ctx, channelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "No such channel. See /channels.")
		}
		return tghelpers.SendText(c, "Could not remove the channel, try again.")
	}
	return tghelpers.SendText(c, fmt.Sprintf("Channel %s removed.", channelID))
}
