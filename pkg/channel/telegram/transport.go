package telegram

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"sectionbot/pkg/content"
	"sectionbot/pkg/render"
)

// SendText posts a fresh HTML-formatted message.
func (a *Adapter) SendText(ctx context.Context, chatID int64, text string, keyboard render.Keyboard) error {
	params := tu.Message(tu.ID(chatID), text).
		WithParseMode(telego.ModeHTML)
	if markup := inlineMarkup(keyboard); markup != nil {
		params = params.WithReplyMarkup(markup)
	}

	if _, err := a.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendMedia posts a fresh photo or video with the text as its caption.
func (a *Adapter) SendMedia(ctx context.Context, chatID int64, media content.Media, caption string, keyboard render.Keyboard) error {
	markup := inlineMarkup(keyboard)

	switch media.Type {
	case content.MediaVideo:
		params := tu.Video(tu.ID(chatID), tu.FileFromID(media.FileID)).
			WithCaption(caption).
			WithParseMode(telego.ModeHTML)
		if markup != nil {
			params = params.WithReplyMarkup(markup)
		}
		if _, err := a.bot.SendVideo(ctx, params); err != nil {
			return fmt.Errorf("send video: %w", err)
		}
	default:
		params := tu.Photo(tu.ID(chatID), tu.FileFromID(media.FileID)).
			WithCaption(caption).
			WithParseMode(telego.ModeHTML)
		if markup != nil {
			params = params.WithReplyMarkup(markup)
		}
		if _, err := a.bot.SendPhoto(ctx, params); err != nil {
			return fmt.Errorf("send photo: %w", err)
		}
	}
	return nil
}

// EditText rewrites the text and keyboard of an existing message in place.
func (a *Adapter) EditText(ctx context.Context, surface render.Surface, text string, keyboard render.Keyboard) error {
	params := &telego.EditMessageTextParams{
		ChatID:      tu.ID(surface.ChatID),
		MessageID:   surface.MessageID,
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: inlineMarkup(keyboard),
	}

	if _, err := a.bot.EditMessageText(ctx, params); err != nil {
		if classified := classifyEditError(err); classified == render.ErrNotModified {
			return render.ErrNotModified
		}
		return fmt.Errorf("edit message text: %w", err)
	}
	return nil
}

// EditMedia swaps the attachment and caption of an existing media message.
func (a *Adapter) EditMedia(ctx context.Context, surface render.Surface, media content.Media, caption string, keyboard render.Keyboard) error {
	var input telego.InputMedia
	switch media.Type {
	case content.MediaVideo:
		input = tu.MediaVideo(tu.FileFromID(media.FileID)).
			WithCaption(caption).
			WithParseMode(telego.ModeHTML)
	default:
		input = tu.MediaPhoto(tu.FileFromID(media.FileID)).
			WithCaption(caption).
			WithParseMode(telego.ModeHTML)
	}

	params := &telego.EditMessageMediaParams{
		ChatID:      tu.ID(surface.ChatID),
		MessageID:   surface.MessageID,
		Media:       input,
		ReplyMarkup: inlineMarkup(keyboard),
	}

	if _, err := a.bot.EditMessageMedia(ctx, params); err != nil {
		if classified := classifyEditError(err); classified == render.ErrNotModified {
			return render.ErrNotModified
		}
		return fmt.Errorf("edit message media: %w", err)
	}
	return nil
}

// DeleteSurface removes a previously rendered message.
func (a *Adapter) DeleteSurface(ctx context.Context, surface render.Surface) error {
	err := a.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(surface.ChatID),
		MessageID: surface.MessageID,
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// AnswerPress acknowledges a callback query. A non-empty text becomes a
// popup alert; an empty one just stops the client spinner.
func (a *Adapter) AnswerPress(ctx context.Context, pressID string, alert string) error {
	params := &telego.AnswerCallbackQueryParams{
		CallbackQueryID: pressID,
		Text:            alert,
		ShowAlert:       alert != "",
	}
	if err := a.bot.AnswerCallbackQuery(ctx, params); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}
	return nil
}
