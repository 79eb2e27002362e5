// Package telegram bridges Telegram updates into the navigation and admin
// controllers, and implements the outbound transport they render through.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"

	"sectionbot/pkg/admin"
	"sectionbot/pkg/config"
	"sectionbot/pkg/content"
	"sectionbot/pkg/nav"
	"sectionbot/pkg/render"
)

// Routes are the inbound destinations: the public navigation controller
// and the admin conversation controller.
type Routes struct {
	Nav   *nav.Controller
	Admin *admin.Controller
}

// Adapter owns the telego bot. It is both the update loop (Run) and the
// render.Transport the controllers send through.
type Adapter struct {
	bot *telego.Bot
	log *slog.Logger
}

// NewAdapter validates the token and constructs the bot client.
func NewAdapter(cfg config.TelegramConfig, log *slog.Logger) (*Adapter, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("telegram token is required")
	}

	if log == nil {
		log = slog.Default()
	}

	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	return &Adapter{
		bot: bot,
		log: log.With("component", "channel.telegram"),
	}, nil
}

// Run starts long polling and dispatches updates until the context ends.
// Each update is handled in its own goroutine: one stalled interaction
// never blocks the others.
func (a *Adapter) Run(ctx context.Context, routes Routes) error {
	if routes.Nav == nil || routes.Admin == nil {
		return errors.New("nav and admin routes are required")
	}

	updates, err := a.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	a.log.Info("Telegram channel started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("telegram updates channel closed")
			}

			go func(update telego.Update) {
				if err := a.handleUpdate(ctx, routes, update); err != nil {
					a.log.Error("Failed to handle update", "update_id", update.UpdateID, "error", err)
				}
			}(update)
		}
	}
}

func (a *Adapter) handleUpdate(ctx context.Context, routes Routes, update telego.Update) error {
	if update.Message != nil {
		return a.handleMessage(ctx, routes, update.Message)
	}
	if update.CallbackQuery != nil {
		return a.handlePress(ctx, routes, update.CallbackQuery)
	}
	return nil
}

func (a *Adapter) handleMessage(ctx context.Context, routes Routes, msg *telego.Message) error {
	chatID := msg.Chat.ID

	switch command(msg.Text) {
	case "/start", "/menu":
		a.log.Info("Rendering root", "chat_id", chatID)
		return routes.Nav.ShowRoot(ctx, chatID)
	case "/admin":
		return routes.Admin.Start(ctx, chatID)
	}

	if routes.Admin.Active(chatID) {
		return routes.Admin.HandleMessage(ctx, chatID, adminMessage(msg))
	}

	// Free text outside an admin conversation is ignored.
	return nil
}

func (a *Adapter) handlePress(ctx context.Context, routes Routes, cb *telego.CallbackQuery) error {
	if cb.Message == nil {
		// Inline-mode callbacks carry no message surface to render onto.
		return a.AnswerPress(ctx, cb.ID, "")
	}

	chat := cb.Message.GetChat()
	surface := render.Surface{
		ChatID:    chat.ID,
		MessageID: cb.Message.GetMessageID(),
	}
	if msg, ok := cb.Message.(*telego.Message); ok {
		surface.HasMedia = len(msg.Photo) > 0 || msg.Video != nil
	}

	press := render.Press{
		ID:   cb.ID,
		Data: cb.Data,
		Target: render.Target{
			ChatID:  chat.ID,
			Surface: &surface,
		},
	}

	if routes.Admin.Active(chat.ID) {
		return routes.Admin.HandlePress(ctx, press)
	}
	return routes.Nav.HandlePress(ctx, press)
}

// command extracts a leading bot command, stripping the @botname suffix of
// group-style invocations.
func command(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return ""
	}

	word, _, _ := strings.Cut(trimmed, " ")
	word, _, _ = strings.Cut(word, "@")
	return word
}

// adminMessage maps a Telegram message into the admin controller's input,
// picking the largest resolution of a photo.
func adminMessage(msg *telego.Message) admin.Message {
	out := admin.Message{Text: msg.Text}

	if len(msg.Photo) > 0 {
		largest := msg.Photo[0]
		for _, size := range msg.Photo[1:] {
			if size.Width > largest.Width {
				largest = size
			}
		}
		out.Media = content.Media{Type: content.MediaPhoto, FileID: largest.FileID}
	} else if msg.Video != nil {
		out.Media = content.Media{Type: content.MediaVideo, FileID: msg.Video.FileID}
	}

	if out.Text == "" && msg.Caption != "" {
		out.Text = msg.Caption
	}

	return out
}

// inlineMarkup converts a resolved keyboard; an empty keyboard yields nil
// so the message carries no reply markup at all.
func inlineMarkup(keyboard render.Keyboard) *telego.InlineKeyboardMarkup {
	if keyboard.Empty() {
		return nil
	}

	rows := make([][]telego.InlineKeyboardButton, 0, len(keyboard.Rows))
	for _, row := range keyboard.Rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			button := telego.InlineKeyboardButton{Text: b.Text}
			if b.URL != "" {
				button.URL = b.URL
			} else {
				button.CallbackData = b.Callback
			}
			buttons = append(buttons, button)
		}
		rows = append(rows, buttons)
	}

	return &telego.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// classifyEditError maps the platform's "message is not modified" rejection
// onto the renderer's sentinel so it can treat the edit as a no-op.
func classifyEditError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "message is not modified") {
		return render.ErrNotModified
	}
	return err
}
