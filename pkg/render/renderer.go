// Package render turns a section (text, keyboard, optional media) into the
// right sequence of transport calls against an existing chat surface.
//
// In-place edits are preferred; when the current surface shape cannot be
// edited into the desired one, the renderer falls back to delete-and-resend
// or plain resend. Transport failures never propagate past the fallback
// chain.
package render

import (
	"context"
	"errors"
	"log/slog"

	"sectionbot/pkg/content"
)

// ErrNotModified is returned by Transport.EditText when the platform
// rejects an edit because the content did not change. The renderer treats
// it as success.
var ErrNotModified = errors.New("message is not modified")

// Surface identifies one outbound message instance that may be editable
// in place.
type Surface struct {
	ChatID    int64
	MessageID int
	HasMedia  bool
}

// Target describes where a render goes. When Surface is non-nil the render
// updates the pressed message in place; otherwise it sends fresh into the
// chat.
type Target struct {
	ChatID  int64
	Surface *Surface
}

// Press is one inbound button press: the opaque callback id to answer, the
// payload, and the surface the press originated from.
type Press struct {
	ID     string
	Data   string
	Target Target
}

// Transport is the messaging API consumed by the renderer and the
// controllers. Implementations classify platform edit failures so the
// decision table can distinguish "unchanged" from "not editable".
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string, keyboard Keyboard) error
	SendMedia(ctx context.Context, chatID int64, media content.Media, caption string, keyboard Keyboard) error
	EditText(ctx context.Context, surface Surface, text string, keyboard Keyboard) error
	EditMedia(ctx context.Context, surface Surface, media content.Media, caption string, keyboard Keyboard) error
	DeleteSurface(ctx context.Context, surface Surface) error
	AnswerPress(ctx context.Context, pressID string, alert string) error
}

// Renderer applies the surface-shape decision table.
type Renderer struct {
	transport Transport
	log       *slog.Logger
}

// New constructs a renderer over a transport.
func New(transport Transport, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}

	return &Renderer{transport: transport, log: log.With("component", "render")}
}

// Render presents text, keyboard and optional media at the target.
//
// Decision table (current surface -> desired shape):
//   - fresh target, any shape: send new message
//   - text-only -> text-only: edit in place; "not modified" is success,
//     any other edit failure falls back to a new message
//   - text-only -> media: send a new media message (a text message cannot
//     become a media message)
//   - media -> media: edit in place (swap file and caption); on failure
//     delete the old surface and send a new media message
//   - media -> text-only: delete the old surface, send a new text message
func (r *Renderer) Render(ctx context.Context, target Target, text string, keyboard Keyboard, media content.Media) error {
	if media.Present() {
		return r.renderMedia(ctx, target, text, keyboard, media)
	}

	return r.renderText(ctx, target, text, keyboard)
}

// RenderSection is a convenience wrapper resolving a section's keyboard.
func (r *Renderer) RenderSection(ctx context.Context, target Target, section content.Section) error {
	return r.Render(ctx, target, section.Text, BuildKeyboard(section.Buttons, section.Back), section.Media)
}

func (r *Renderer) renderMedia(ctx context.Context, target Target, caption string, keyboard Keyboard, media content.Media) error {
	surface := target.Surface

	if surface != nil && surface.HasMedia {
		err := r.transport.EditMedia(ctx, *surface, media, caption, keyboard)
		if err == nil {
			return nil
		}
		r.log.Warn("media edit failed, resending", "chat_id", surface.ChatID, "error", err)
		if delErr := r.transport.DeleteSurface(ctx, *surface); delErr != nil {
			r.log.Warn("stale surface not deleted", "chat_id", surface.ChatID, "error", delErr)
		}
	}

	// A text-only surface cannot be edited into a media message: send fresh.
	return r.transport.SendMedia(ctx, target.ChatID, media, caption, keyboard)
}

func (r *Renderer) renderText(ctx context.Context, target Target, text string, keyboard Keyboard) error {
	surface := target.Surface

	if surface != nil && surface.HasMedia {
		// A media message cannot be stripped back to text-only.
		if err := r.transport.DeleteSurface(ctx, *surface); err != nil {
			r.log.Warn("stale surface not deleted", "chat_id", surface.ChatID, "error", err)
		}
		return r.transport.SendText(ctx, target.ChatID, text, keyboard)
	}

	if surface != nil {
		err := r.transport.EditText(ctx, *surface, text, keyboard)
		if err == nil || errors.Is(err, ErrNotModified) {
			return nil
		}
		r.log.Warn("text edit failed, resending", "chat_id", surface.ChatID, "error", err)
	}

	return r.transport.SendText(ctx, target.ChatID, text, keyboard)
}
