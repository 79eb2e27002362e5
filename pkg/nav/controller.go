// Package nav routes public button presses to section renders.
package nav

import (
	"context"
	"fmt"
	"log/slog"

	"sectionbot/pkg/content"
	"sectionbot/pkg/render"
)

const (
	menuCallback     = "menu"
	backMenuCallback = "back_menu"

	notFoundText       = "⚠️ Раздел не найден. Возвращаемся в меню..."
	notFoundButtonText = "◀️ В меню"
)

// Controller resolves presses against the content tree and renders the
// result. A lookup miss is a normal, user-visible outcome, never an error
// surfaced to the caller.
type Controller struct {
	store     *content.Store
	renderer  *render.Renderer
	transport render.Transport
	log       *slog.Logger
}

// New constructs the navigation controller.
func New(store *content.Store, renderer *render.Renderer, transport render.Transport, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		store:     store,
		renderer:  renderer,
		transport: transport,
		log:       log.With("component", "nav"),
	}
}

// ShowRoot renders the root section fresh into a chat. Used for /start
// and /menu, which always send a new message.
func (c *Controller) ShowRoot(ctx context.Context, chatID int64) error {
	tree, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("show root: %w", err)
	}

	root := tree.Root()
	target := render.Target{ChatID: chatID}
	return c.renderer.Render(ctx, target, root.Text, render.BuildKeyboard(root.Buttons, ""), root.Media)
}

// HandlePress answers the press and renders the section it names.
func (c *Controller) HandlePress(ctx context.Context, press render.Press) error {
	if err := c.transport.AnswerPress(ctx, press.ID, ""); err != nil {
		c.log.Debug("press not answered", "error", err)
	}

	if press.Data == menuCallback || press.Data == backMenuCallback {
		return c.renderRoot(ctx, press.Target)
	}

	tree, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("handle press: %w", err)
	}

	section, ok := tree.Section(press.Data)
	if !ok {
		c.log.Info("section not found", "section_id", press.Data)
		return c.renderNotFound(ctx, press.Target)
	}

	return c.renderer.RenderSection(ctx, press.Target, section)
}

func (c *Controller) renderRoot(ctx context.Context, target render.Target) error {
	tree, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("render root: %w", err)
	}

	root := tree.Root()
	return c.renderer.Render(ctx, target, root.Text, render.BuildKeyboard(root.Buttons, ""), root.Media)
}

func (c *Controller) renderNotFound(ctx context.Context, target render.Target) error {
	keyboard := render.Keyboard{Rows: [][]render.KeyButton{
		render.CallbackRow(notFoundButtonText, menuCallback),
	}}
	return c.renderer.Render(ctx, target, notFoundText, keyboard, content.Media{})
}
