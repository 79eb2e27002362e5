package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sectionbot/pkg/content"
	"sectionbot/pkg/render"
)

const (
	cancelCommand = "/cancel"
	clearCommand  = "/clear"
)

// Message is one inbound admin reply: free text and/or attached media.
type Message struct {
	Text  string
	Media content.Media
}

// Controller drives the admin conversation FSM. One instance serves all
// conversations; per-conversation state lives in the session manager.
type Controller struct {
	store     *content.Store
	secrets   *Secrets
	renderer  *render.Renderer
	transport render.Transport
	sessions  *Manager
	log       *slog.Logger
}

// New constructs the admin controller.
func New(store *content.Store, secrets *Secrets, renderer *render.Renderer, transport render.Transport, log *slog.Logger) (*Controller, error) {
	if store == nil || secrets == nil || renderer == nil || transport == nil {
		return nil, errors.New("store, secrets, renderer and transport are required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		store:     store,
		secrets:   secrets,
		renderer:  renderer,
		transport: transport,
		sessions:  NewManager(),
		log:       log.With("component", "admin"),
	}, nil
}

// Active reports whether the chat has an admin conversation in progress.
func (c *Controller) Active(chatID int64) bool {
	return c.sessions.Active(chatID)
}

// Start opens a fresh conversation in StateAuth and prompts for the
// password. An existing session for the chat is replaced.
func (c *Controller) Start(ctx context.Context, chatID int64) error {
	c.sessions.Begin(chatID)
	c.log.Info("admin conversation started", "chat_id", chatID)
	return c.reply(ctx, chatID, "🔐 <b>Админ-панель</b>\n\nВведите пароль:")
}

// Cancel ends the chat's conversation from any state and confirms.
func (c *Controller) Cancel(ctx context.Context, chatID int64) error {
	c.sessions.End(chatID)
	c.log.Info("admin conversation cancelled", "chat_id", chatID)
	return c.reply(ctx, chatID, "❌ Действие отменено.")
}

// HandleMessage feeds one text or media reply into the FSM.
func (c *Controller) HandleMessage(ctx context.Context, chatID int64, msg Message) error {
	session, ok := c.sessions.Get(chatID)
	if !ok {
		return nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	text := strings.TrimSpace(msg.Text)

	switch session.State {
	case StateAuth:
		return c.authStep(ctx, chatID, session, text)
	case StateText:
		return c.textStep(ctx, chatID, session, msg.Text)
	case StateMedia:
		return c.mediaStep(ctx, chatID, session, text, msg.Media)
	case StateAddSection:
		return c.addSectionStep(ctx, chatID, session, text)
	default:
		// The press-driven states consume no text; /cancel is the one
		// fallback and it ends the whole conversation.
		if text == cancelCommand {
			return c.Cancel(ctx, chatID)
		}
		return nil
	}
}

// HandlePress feeds one button press into the FSM.
func (c *Controller) HandlePress(ctx context.Context, press render.Press) error {
	chatID := press.Target.ChatID
	session, ok := c.sessions.Get(chatID)
	if !ok {
		return nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	action := ParseAction(press.Data)
	c.log.Debug("admin press", "chat_id", chatID, "state", session.State.String(), "data", press.Data)

	switch session.State {
	case StateMenu:
		return c.menuPress(ctx, session, press, action)
	case StateBrowse:
		return c.browsePress(ctx, session, press, action)
	case StateSelectItem:
		return c.selectItemPress(ctx, session, press, action)
	case StateDeleteSection:
		return c.deletePress(ctx, session, press, action)
	default:
		return c.answer(ctx, press, "")
	}
}

// --- message steps ---

func (c *Controller) authStep(ctx context.Context, chatID int64, session *Session, text string) error {
	if text == cancelCommand {
		return c.Cancel(ctx, chatID)
	}

	if text != c.secrets.Password() {
		c.log.Info("admin password rejected", "chat_id", chatID)
		return c.reply(ctx, chatID, "❌ Неверный пароль. Попробуйте снова или /cancel для выхода.")
	}

	session.State = StateMenu
	c.log.Info("admin authenticated", "chat_id", chatID)
	return c.showMenuFresh(ctx, chatID)
}

func (c *Controller) textStep(ctx context.Context, chatID int64, session *Session, text string) error {
	if strings.TrimSpace(text) == cancelCommand {
		return c.toMenu(ctx, chatID, session)
	}

	if session.ChangingPassword {
		if err := c.secrets.SetPassword(text); err != nil {
			return err
		}
		session.ChangingPassword = false
		c.log.Info("admin password changed", "chat_id", chatID)
		if err := c.reply(ctx, chatID, "✅ Пароль успешно изменён!"); err != nil {
			return err
		}
		return c.toMenu(ctx, chatID, session)
	}

	switch session.Field {
	case FieldText:
		if err := c.updateSection(session.SectionID, func(section content.Section) (content.Section, bool) {
			section.Text = text
			return section, true
		}); err != nil {
			return err
		}
		if err := c.reply(ctx, chatID, "✅ Текст успешно обновлён!"); err != nil {
			return err
		}

	case FieldButtonAdd:
		button, err := ParseButtonSpec(text)
		if err != nil {
			return c.reply(ctx, chatID, "❌ Неверный формат. Используйте: Текст | callback")
		}
		if err := c.updateSection(session.SectionID, func(section content.Section) (content.Section, bool) {
			return appendButton(section, button), true
		}); err != nil {
			return err
		}
		if err := c.reply(ctx, chatID, fmt.Sprintf("✅ Кнопка '%s' добавлена!", button.Text)); err != nil {
			return err
		}

	case FieldButtonEdit:
		button, err := ParseButtonSpec(text)
		if err != nil {
			return c.reply(ctx, chatID, "❌ Неверный формат. Используйте: Текст | callback")
		}
		replaced := false
		if err := c.updateSection(session.SectionID, func(section content.Section) (content.Section, bool) {
			section, replaced = replaceButton(section, session.ButtonIndex, button)
			return section, replaced
		}); err != nil {
			return err
		}
		if replaced {
			if err := c.reply(ctx, chatID, "✅ Кнопка обновлена!"); err != nil {
				return err
			}
		}
	}

	return c.toMenu(ctx, chatID, session)
}

func (c *Controller) mediaStep(ctx context.Context, chatID int64, session *Session, text string, media content.Media) error {
	switch {
	case text == cancelCommand:
		return c.toMenu(ctx, chatID, session)

	case text == clearCommand:
		if err := c.updateSection(session.SectionID, func(section content.Section) (content.Section, bool) {
			section.Media = content.Media{}
			return section, true
		}); err != nil {
			return err
		}
		if err := c.reply(ctx, chatID, "✅ Медиа удалено!"); err != nil {
			return err
		}
		return c.toMenu(ctx, chatID, session)

	case media.Present():
		if err := c.updateSection(session.SectionID, func(section content.Section) (content.Section, bool) {
			section.Media = media
			return section, true
		}); err != nil {
			return err
		}
		confirmation := "✅ Фото успешно обновлено!"
		if media.Type == content.MediaVideo {
			confirmation = "✅ Видео успешно обновлено!"
		}
		if err := c.reply(ctx, chatID, confirmation); err != nil {
			return err
		}
		return c.toMenu(ctx, chatID, session)

	default:
		return c.reply(ctx, chatID, "❌ Отправьте фото или видео!")
	}
}

func (c *Controller) addSectionStep(ctx context.Context, chatID int64, session *Session, text string) error {
	if text == cancelCommand {
		return c.toMenu(ctx, chatID, session)
	}

	if !content.ValidID(text) {
		return c.reply(ctx, chatID, "❌ ID должен быть на латинице без пробелов!\nПример: <code>section_new</code>")
	}

	tree, err := c.store.Load()
	if err != nil {
		return err
	}
	if _, exists := tree.Section(text); exists {
		return c.reply(ctx, chatID, "❌ Раздел с таким ID уже существует!")
	}

	tree[text] = content.NewSection()
	if err := c.store.Save(tree); err != nil {
		return err
	}

	c.log.Info("section created", "section_id", text, "chat_id", chatID)
	if err := c.reply(ctx, chatID, fmt.Sprintf("✅ Раздел <code>%s</code> создан!\n\nТеперь отредактируйте его содержимое в админ-панели.", text)); err != nil {
		return err
	}
	return c.toMenu(ctx, chatID, session)
}

// --- press steps ---

func (c *Controller) menuPress(ctx context.Context, session *Session, press render.Press, action Action) error {
	switch action.Kind {
	case ActionMenuExit:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		c.sessions.End(press.Target.ChatID)
		c.log.Info("admin conversation ended", "chat_id", press.Target.ChatID)
		return c.renderer.Render(ctx, press.Target, "👋 Вы вышли из админ-панели.", render.Keyboard{}, content.Media{})

	case ActionMenuList:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		return c.showView(ctx, press.Target, listView(tree))

	case ActionBack:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		return c.showView(ctx, press.Target, menuView())

	case ActionMenuEdit:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		session.State = StateBrowse
		return c.showView(ctx, press.Target, browseRootView(tree))

	case ActionMenuAdd:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		session.State = StateAddSection
		return c.showView(ctx, press.Target, addSectionPromptView())

	case ActionMenuDelete:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		session.State = StateDeleteSection
		return c.showView(ctx, press.Target, deleteListView(tree))

	case ActionMenuPassword:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		session.State = StateText
		session.Field = FieldNone
		session.ChangingPassword = true
		return c.showView(ctx, press.Target, passwordPromptView())

	default:
		return c.answer(ctx, press, "")
	}
}

func (c *Controller) browsePress(ctx context.Context, session *Session, press render.Press, action Action) error {
	switch action.Kind {
	case ActionNoop:
		return c.answer(ctx, press, "")

	case ActionBack:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		session.State = StateMenu
		return c.showView(ctx, press.Target, menuView())

	case ActionMenuEdit:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		return c.showView(ctx, press.Target, browseRootView(tree))

	case ActionBrowse:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		return c.showView(ctx, press.Target, browseView(tree, action.SectionID))

	case ActionEditSection:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		session.SectionID = action.SectionID
		session.State = StateSelectItem
		return c.showView(ctx, press.Target, selectItemView(tree, action.SectionID))

	default:
		return c.answer(ctx, press, "")
	}
}

func (c *Controller) selectItemPress(ctx context.Context, session *Session, press render.Press, action Action) error {
	switch action.Kind {
	case ActionBrowse:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		tree, err := c.store.Load()
		if err != nil {
			return err
		}
		session.State = StateBrowse
		return c.showView(ctx, press.Target, browseView(tree, action.SectionID))

	case ActionEditText:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		session.State = StateText
		session.Field = FieldText
		return c.showView(ctx, press.Target, textPromptView(section))

	case ActionEditMedia:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		session.State = StateMedia
		return c.showView(ctx, press.Target, mediaPromptView(section))

	case ActionEditButtons, ActionEditBack:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		if action.Kind == ActionEditBack {
			tree, err := c.store.Load()
			if err != nil {
				return err
			}
			return c.showView(ctx, press.Target, selectItemView(tree, session.SectionID))
		}
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		return c.showView(ctx, press.Target, buttonListView(section))

	case ActionButtonAdd:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		session.State = StateText
		session.Field = FieldButtonAdd
		return c.showView(ctx, press.Target, addButtonPromptView())

	case ActionButtonDelete:
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		if len(section.Buttons) == 0 {
			return c.answer(ctx, press, "Кнопок нет!")
		}
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		return c.showView(ctx, press.Target,
			buttonPickView(section, "🗑 <b>Выберите кнопку для удаления:</b>", "🗑", delButtonCallback))

	case ActionButtonEdit:
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		if len(section.Buttons) == 0 {
			return c.answer(ctx, press, "Кнопок нет!")
		}
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		return c.showView(ctx, press.Target,
			buttonPickView(section, "✏️ <b>Выберите кнопку для редактирования:</b>", "✏️", editButtonCallback))

	case ActionDeleteButton:
		removedLabel := ""
		if err := c.updateSection(session.SectionID, func(section content.Section) (content.Section, bool) {
			updated, label, ok := removeButton(section, action.Index)
			removedLabel = label
			return updated, ok
		}); err != nil {
			return err
		}
		alert := ""
		if removedLabel != "" {
			alert = fmt.Sprintf("Кнопка '%s' удалена!", removedLabel)
		}
		if err := c.answer(ctx, press, alert); err != nil {
			return err
		}
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		return c.showView(ctx, press.Target, buttonListView(section))

	case ActionEditButton:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		section, err := c.loadSection(session.SectionID)
		if err != nil {
			return err
		}
		session.State = StateText
		session.Field = FieldButtonEdit
		session.ButtonIndex = action.Index
		return c.showView(ctx, press.Target, editButtonPromptView(section, action.Index))

	default:
		return c.answer(ctx, press, "")
	}
}

func (c *Controller) deletePress(ctx context.Context, session *Session, press render.Press, action Action) error {
	switch action.Kind {
	case ActionBack:
		if err := c.answer(ctx, press, ""); err != nil {
			return err
		}
		session.State = StateMenu
		return c.showView(ctx, press.Target, menuView())

	case ActionDeleteSection:
		alert := ""
		if action.SectionID == content.RootID {
			// The root section is never deletable, even via a forged press.
			alert = "Главное меню удалить нельзя!"
		} else {
			tree, err := c.store.Load()
			if err != nil {
				return err
			}
			if _, exists := tree.Section(action.SectionID); exists {
				delete(tree, action.SectionID)
				if err := c.store.Save(tree); err != nil {
					return err
				}
				c.log.Info("section deleted", "section_id", action.SectionID, "chat_id", press.Target.ChatID)
				alert = fmt.Sprintf("Раздел '%s' удалён!", action.SectionID)
			}
		}
		if err := c.answer(ctx, press, alert); err != nil {
			return err
		}
		session.State = StateMenu
		return c.showView(ctx, press.Target, menuView())

	default:
		return c.answer(ctx, press, "")
	}
}

// --- helpers ---

// toMenu resets the field-editing flags and shows the admin menu as a new
// message, the shape the replies in this flow always take.
func (c *Controller) toMenu(ctx context.Context, chatID int64, session *Session) error {
	session.State = StateMenu
	session.Field = FieldNone
	session.ChangingPassword = false
	return c.showMenuFresh(ctx, chatID)
}

func (c *Controller) showMenuFresh(ctx context.Context, chatID int64) error {
	v := menuView()
	return c.renderer.Render(ctx, render.Target{ChatID: chatID}, v.text, v.keyboard, content.Media{})
}

func (c *Controller) showView(ctx context.Context, target render.Target, v view) error {
	return c.renderer.Render(ctx, target, v.text, v.keyboard, content.Media{})
}

func (c *Controller) reply(ctx context.Context, chatID int64, text string) error {
	return c.transport.SendText(ctx, chatID, text, render.Keyboard{})
}

func (c *Controller) answer(ctx context.Context, press render.Press, alert string) error {
	if err := c.transport.AnswerPress(ctx, press.ID, alert); err != nil {
		c.log.Debug("press not answered", "error", err)
	}
	return nil
}

// loadSection reads one section, tolerating a missing entry by returning
// an empty section.
func (c *Controller) loadSection(id string) (content.Section, error) {
	tree, err := c.store.Load()
	if err != nil {
		return content.Section{}, err
	}

	section, ok := tree.Section(id)
	if !ok {
		section = content.Section{Buttons: []content.Row{}}
	}
	return section, nil
}

// updateSection is one whole-tree read-modify-write cycle: load, apply
// mutate to the (possibly missing) section, save when mutate reports a
// change. A button may target a not-yet-created section, so the entry is
// created on demand.
func (c *Controller) updateSection(id string, mutate func(content.Section) (content.Section, bool)) error {
	tree, err := c.store.Load()
	if err != nil {
		return err
	}

	section, ok := tree.Section(id)
	if !ok {
		section = content.Section{Buttons: []content.Row{}}
	}

	updated, changed := mutate(section)
	if !changed {
		return nil
	}

	tree[id] = updated
	return c.store.Save(tree)
}
