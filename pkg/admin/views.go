package admin

import (
	"fmt"
	"sort"
	"strings"

	"sectionbot/pkg/content"
	"sectionbot/pkg/render"
)

const previewLimit = 50

const separatorLabel = "─────────────"

// view is one admin screen: text plus keyboard, always text-only.
type view struct {
	text     string
	keyboard render.Keyboard
}

func menuView() view {
	return view{
		text: "⚙️ <b>Админ-панель</b>\n\nВыберите действие:",
		keyboard: render.Keyboard{Rows: [][]render.KeyButton{
			render.CallbackRow("📝 Редактировать контент", "admin_edit"),
			render.CallbackRow("➕ Добавить раздел", "admin_add"),
			render.CallbackRow("🗑 Удалить раздел", "admin_delete"),
			render.CallbackRow("📋 Список разделов", "admin_list"),
			render.CallbackRow("🔑 Сменить пароль", "admin_password"),
			render.CallbackRow("❌ Выход", "admin_exit"),
		}},
	}
}

func listView(tree content.Tree) view {
	ids := tree.IDs()
	sort.Strings(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("• <code>%s</code>", id))
	}

	return view{
		text: "📋 <b>Список разделов:</b>\n\n" + strings.Join(lines, "\n"),
		keyboard: render.Keyboard{Rows: [][]render.KeyButton{
			render.CallbackRow(render.BackButtonText, "admin_back"),
		}},
	}
}

// browseRootView lists the root section's children for editing navigation.
func browseRootView(tree content.Tree) view {
	rows := [][]render.KeyButton{
		render.CallbackRow("✏️ Редактировать: Главное меню", editCallback(content.RootID)),
		render.CallbackRow(separatorLabel, "noop"),
	}
	rows = append(rows, childRows(tree.Root())...)
	rows = append(rows, render.CallbackRow(render.BackButtonText, "admin_back"))

	return view{
		text:     "📝 <b>Редактирование контента</b>\n\nВыберите раздел для навигации или редактирования:",
		keyboard: render.Keyboard{Rows: rows},
	}
}

func browseView(tree content.Tree, id string) view {
	section, _ := tree.Section(id)

	rows := [][]render.KeyButton{
		render.CallbackRow("✏️ Редактировать этот раздел", editCallback(id)),
	}
	if children := childRows(section); len(children) > 0 {
		rows = append(rows, render.CallbackRow(separatorLabel, "noop"))
		rows = append(rows, children...)
	}

	// Dangling back pointers fall back to the edit root rather than failing.
	back := section.Back
	if back == "" || back == content.RootID {
		rows = append(rows, render.CallbackRow("◀️ В главное меню", "admin_edit"))
	} else {
		rows = append(rows, render.CallbackRow(render.BackButtonText, browseCallback(back)))
	}

	return view{
		text:     fmt.Sprintf("📂 <b>%s</b>\n\n<code>%s</code>", preview(section.Text), id),
		keyboard: render.Keyboard{Rows: rows},
	}
}

func selectItemView(tree content.Tree, id string) view {
	section, _ := tree.Section(id)

	return view{
		text: fmt.Sprintf("✏️ <b>Редактирование:</b>\n%s\n\n<code>%s</code>\n\nЧто изменить?", preview(section.Text), id),
		keyboard: render.Keyboard{Rows: [][]render.KeyButton{
			render.CallbackRow("📝 Текст", "edit_text"),
			render.CallbackRow("🖼 Медиа (фото/видео)", "edit_media"),
			render.CallbackRow("🔘 Кнопки", "edit_buttons"),
			render.CallbackRow(render.BackButtonText, browseCallback(id)),
		}},
	}
}

func deleteListView(tree content.Tree) view {
	ids := tree.IDs()
	sort.Strings(ids)

	rows := make([][]render.KeyButton, 0, len(ids)+1)
	for _, id := range ids {
		if id == content.RootID {
			// The root is never offered for deletion.
			continue
		}
		rows = append(rows, render.CallbackRow("🗑 "+id, deleteCallback(id)))
	}
	rows = append(rows, render.CallbackRow(render.BackButtonText, "admin_back"))

	return view{
		text:     "🗑 <b>Выберите раздел для удаления:</b>\n\n⚠️ Это действие необратимо!",
		keyboard: render.Keyboard{Rows: rows},
	}
}

func buttonListView(section content.Section) view {
	lines := make([]string, 0, len(section.Buttons))
	for i, row := range section.Buttons {
		lines = append(lines, fmt.Sprintf("%d. %s → %s", i+1, rowLabel(row), rowTarget(row)))
	}
	body := strings.Join(lines, "\n")
	if body == "" {
		body = "Кнопки не заданы"
	}

	return view{
		text: fmt.Sprintf("🔘 <b>Текущие кнопки:</b>\n\n%s\n\nВыберите действие:", body),
		keyboard: render.Keyboard{Rows: [][]render.KeyButton{
			render.CallbackRow("➕ Добавить кнопку", "btn_add"),
			render.CallbackRow("🗑 Удалить кнопку", "btn_delete"),
			render.CallbackRow("✏️ Изменить кнопку", "btn_edit"),
			render.CallbackRow(render.BackButtonText, "edit_back"),
		}},
	}
}

// buttonPickView lists one delete or edit target per row.
func buttonPickView(section content.Section, title string, emoji string, callbackFor func(int) string) view {
	rows := make([][]render.KeyButton, 0, len(section.Buttons)+1)
	for i, row := range section.Buttons {
		rows = append(rows, render.CallbackRow(emoji+" "+rowLabel(row), callbackFor(i)))
	}
	rows = append(rows, render.CallbackRow(render.BackButtonText, "edit_buttons"))

	return view{text: title, keyboard: render.Keyboard{Rows: rows}}
}

func textPromptView(section content.Section) view {
	current := section.Text
	if current == "" {
		current = "Текст не задан"
	}

	return view{text: fmt.Sprintf(
		"📝 <b>Текущий текст:</b>\n\n%s\n\n─────────────────\n"+
			"Отправьте новый текст (поддерживается HTML-разметка).\nИли /cancel для отмены.", current)}
}

func mediaPromptView(section content.Section) view {
	info := "Не задано"
	if section.Media.Present() {
		id := section.Media.FileID
		if len(id) > 20 {
			id = id[:20] + "..."
		}
		info = fmt.Sprintf("Тип: %s\nID: %s", section.Media.Type, id)
	}

	return view{text: fmt.Sprintf(
		"🖼 <b>Текущее медиа:</b>\n%s\n\n─────────────────\n"+
			"Отправьте фото или видео для замены.\n"+
			"Отправьте /clear чтобы удалить медиа.\nИли /cancel для отмены.", info)}
}

func addButtonPromptView() view {
	return view{text: "➕ <b>Добавление кнопки</b>\n\n" +
		"Введите данные кнопки в формате:\n<code>Текст кнопки | callback_id</code>\n\n" +
		"Пример: <code>📱 Инструкция | section_instruction</code>\n\nИли /cancel для отмены."}
}

func editButtonPromptView(section content.Section, index int) view {
	text, target := "", ""
	if index >= 0 && index < len(section.Buttons) {
		text = rowLabel(section.Buttons[index])
		target = rowTarget(section.Buttons[index])
	}

	return view{text: fmt.Sprintf(
		"✏️ <b>Редактирование кнопки:</b>\nТекущий текст: %s\nТекущий callback: %s\n\n"+
			"Введите новые данные в формате:\n<code>Текст кнопки | callback_id</code>\n\nИли /cancel для отмены.",
		text, target)}
}

func addSectionPromptView() view {
	return view{text: "➕ <b>Добавление нового раздела</b>\n\n" +
		"Введите ID нового раздела (латиницей, без пробелов).\n" +
		"Например: <code>section_new</code>\n\nИли /cancel для отмены."}
}

func passwordPromptView() view {
	return view{text: "🔑 <b>Смена пароля</b>\n\nВведите новый пароль:"}
}

// preview is the first line of a section's text, truncated for display.
func preview(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}

	return line
}

// childRows lists one browse button per navigation child; URL buttons never
// resolve to sections and are skipped.
func childRows(section content.Section) [][]render.KeyButton {
	var rows [][]render.KeyButton
	for _, row := range section.Buttons {
		for _, button := range row {
			if button.IsURL() || button.Callback == "" {
				continue
			}
			rows = append(rows, render.CallbackRow("📂 "+button.Text, browseCallback(button.Callback)))
		}
	}

	return rows
}
