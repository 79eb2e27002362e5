package admin

import (
	"errors"
	"strings"

	"sectionbot/pkg/content"
)

var errButtonSpec = errors.New("button spec must contain a | separator")

// ParseButtonSpec parses "Текст кнопки | callback_id" into a navigation
// button. Both sides are trimmed; anything past a second separator is
// dropped.
func ParseButtonSpec(input string) (content.Button, error) {
	if !strings.Contains(input, "|") {
		return content.Button{}, errButtonSpec
	}

	parts := strings.Split(input, "|")
	return content.Button{
		Text:     strings.TrimSpace(parts[0]),
		Callback: strings.TrimSpace(parts[1]),
	}, nil
}

// rowLabel is the display label of one keyboard row in the button editor.
func rowLabel(row content.Row) string {
	texts := make([]string, 0, len(row))
	for _, button := range row {
		texts = append(texts, button.Text)
	}

	return strings.Join(texts, " / ")
}

// rowTarget is the navigation target (or URL) shown next to the label.
func rowTarget(row content.Row) string {
	if len(row) == 0 {
		return ""
	}
	if row[0].IsURL() {
		return row[0].URL
	}

	return row[0].Callback
}

// appendButton appends a new single-button row to the section.
func appendButton(section content.Section, button content.Button) content.Section {
	section.Buttons = append(section.Buttons, content.Row{button})
	return section
}

// replaceButton overwrites the row at index with a single-button row.
// Out-of-range indexes leave the section untouched.
func replaceButton(section content.Section, index int, button content.Button) (content.Section, bool) {
	if index < 0 || index >= len(section.Buttons) {
		return section, false
	}

	section.Buttons[index] = content.Row{button}
	return section, true
}

// removeButton deletes the row at index. Out-of-range indexes are silently
// ignored; the removed row's label is returned for the confirmation alert.
func removeButton(section content.Section, index int) (content.Section, string, bool) {
	if index < 0 || index >= len(section.Buttons) {
		return section, "", false
	}

	label := rowLabel(section.Buttons[index])
	section.Buttons = append(section.Buttons[:index], section.Buttons[index+1:]...)
	return section, label, true
}
