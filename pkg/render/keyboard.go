package render

import "sectionbot/pkg/content"

// BackButtonText labels the synthesized back row.
const BackButtonText = "◀️ Назад"

// KeyButton is one resolved inline keyboard entry.
type KeyButton struct {
	Text     string
	Callback string
	URL      string
}

// Keyboard is the resolved inline keyboard for one outbound message.
type Keyboard struct {
	Rows [][]KeyButton
}

// Empty reports whether the keyboard has no rows at all.
func (k Keyboard) Empty() bool {
	return len(k.Rows) == 0
}

// BuildKeyboard resolves content rows into a keyboard, appending a
// synthesized back row after all content-defined rows when a back target
// is supplied.
func BuildKeyboard(rows []content.Row, back string) Keyboard {
	kb := Keyboard{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		resolved := make([]KeyButton, 0, len(row))
		for _, button := range row {
			resolved = append(resolved, KeyButton{
				Text:     button.Text,
				Callback: button.Callback,
				URL:      button.URL,
			})
		}
		kb.Rows = append(kb.Rows, resolved)
	}

	if back != "" {
		kb.Rows = append(kb.Rows, []KeyButton{{Text: BackButtonText, Callback: back}})
	}

	return kb
}

// CallbackRow builds one single-button navigation row.
func CallbackRow(text string, callback string) []KeyButton {
	return []KeyButton{{Text: text, Callback: callback}}
}
