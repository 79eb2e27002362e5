// Package content defines the section tree shown to end users and its
// persistent store.
//
// The tree is a flat mapping from section id to section. One distinguished
// entry, "menu", is the root; every other section reaches it through back
// pointers. The stored form is a single JSON document compatible with the
// original content layout: rows may be stored either as one button object
// or as an array of buttons.
package content

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// RootID is the id of the root section. It must always exist in a saved
// tree and is never deletable.
const RootID = "menu"

// Button is one inline keyboard entry: either a navigation callback
// targeting another section, or an external URL link.
type Button struct {
	Text     string `json:"text"`
	Callback string `json:"callback,omitempty"`
	URL      string `json:"url,omitempty"`
}

// IsURL reports whether the button opens an external link instead of
// navigating to a section.
func (b Button) IsURL() bool {
	return b.URL != ""
}

// Row is one keyboard row. The stored form accepts a bare button object
// for a single-button row; it round-trips back to the same shape.
type Row []Button

// UnmarshalJSON accepts either a button array or a single button object.
func (r *Row) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var buttons []Button
		if err := json.Unmarshal(trimmed, &buttons); err != nil {
			return err
		}
		*r = buttons
		return nil
	}

	var single Button
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*r = Row{single}
	return nil
}

// MarshalJSON writes single-button rows as a bare button object, matching
// the stored form they were loaded from.
func (r Row) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}

	return json.Marshal([]Button(r))
}

// Media references an uploaded photo or video by its opaque platform
// file id. The zero value means no media.
type Media struct {
	Type   string `json:"type,omitempty"`
	FileID string `json:"file_id,omitempty"`
}

// Media types accepted by the tree.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

// Present reports whether the reference points at an actual file.
func (m Media) Present() bool {
	return m.FileID != ""
}

// Section is one node of the content tree.
type Section struct {
	Text    string `json:"text"`
	Buttons []Row  `json:"buttons"`
	Media   Media  `json:"media,omitempty"`
	Back    string `json:"back,omitempty"`
}

// Tree maps section ids to sections.
type Tree map[string]Section

// Section looks up a section by id.
func (t Tree) Section(id string) (Section, bool) {
	section, ok := t[id]
	return section, ok
}

// Root returns the root section, synthesizing the built-in default when
// the tree has no "menu" entry yet.
func (t Tree) Root() Section {
	if section, ok := t[RootID]; ok {
		return section
	}

	return DefaultRoot()
}

// IDs returns the section ids in map order; callers sort when a stable
// order matters.
func (t Tree) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}

	return ids
}

// DefaultRoot is the root section rendered before any content has been
// authored.
func DefaultRoot() Section {
	return Section{
		Text: "🔗 <b>GPS-трекер AK-39B</b>\n\nВыберите раздел:",
		Buttons: []Row{
			{{Text: "🔗 Инструкция и функционал", Callback: "section_instruction"}},
			{{Text: "ℹ️ Об этом устройстве", Callback: "section_about"}},
			{{Text: "❓ Решение проблем", Callback: "section_problems"}},
			{{Text: "📞 Поддержка", Callback: "section_support"}},
		},
	}
}

// ValidID reports whether id is acceptable for a newly created section:
// ASCII only, no whitespace, not empty.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	if strings.ContainsAny(id, " \t\n\r") {
		return false
	}
	for _, r := range id {
		if r >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// NewSection is the placeholder section created for a freshly added id.
func NewSection() Section {
	return Section{
		Text:    "Новый раздел. Отредактируйте текст в админ-панели.",
		Buttons: []Row{},
		Back:    RootID,
	}
}
