package admin

import (
	"testing"

	"sectionbot/pkg/content"
)

func TestParseButtonSpec(t *testing.T) {
	button, err := ParseButtonSpec("  📱 Инструкция | section_instruction  ")
	if err != nil {
		t.Fatalf("ParseButtonSpec error: %v", err)
	}
	if button.Text != "📱 Инструкция" || button.Callback != "section_instruction" {
		t.Fatalf("ParseButtonSpec = %+v", button)
	}
}

func TestParseButtonSpecRejectsMissingSeparator(t *testing.T) {
	if _, err := ParseButtonSpec("no separator here"); err == nil {
		t.Fatal("expected error for spec without |")
	}
}

func TestParseButtonSpecExtraSeparators(t *testing.T) {
	button, err := ParseButtonSpec("A | B | C")
	if err != nil {
		t.Fatalf("ParseButtonSpec error: %v", err)
	}
	if button.Text != "A" || button.Callback != "B" {
		t.Fatalf("ParseButtonSpec = %+v, want text A target B", button)
	}
}

func TestRemoveButtonOutOfRange(t *testing.T) {
	section := content.Section{Buttons: []content.Row{{{Text: "One", Callback: "a"}}}}

	updated, _, ok := removeButton(section, 5)
	if ok {
		t.Fatal("out-of-range delete must be ignored")
	}
	if len(updated.Buttons) != 1 {
		t.Fatal("out-of-range delete must not mutate")
	}

	updated, label, ok := removeButton(section, 0)
	if !ok || label != "One" || len(updated.Buttons) != 0 {
		t.Fatalf("removeButton = (%v, %q, %v)", updated.Buttons, label, ok)
	}
}

func TestReplaceButtonOutOfRange(t *testing.T) {
	section := content.Section{Buttons: []content.Row{{{Text: "One", Callback: "a"}}}}

	if _, ok := replaceButton(section, 1, content.Button{Text: "X"}); ok {
		t.Fatal("out-of-range replace must be ignored")
	}

	updated, ok := replaceButton(section, 0, content.Button{Text: "X", Callback: "b"})
	if !ok || updated.Buttons[0][0].Text != "X" {
		t.Fatalf("replaceButton = %+v", updated.Buttons)
	}
}
