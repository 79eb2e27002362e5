package telegram

import (
	"errors"
	"testing"

	"github.com/mymmrac/telego"

	"sectionbot/pkg/content"
	"sectionbot/pkg/render"
)

func TestCommand(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/start", "/start"},
		{"  /menu  ", "/menu"},
		{"/admin@section_bot", "/admin"},
		{"/start extra args", "/start"},
		{"hello", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := command(tc.in); got != tc.want {
			t.Errorf("command(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAdminMessagePicksLargestPhoto(t *testing.T) {
	msg := &telego.Message{
		Photo: []telego.PhotoSize{
			{FileID: "small", Width: 90},
			{FileID: "large", Width: 1280},
			{FileID: "medium", Width: 320},
		},
		Caption: "caption text",
	}

	got := adminMessage(msg)
	if got.Media.Type != content.MediaPhoto {
		t.Fatalf("media type = %q, want photo", got.Media.Type)
	}
	if got.Media.FileID != "large" {
		t.Errorf("file id = %q, want largest size", got.Media.FileID)
	}
	if got.Text != "caption text" {
		t.Errorf("text = %q, want caption fallback", got.Text)
	}
}

func TestAdminMessageVideo(t *testing.T) {
	msg := &telego.Message{Video: &telego.Video{FileID: "vid1"}}

	got := adminMessage(msg)
	if got.Media.Type != content.MediaVideo || got.Media.FileID != "vid1" {
		t.Fatalf("media = %+v, want video vid1", got.Media)
	}
}

func TestAdminMessagePlainText(t *testing.T) {
	got := adminMessage(&telego.Message{Text: "just text"})
	if got.Media.Present() {
		t.Fatalf("plain text message should carry no media, got %+v", got.Media)
	}
	if got.Text != "just text" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestInlineMarkupEmptyKeyboard(t *testing.T) {
	if markup := inlineMarkup(render.Keyboard{}); markup != nil {
		t.Fatalf("empty keyboard should produce nil markup, got %+v", markup)
	}
}

func TestInlineMarkupButtons(t *testing.T) {
	keyboard := render.Keyboard{Rows: [][]render.KeyButton{
		{
			{Text: "Open", Callback: "browse_docs"},
			{Text: "Site", URL: "https://example.com"},
		},
		{
			{Text: "◀️ Назад", Callback: "back_menu"},
		},
	}}

	markup := inlineMarkup(keyboard)
	if markup == nil {
		t.Fatal("expected markup")
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}

	first := markup.InlineKeyboard[0]
	if first[0].CallbackData != "browse_docs" || first[0].URL != "" {
		t.Errorf("callback button mapped wrong: %+v", first[0])
	}
	if first[1].URL != "https://example.com" || first[1].CallbackData != "" {
		t.Errorf("url button mapped wrong: %+v", first[1])
	}
}

func TestClassifyEditError(t *testing.T) {
	if classifyEditError(nil) != nil {
		t.Error("nil error should stay nil")
	}

	notModified := errors.New("telegram: Bad Request: message is not modified")
	if !errors.Is(classifyEditError(notModified), render.ErrNotModified) {
		t.Error("not-modified rejection should map to the sentinel")
	}

	other := errors.New("telegram: Bad Request: chat not found")
	if errors.Is(classifyEditError(other), render.ErrNotModified) {
		t.Error("unrelated errors must pass through unchanged")
	}
}
