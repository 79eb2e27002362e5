package render

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sectionbot/pkg/content"
)

type call struct {
	name    string
	chatID  int64
	text    string
	media   content.Media
	surface Surface
}

// recordingTransport records calls and fails the ones named in failures.
type recordingTransport struct {
	mu       sync.Mutex
	calls    []call
	failures map[string]error
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{failures: map[string]error{}}
}

func (t *recordingTransport) record(c call) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, c)
	return t.failures[c.name]
}

func (t *recordingTransport) SendText(_ context.Context, chatID int64, text string, _ Keyboard) error {
	return t.record(call{name: "SendText", chatID: chatID, text: text})
}

func (t *recordingTransport) SendMedia(_ context.Context, chatID int64, media content.Media, caption string, _ Keyboard) error {
	return t.record(call{name: "SendMedia", chatID: chatID, text: caption, media: media})
}

func (t *recordingTransport) EditText(_ context.Context, surface Surface, text string, _ Keyboard) error {
	return t.record(call{name: "EditText", chatID: surface.ChatID, text: text, surface: surface})
}

func (t *recordingTransport) EditMedia(_ context.Context, surface Surface, media content.Media, caption string, _ Keyboard) error {
	return t.record(call{name: "EditMedia", chatID: surface.ChatID, text: caption, media: media, surface: surface})
}

func (t *recordingTransport) DeleteSurface(_ context.Context, surface Surface) error {
	return t.record(call{name: "DeleteSurface", chatID: surface.ChatID, surface: surface})
}

func (t *recordingTransport) AnswerPress(_ context.Context, pressID string, alert string) error {
	return t.record(call{name: "AnswerPress", text: alert})
}

func (t *recordingTransport) callNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, len(t.calls))
	for i, c := range t.calls {
		names[i] = c.name
	}
	return names
}

var (
	photo       = content.Media{Type: content.MediaPhoto, FileID: "file-1"}
	textSurface = Surface{ChatID: 7, MessageID: 100}
	mediaSurf   = Surface{ChatID: 7, MessageID: 100, HasMedia: true}
)

func TestRenderFreshTargetSends(t *testing.T) {
	transport := newRecordingTransport()
	r := New(transport, nil)
	target := Target{ChatID: 7}

	require.NoError(t, r.Render(context.Background(), target, "hi", Keyboard{}, content.Media{}))
	require.Equal(t, []string{"SendText"}, transport.callNames())

	transport.calls = nil
	require.NoError(t, r.Render(context.Background(), target, "hi", Keyboard{}, photo))
	require.Equal(t, []string{"SendMedia"}, transport.callNames())
}

func TestRenderTextOverTextEditsInPlace(t *testing.T) {
	transport := newRecordingTransport()
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &textSurface}

	require.NoError(t, r.Render(context.Background(), target, "hi", Keyboard{}, content.Media{}))
	require.Equal(t, []string{"EditText"}, transport.callNames())
}

func TestRenderTextUnchangedIsSuccessNoOp(t *testing.T) {
	transport := newRecordingTransport()
	transport.failures["EditText"] = ErrNotModified
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &textSurface}

	require.NoError(t, r.Render(context.Background(), target, "hi", Keyboard{}, content.Media{}))
	require.Equal(t, []string{"EditText"}, transport.callNames())
}

func TestRenderTextEditFailureFallsBackToSend(t *testing.T) {
	transport := newRecordingTransport()
	transport.failures["EditText"] = errors.New("message to edit not found")
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &textSurface}

	require.NoError(t, r.Render(context.Background(), target, "hi", Keyboard{}, content.Media{}))
	require.Equal(t, []string{"EditText", "SendText"}, transport.callNames())
}

func TestRenderMediaOverTextSendsNewMessage(t *testing.T) {
	transport := newRecordingTransport()
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &textSurface}

	require.NoError(t, r.Render(context.Background(), target, "cap", Keyboard{}, photo))
	require.Equal(t, []string{"SendMedia"}, transport.callNames())
}

func TestRenderMediaOverMediaEditsInPlace(t *testing.T) {
	transport := newRecordingTransport()
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &mediaSurf}

	require.NoError(t, r.Render(context.Background(), target, "cap", Keyboard{}, photo))
	require.Equal(t, []string{"EditMedia"}, transport.callNames())
}

func TestRenderMediaEditFailureDeletesThenSends(t *testing.T) {
	transport := newRecordingTransport()
	transport.failures["EditMedia"] = errors.New("message can't be edited")
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &mediaSurf}

	require.NoError(t, r.Render(context.Background(), target, "cap", Keyboard{}, photo))
	require.Equal(t, []string{"EditMedia", "DeleteSurface", "SendMedia"}, transport.callNames())
}

func TestRenderTextOverMediaDeletesThenSends(t *testing.T) {
	transport := newRecordingTransport()
	r := New(transport, nil)
	target := Target{ChatID: 7, Surface: &mediaSurf}

	require.NoError(t, r.Render(context.Background(), target, "hi", Keyboard{}, content.Media{}))
	require.Equal(t, []string{"DeleteSurface", "SendText"}, transport.callNames())
}

func TestBuildKeyboardAppendsBackRowLast(t *testing.T) {
	rows := []content.Row{
		{{Text: "A", Callback: "section_a"}},
		{{Text: "Site", URL: "https://example.com"}},
	}

	kb := BuildKeyboard(rows, "menu")
	require.Len(t, kb.Rows, 3)
	require.Equal(t, "section_a", kb.Rows[0][0].Callback)
	require.Equal(t, "https://example.com", kb.Rows[1][0].URL)
	require.Equal(t, BackButtonText, kb.Rows[2][0].Text)
	require.Equal(t, "menu", kb.Rows[2][0].Callback)

	noBack := BuildKeyboard(rows, "")
	require.Len(t, noBack.Rows, 2)
}
