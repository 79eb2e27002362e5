package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"sectionbot/pkg/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	docs, err := store.Open(t.TempDir())
	require.NoError(t, err)

	return NewStore(docs)
}

func TestLoadMissingDocumentIsEmptyTree(t *testing.T) {
	s := newTestStore(t)

	tree, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Empty(t, tree)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	tree := Tree{
		RootID: {
			Text: "root",
			Buttons: []Row{
				{{Text: "Help", Callback: "section_help"}},
				{{Text: "Site", URL: "https://example.com"}, {Text: "Docs", URL: "https://example.com/docs"}},
			},
		},
		"section_help": {
			Text:    "help text",
			Buttons: []Row{},
			Media:   Media{Type: MediaPhoto, FileID: "file-123"},
			Back:    RootID,
		},
	}

	require.NoError(t, s.Save(tree))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, tree, loaded)
}

func TestLoadNormalizesAbsentFields(t *testing.T) {
	docs, err := store.Open(t.TempDir())
	require.NoError(t, err)

	// Section written without buttons and with a cleared media object, the
	// shape the original editor leaves behind.
	raw := map[string]any{
		"section_x": map[string]any{
			"text":  "x",
			"media": map[string]any{},
		},
	}
	require.NoError(t, docs.Write("content", raw))

	tree, err := NewStore(docs).Load()
	require.NoError(t, err)

	section, ok := tree.Section("section_x")
	require.True(t, ok)
	require.NotNil(t, section.Buttons)
	require.Empty(t, section.Buttons)
	require.False(t, section.Media.Present())
}

func TestRowAcceptsBareButtonObject(t *testing.T) {
	var section Section
	raw := `{"text":"t","buttons":[{"text":"One","callback":"a"},[{"text":"Two","callback":"b"},{"text":"Three","url":"https://example.com"}]]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &section))

	require.Len(t, section.Buttons, 2)
	require.Equal(t, Row{{Text: "One", Callback: "a"}}, section.Buttons[0])
	require.Len(t, section.Buttons[1], 2)
	require.True(t, section.Buttons[1][1].IsURL())

	// Single-button rows marshal back to the bare object form.
	out, err := json.Marshal(section.Buttons[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"text":"One","callback":"a"}`, string(out))
}

// TestConcurrentEditsLoseUpdates documents the accepted read-modify-write
// hazard: two interleaved whole-tree edits keep only the last writer.
func TestConcurrentEditsLoseUpdates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Tree{RootID: {Text: "root", Buttons: []Row{}}}))

	first, err := s.Load()
	require.NoError(t, err)
	second, err := s.Load()
	require.NoError(t, err)

	first["section_a"] = NewSection()
	require.NoError(t, s.Save(first))

	second["section_b"] = NewSection()
	require.NoError(t, s.Save(second))

	final, err := s.Load()
	require.NoError(t, err)

	_, hasA := final.Section("section_a")
	_, hasB := final.Section("section_b")
	require.False(t, hasA, "first edit must be silently overwritten")
	require.True(t, hasB)
}
