package cmd

import (
	"strings"
	"testing"

	"sectionbot/pkg/content"
)

func sampleTree() content.Tree {
	return content.Tree{
		content.RootID: {
			Text: "<b>Меню</b>\nвторая строка",
			Buttons: []content.Row{
				{{Text: "Docs", Callback: "docs"}},
				{{Text: "Site", URL: "https://example.com"}},
			},
		},
		"docs": {
			Text:  "Документация",
			Media: content.Media{Type: content.MediaPhoto, FileID: "f1"},
			Back:  content.RootID,
		},
		"lost": {
			Text: "Никто сюда не ссылается",
			Back: content.RootID,
		},
	}
}

func TestRenderTreeWalksFromRoot(t *testing.T) {
	out := renderTree(sampleTree())

	rootIdx := strings.Index(out, content.RootID)
	docsIdx := strings.Index(out, "docs")
	if rootIdx < 0 || docsIdx < 0 {
		t.Fatalf("missing sections in output:\n%s", out)
	}
	if docsIdx < rootIdx {
		t.Fatal("children must render after the root")
	}

	if !strings.Contains(out, "[photo]") {
		t.Errorf("media marker missing:\n%s", out)
	}
	if strings.Contains(out, "вторая строка") {
		t.Errorf("only the first line of a section text should render:\n%s", out)
	}
}

func TestRenderTreeMarksOrphans(t *testing.T) {
	out := renderTree(sampleTree())

	var orphanLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "lost") {
			orphanLine = line
		}
	}
	if orphanLine == "" {
		t.Fatalf("orphan section missing:\n%s", out)
	}
	if !strings.Contains(orphanLine, "?") {
		t.Errorf("orphan line should carry the marker: %q", orphanLine)
	}
}

func TestRenderTreeEmptyTreeUsesDefaultRoot(t *testing.T) {
	out := renderTree(content.Tree{})
	if !strings.Contains(out, content.RootID) {
		t.Fatalf("expected synthesized root in output:\n%s", out)
	}
}

func TestFirstLineTruncates(t *testing.T) {
	long := strings.Repeat("я", 80)
	got := firstLine(long)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if len([]rune(got)) != 61 {
		t.Fatalf("rune length = %d, want 61", len([]rune(got)))
	}
}
