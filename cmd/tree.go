package cmd

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"sectionbot/pkg/content"
	"sectionbot/pkg/store"
)

var treeDataDir string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the content tree",
	Long:  "Loads content.json and prints the section tree as a styled outline, starting from the main menu.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		documents, err := store.Open(treeDataDir)
		if err != nil {
			fmt.Printf("failed to open data directory: %v\n", err)
			return
		}

		tree, err := content.NewStore(documents).Load()
		if err != nil {
			fmt.Printf("failed to load content: %v\n", err)
			return
		}

		fmt.Print(renderTree(tree))
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeDataDir, "data-dir", "", "directory holding content.json")
	rootCmd.AddCommand(treeCmd)
}

var (
	treeIDStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
	treeTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	treeMediaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
	treeOrphanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// renderTree walks the tree breadth-first from the root and appends any
// sections unreachable through buttons at the end, marked as orphans.
func renderTree(tree content.Tree) string {
	var out strings.Builder

	visited := map[string]bool{}
	renderBranch(&out, tree, content.RootID, 0, visited)

	orphans := make([]string, 0)
	for _, id := range tree.IDs() {
		if !visited[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)

	for _, id := range orphans {
		section, _ := tree.Section(id)
		fmt.Fprintf(&out, "%s %s %s\n",
			treeOrphanStyle.Render("?"),
			treeIDStyle.Render(id),
			treeTextStyle.Render(firstLine(section.Text)))
	}

	return out.String()
}

func renderBranch(out *strings.Builder, tree content.Tree, id string, depth int, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	section, ok := tree.Section(id)
	if !ok && id == content.RootID {
		section = content.DefaultRoot()
	} else if !ok {
		slog.Debug("Button targets a missing section", "id", id)
		return
	}

	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %s", indent, treeIDStyle.Render(id), treeTextStyle.Render(firstLine(section.Text)))
	if section.Media.Present() {
		line += " " + treeMediaStyle.Render("["+section.Media.Type+"]")
	}
	out.WriteString(line + "\n")

	for _, row := range section.Buttons {
		for _, button := range row {
			if button.IsURL() || button.Callback == "" {
				continue
			}
			renderBranch(out, tree, button.Callback, depth+1, visited)
		}
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	const limit = 60
	runes := []rune(line)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return line
}
