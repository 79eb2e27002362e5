package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sectionbot",
	Short: "Telegram content browser with an inline admin panel",
	Long:  "SectionBot serves a tree of content sections over Telegram inline keyboards and lets admins edit the tree from the chat itself.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
