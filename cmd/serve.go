package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sectionbot/pkg/admin"
	"sectionbot/pkg/channel/telegram"
	"sectionbot/pkg/config"
	"sectionbot/pkg/content"
	"sectionbot/pkg/logger"
	"sectionbot/pkg/nav"
	"sectionbot/pkg/render"
	"sectionbot/pkg/store"
)

var serveDataDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	Long:  "Connects to Telegram via long polling and serves the content tree until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		appLogger, err := logger.New(cfg.Logging)
		if err != nil {
			fmt.Printf("failed to initialize logger: %v\n", err)
			return
		}
		slog.SetDefault(appLogger)
		log := slog.Default().With("component", "cmd.serve")

		if serveDataDir != "" {
			cfg.Storage.Dir = serveDataDir
		}

		documents, err := store.Open(cfg.Storage.Dir)
		if err != nil {
			log.Error("Failed to open data directory", "error", err)
			return
		}

		contentStore := content.NewStore(documents)
		secrets := admin.NewSecrets(documents)

		// The token may live in config, the environment, or the config
		// document written by a previous deployment.
		if cfg.Telegram.Token == "" {
			cfg.Telegram.Token = secrets.BotToken()
		}

		adapter, err := telegram.NewAdapter(cfg.Telegram, log)
		if err != nil {
			log.Error("Failed to configure Telegram channel", "error", err)
			return
		}

		renderer := render.New(adapter, log)

		navController := nav.New(contentStore, renderer, adapter, log)

		adminController, err := admin.New(contentStore, secrets, renderer, adapter, log)
		if err != nil {
			log.Error("Failed to initialize admin panel", "error", err)
			return
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("Bot started", "data_dir", documents.Dir())
		err = adapter.Run(runCtx, telegram.Routes{Nav: navController, Admin: adminController})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Bot runtime failed", "error", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "directory holding content.json and config.json")
	rootCmd.AddCommand(serveCmd)
}
