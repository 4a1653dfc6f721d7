package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"charliebot/internal/cache"
	"charliebot/internal/config"
	"charliebot/internal/logparse"
	"charliebot/internal/reply"
	"charliebot/internal/scheduler"
	"charliebot/internal/store"
	"charliebot/internal/telegram"
	"charliebot/internal/train"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	root := &cobra.Command{
		Use:   "charliebot",
		Short: "Impersonates chat users with per-nick models trained on chat logs",
	}
	root.AddCommand(newGenerateCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <log-file>",
		Short: "Build and persist one model per nick from a chat log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(config.New(), args[0])
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer chat commands with generated replies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.New())
		},
	}
}

func generate(cfg *config.Config, logFile string) error {
	p, closer, err := logparse.Open(logFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = closer.Close() }()

	chains := train.Build(p)
	log.Printf("built chains for %d nicks", len(chains))

	return store.New(cfg.DataDir).SaveAll(chains)
}

func serve(cfg *config.Config) error {
	if cfg.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required for serve")
	}

	st := store.New(cfg.DataDir)
	if nicks, err := st.Nicks(); err != nil {
		log.Printf("could not list known nicks: %v", err)
	} else {
		log.Printf("known nicks: %v", nicks)
	}

	c := cache.New(st, cfg.CacheTTL)

	sched := scheduler.New(cfg.SweepPeriod, c.Sweep)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	bot, err := telegram.New(cfg.TelegramBotToken, cfg.CommandPrefix, c, reply.Default())
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	bot.Start(context.Background())
	return nil
}
