package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"tv-data/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	// .env is optional; env vars win either way
	_ = godotenv.Load()

	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slogx.New(a.Config.LogLevel, a.Config.LogFormat))

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&mergeCmd{app: a}, "")
	subcommands.Register(&extractCmd{app: a}, "")
	subcommands.Register(&jsonCmd{app: a}, "")
	subcommands.Register(&timestampsCmd{app: a}, "")
	subcommands.Register(&buildCmd{app: a}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
