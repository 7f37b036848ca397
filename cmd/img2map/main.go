package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&convertCmd{}, "")
	subcommands.Register(&previewCmd{}, "")
	subcommands.Register(&dumpCmd{}, "")

	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// A .env file in the working directory may set IMG2MAP_SCENARIOS.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println(err)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
