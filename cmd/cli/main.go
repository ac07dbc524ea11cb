package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/rostergo/internal/app"
	"github.com/specialistvlad/rostergo/internal/catalog"
	"github.com/specialistvlad/rostergo/internal/cli"
	"github.com/specialistvlad/rostergo/internal/hcl"
	"github.com/specialistvlad/rostergo/internal/yaml"
)

// main is the entrypoint for the rostergo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal starts the shutdown, restore default handling
	// so a second one kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Both catalog formats are compiled in; the loader picks one per file extension.
	loader := catalog.NewLoader(hcl.NewDecoder(), yaml.NewDecoder())
	rosterApp, err := app.NewApp(ctx, outW, errW, appConfig, loader)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer rosterApp.Close()

	return rosterApp.Run(ctx, in)
}
