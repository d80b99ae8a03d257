// Command safecp copies a single file to a destination path, failing
// atomically if the destination already exists.
//
// Usage:
//
//	safecp <source> <destination>
//
// On success nothing is printed and the exit code is 0. On failure a single
// machine-readable line of the form "-1:<errno>:<message>" is printed to
// standard output and the exit code equals the raw platform error code (1
// when no code could be extracted). Structured logs go to standard error,
// keeping standard output reserved for the diagnostic line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/marchfeld/safecp/internal/configuration"
	"github.com/marchfeld/safecp/internal/copier"
	"github.com/marchfeld/safecp/internal/schema"
)

const usageText = "usage: safecp <source> <destination>"

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string
)

func setupLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupLogging()
	setupSignalHandlers(cancel)

	args := os.Args[1:]
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usageText)
		ExitCode = 2

		return
	}

	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}

	copyHandler := copier.NewHandler(osProvider, unixProvider, configuration.DefaultSettings())

	outcome := copyHandler.Copy(ctx, schema.Request{
		SourcePath: args[0],
		DestPath:   args[1],
	})

	if outcome.Failed() {
		fmt.Printf("-1:%d:%s\n", int(outcome.Errno), outcome.Message)

		ExitCode = int(outcome.Errno)
		if ExitCode == 0 {
			ExitCode = 1
		}
	}
}
