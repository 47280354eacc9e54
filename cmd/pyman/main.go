// Package main is the entry point for the pyman environment manager.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/cmd/pyman/commands"
	"go.trai.ch/pyman/internal/app"
	_ "go.trai.ch/pyman/internal/wiring"
)

// jsonSwitch is implemented by loggers that can emit structured output.
type jsonSwitch interface {
	SetJSON(enable bool)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	cli := commands.New(components.App)
	cli.SetJSONHook(func(enable bool) {
		if l, ok := components.Logger.(jsonSwitch); ok {
			l.SetJSON(enable)
		}
	})

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
