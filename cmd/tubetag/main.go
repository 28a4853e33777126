// Package main is the entrypoint of tubetag.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubetag/internal/app"
	"tubetag/internal/cfg"
	"tubetag/internal/domain/keys"
	"tubetag/internal/domain/paths"
	"tubetag/internal/utils/logging"
)

// main is the main entrypoint of the program.
func main() {
	os.Exit(run())
}

func run() int {
	startTime := time.Now()

	if err := cfg.Execute(os.Args[1:]); err != nil {
		return 1
	}
	if !cfg.GetBool(keys.Execute) {
		return 0 // help or version output only
	}
	logging.Level = cfg.GetInt(keys.DebugLevel)

	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "tubetag exiting with error: %v\n", err)
		return 1
	}
	if err := logging.SetupLogging(paths.TubetagLogFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging, proceeding without: %v\n", err)
	}
	defer logging.Close()

	logging.I("tubetag (PID: %d) started at: %v", os.Getpid(), startTime.Format("2006-01-02 15:04:05.00 MST"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := app.Run(ctx, app.SettingsFromConfig())
	if err != nil {
		logging.E("Error: %v", err)
		return 1
	}

	logging.I("tubetag finished in %v", time.Since(startTime).Round(time.Millisecond))
	if len(summary.Failed) > 0 {
		return 2
	}
	return 0
}
