package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/facepointer/cli"
	"github.com/mobile-next/facepointer/commands"
	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/utils"
)

func main() {
	// device registry shared by every command
	registry := devices.NewRegistry()
	commands.SetRegistry(registry)

	// sessions register here so queued actions are flushed on exit
	shutdown := devices.NewShutdownHook()
	cli.SetShutdownHook(shutdown)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case sig := <-sigChan:
		utils.Verbose("received %s, shutting down", sig)
		if err := shutdown.Shutdown(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	case err := <-done:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
