package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"

	"github.com/bmavalos/netlog-agent/internal/runner"
)

func main() {
	options := runner.ParseOptions()
	netlogRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup close handler
	go func() {
		<-c
		fmt.Println("\r- Ctrl+C pressed in Terminal, Exiting...")
		netlogRunner.Close()
		cancel()
	}()

	if err := netlogRunner.Run(ctx); err != nil {
		gologger.Fatal().Msgf("Could not run netlog-agent: %s\n", err)
	}
}
