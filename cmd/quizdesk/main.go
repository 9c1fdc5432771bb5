package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	c := NewConfig()

	if err := c.LoadDotEnv(os.Getwd); err != nil {
		fmt.Fprintf(os.Stderr, "can't load .env file: %v\n", err)
		os.Exit(1)
	}
	c.LoadEnv(os.Getenv)

	args, err := c.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}

	app, err := NewApp(c, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize app, sorry: %v\n", err)
		os.Exit(1)
	}

	// Initialize context that cancelled on SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "quizdesk: %v\n", err)
		os.Exit(1)
	}
}
