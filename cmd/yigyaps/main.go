package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		if apierr.IsKind(err, apierr.KindUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Hint: run `yigyaps login` to refresh your credentials.")
		}
		os.Exit(apierr.ExitCode(err))
	}
}
