// Command contentbuild validates CMS exports, renders templates, assembles
// GraphQL queries, crawls the built site for accessibility problems and
// publishes build assets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contentbuild/internal/cli"
)

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}
