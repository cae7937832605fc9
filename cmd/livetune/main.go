// livetune lists, checks and watches live-tuned literals in source files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/phobologic/livetune/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
