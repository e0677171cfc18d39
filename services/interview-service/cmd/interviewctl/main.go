// Command interviewctl runs maintenance tasks against the interview database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/md-rashed-zaman/mockinterview/libs/config"
	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, stop := runtime.SignalContext(context.Background())
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
