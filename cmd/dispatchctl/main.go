// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Command dispatchctl inspects and exercises dispatch manifests: it resolves command
// lines against a manifest, prints its command tree, generates shell completion and
// runs command lines with handlers that print the bound call.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	os.Exit(a.run(ctx, os.Args[1:]))
}
