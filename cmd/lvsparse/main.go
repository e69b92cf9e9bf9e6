// SPDX-License-Identifier: MIT

// Command lvsparse multiplies, transposes, converts and plots CSR matrices.
//
// Usage:
//
//	lvsparse multiply A.csr [B.csr] [-o C.bin] [--verify] [--metrics]
//	lvsparse transpose A.csr [-o At.csr] [--parallel]
//	lvsparse convert A.csr A.bin
//	lvsparse spy A.bin A.png
//	lvsparse devices
//
// Settings come from LVSPARSE_* variables (optionally in a .env file) and
// can be overridden per call with flags; see package config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
