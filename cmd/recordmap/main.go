// Package main provides the recordmap command.
//
// recordmap reads and writes flat record files described by a YAML layout:
//   - check validates a layout file and compiles its record layouts
//   - layout prints the resolved positions and sizes of every record
//   - parse reads a flat file and writes one JSON object per record
//   - format reads JSON objects and writes them as a flat file
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
