// Command regexwith generates regex-backed parsers for annotated Go types.
//
// A type opts in with a directive in its doc comment:
//
//	//regexwith:capturable re="^(?P<id>\d+)$"
//	//regexwith:fromstr
//	type Record struct {
//		ID uint64 `regex:"id"`
//	}
//
// Running regexwith gen (typically from a //go:generate line) writes a
// regexwith_gen.go next to the type with a capture provider, a ParseRecord
// function and an UnmarshalText method.
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

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
