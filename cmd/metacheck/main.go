package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/jenkins-infra/metacheck/cmd/metacheck/root"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.Execute(ctx, os.Args[1:])
	stop()
	if err == nil {
		return
	}
	// Print a short, single-line error to stderr on failures.
	// Do not print usage or stack traces.
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		msg = "error"
	}
	_, _ = os.Stderr.WriteString(msg + "\n")
	code := 1
	var ec exitCoder
	if errors.As(err, &ec) {
		if c := ec.ExitCode(); c != 0 {
			code = c
		}
	}
	os.Exit(code)
}
