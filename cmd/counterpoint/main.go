// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command counterpoint checks two-voice species counterpoint exercises.
//
// Usage:
//
//	counterpoint analyze exercise.yaml --species 2
//	counterpoint rules
//	counterpoint config --species 1 > overrides.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/counterpoint/pkg/ux"
)

// Exit codes.
const (
	exitOK       = 0
	exitFindings = 1
	exitFailure  = 2
)

// codedError carries a process exit code. A nil err means the code speaks
// for itself and nothing is printed.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func failure(err error) error {
	return &codedError{code: exitFailure, err: err}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, opts := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := opts.close(context.Background()); cerr != nil {
		ux.Warning(stderr, cerr.Error())
	}
	if err == nil {
		return exitOK
	}

	var ce *codedError
	if errors.As(err, &ce) {
		if ce.err != nil {
			ux.Error(stderr, ce.err.Error())
		}
		return ce.code
	}
	ux.Error(stderr, err.Error())
	return exitFailure
}
