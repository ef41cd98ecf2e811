// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package execute runs external commands with a timeout and captures their
// exit code and output. Every failure mode, including the timeout kill,
// comes back as a plain Result so callers can turn it into a message
// instead of handling errors case by case.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Verbose traces every command invocation. It does nothing by default;
// the wizard points it at log.Printf under -v and tests point it at a
// testing logger.
var Verbose = func(string, ...interface{}) {}

// Result holds the outcome of one external command with both output
// streams whitespace-trimmed.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.Code == 0
}

// Output returns stderr when present, otherwise stdout. nmcli writes its
// failure reason to stderr but reports success on stdout.
func (r Result) Output() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Run executes name with the given arguments, killing the process once
// timeout expires. It never returns an error: a timeout yields code 1
// with an explanatory Stderr, a binary that could not be started yields
// code 127.
func Run(timeout time.Duration, name string, arg ...string) Result {
	Verbose("exec: %v %v (timeout %v)", name, strings.Join(arg, " "), timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err == nil {
		return res
	}

	// The deadline check has to come first: the kill shows up as an
	// ExitError with code -1, which would otherwise be reported as a
	// plain failure with no hint that the command was slow.
	if ctx.Err() == context.DeadlineExceeded {
		res.Code = 1
		res.Stderr = fmt.Sprintf("timed out after %v", timeout)
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.Code = exitErr.ExitCode()
		return res
	}

	// Start failures (binary missing, not executable) have no exit
	// code of their own.
	res.Code = 127
	if res.Stderr == "" {
		res.Stderr = err.Error()
	}
	return res
}
