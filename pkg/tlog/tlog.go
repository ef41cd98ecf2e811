// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlog

import (
	"testing"
)

// Testing routes log output into a test's log so verbose command traces
// show up under go test -v instead of corrupting the terminal.
type Testing struct {
	Test testing.TB
}

// Print prints its arguments to the test log.
func (t Testing) Print(v ...interface{}) {
	t.Test.Log(v...)
}

// Printf prints a formatted string to the test log.
func (t Testing) Printf(format string, v ...interface{}) {
	t.Test.Logf(format, v...)
}
