// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import "fmt"

var _ = WiFi(&StubWorker{})

// StubWorker implements the WiFi interface with canned answers so the
// screens can be driven without hardware. It records the last connect
// request for assertions.
type StubWorker struct {
	Networks   []Network
	Message    string
	ScanErr    error
	ConnectErr error
	SSID       string
	Connected  bool
	Addr       string

	LastSSID     string
	LastPassword string
	Scans        int
}

func NewStubWorker(ssid string, networks ...Network) (*StubWorker, error) {
	return &StubWorker{SSID: ssid, Networks: networks, Message: "activated"}, nil
}

func (w *StubWorker) Scan() ([]Network, error) {
	w.Scans++
	if w.ScanErr != nil {
		return nil, w.ScanErr
	}
	return w.Networks, nil
}

func (w *StubWorker) Connect(ssid, password string) (string, error) {
	w.LastSSID, w.LastPassword = ssid, password
	if w.ConnectErr != nil {
		return "", w.ConnectErr
	}
	return w.Message, nil
}

func (w *StubWorker) CurrentSSID() (string, error) {
	return w.SSID, nil
}

func (w *StubWorker) Connectivity() bool {
	return w.Connected
}

func (w *StubWorker) LocalAddress() (string, error) {
	if w.Addr == "" {
		return "", fmt.Errorf("no private IPv4 address found")
	}
	return w.Addr, nil
}
