// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

// Network is one access point seen in a scan. Records are ephemeral and
// rebuilt on every scan; the SSID is the only identity they carry.
type Network struct {
	SSID     string `json:"ssid"`
	Signal   int    `json:"signal"`   // percent, 0-100
	Security string `json:"security"` // nmcli's security column, "--" when open
}

// Open reports whether the network takes no passphrase.
func (n Network) Open() bool {
	switch n.Security {
	case "", "--", "NONE":
		return true
	}
	return false
}

type WiFi interface {
	Scan() ([]Network, error)
	Connect(ssid, password string) (string, error)
	CurrentSSID() (string, error)
	Connectivity() bool
	LocalAddress() (string, error)
}
