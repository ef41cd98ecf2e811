package main

import (
	"fmt"

	"github.com/lumonode/setupwizard/pkg/menu"
	"github.com/lumonode/setupwizard/pkg/wifi"
)

// NetworkEntry is one access point in the network menu.
type NetworkEntry struct {
	info wifi.Network
}

var _ = menu.Entry(&NetworkEntry{})

// Label is the string this network displays in the menu page.
func (n *NetworkEntry) Label() string {
	if n.info.Open() {
		return fmt.Sprintf("%s: no passphrase, signal %d", n.info.SSID, n.info.Signal)
	}
	return fmt.Sprintf("%s: %s, signal %d", n.info.SSID, n.info.Security, n.info.Signal)
}

type RescanEntry struct{}

var _ = menu.Entry(&RescanEntry{})

func (r *RescanEntry) Label() string {
	return "Rescan networks"
}

type HiddenEntry struct{}

var _ = menu.Entry(&HiddenEntry{})

func (h *HiddenEntry) Label() string {
	return "Join a hidden network"
}

// WiredEntry shows up only when the device has an ethernet link.
type WiredEntry struct{}

var _ = menu.Entry(&WiredEntry{})

func (w *WiredEntry) Label() string {
	return "Use the wired connection (DHCP)"
}

// ContinueEntry ends the current step; the result of the step is
// whatever the checks find at that moment.
type ContinueEntry struct{}

var _ = menu.Entry(&ContinueEntry{})

func (c *ContinueEntry) Label() string {
	return "Continue"
}

type EnterKeyEntry struct{}

var _ = menu.Entry(&EnterKeyEntry{})

func (e *EnterKeyEntry) Label() string {
	return "Enter an API key"
}

type RecheckEntry struct{}

var _ = menu.Entry(&RecheckEntry{})

func (r *RecheckEntry) Label() string {
	return "Check the stored key again"
}
