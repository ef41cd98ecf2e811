package main

import (
	"fmt"

	ui "github.com/gizak/termui/v3"
	"github.com/vishvananda/netlink"

	"github.com/lumonode/setupwizard/pkg/dhclient"
	"github.com/lumonode/setupwizard/pkg/menu"
	"github.com/lumonode/setupwizard/pkg/wifi"
	"github.com/lumonode/setupwizard/pkg/wizard"
)

func defaultWirelessInterface() string {
	links, err := netlink.LinkList()
	if err != nil {
		return ""
	}
	for _, link := range links {
		if dhclient.Wireless(link.Attrs().Name) {
			return link.Attrs().Name
		}
	}
	return ""
}

func (a *app) networkEntries(networks []wifi.Network) []menu.Entry {
	entries := []menu.Entry{}
	for i := range networks {
		entries = append(entries, &NetworkEntry{info: networks[i]})
	}
	entries = append(entries, &RescanEntry{}, &HiddenEntry{})
	if a.wired {
		entries = append(entries, &WiredEntry{})
	}
	entries = append(entries, &ContinueEntry{})
	return entries
}

// networkStep runs the Wi-Fi menu until the operator continues; the
// result reports whether the device ended up online and under which
// address. Connection failures are shown and the menu comes back, they
// never end the step.
func (a *app) networkStep(uiEvents <-chan ui.Event) wizard.Result {
	if a.workerErr != nil {
		return wizard.Result{"connected": false, "error": a.workerErr.Error()}
	}

	var networks []wifi.Network
	rescan := true
	for {
		if rescan {
			rescan = false
			progress := menu.NewProgress("Scanning for wireless networks", true)
			found, err := a.worker.Scan()
			progress.Close()
			if err != nil {
				if _, derr := menu.DisplayResult([]string{err.Error()}, uiEvents); derr != nil {
					return wizard.Result{"connected": false, "error": derr.Error()}
				}
			}
			networks = found
		}

		entry, err := menu.DisplayMenu("Wi-Fi Setup", "Choose an option", a.networkEntries(networks), uiEvents)
		if err != nil {
			return wizard.Result{"connected": false, "error": err.Error()}
		}

		switch e := entry.(type) {
		case *NetworkEntry:
			password := ""
			if !e.info.Open() {
				p, err := menu.NewPasswordWindow(fmt.Sprintf("Enter password for %q:", e.info.SSID), menu.AlwaysValid, uiEvents)
				if err != nil {
					return wizard.Result{"connected": false, "error": err.Error()}
				}
				if p == "<Esc>" {
					continue
				}
				password = p
			}
			if err := a.connect(e.info.SSID, password, uiEvents); err != nil {
				return wizard.Result{"connected": false, "error": err.Error()}
			}
		case *RescanEntry:
			rescan = true
		case *HiddenEntry:
			if err := a.hiddenFlow(uiEvents); err != nil {
				return wizard.Result{"connected": false, "error": err.Error()}
			}
		case *WiredEntry:
			if err := a.wiredFlow(uiEvents); err != nil {
				return wizard.Result{"connected": false, "error": err.Error()}
			}
		case *ContinueEntry:
			progress := menu.NewProgress("Checking connectivity", true)
			connected := a.worker.Connectivity()
			ip, ierr := a.worker.LocalAddress()
			progress.Close()
			if ierr != nil {
				ip = ""
			}
			return wizard.Result{"connected": connected, "ip": ip}
		}
	}
}

// connect joins ssid and shows how it went. The returned error is only
// about the screens; a failed join is a message, not an error.
func (a *app) connect(ssid, password string, uiEvents <-chan ui.Event) error {
	progress := menu.NewProgress(fmt.Sprintf("Connecting to %s", ssid), true)
	_, err := a.worker.Connect(ssid, password)
	progress.Close()

	if err != nil {
		_, derr := menu.DisplayResult([]string{fmt.Sprintf("Failed: %v", err)}, uiEvents)
		return derr
	}

	ip, err := a.worker.LocalAddress()
	if err != nil {
		ip = "unknown"
	}
	_, derr := menu.DisplayResult([]string{fmt.Sprintf("Connected! IP: %v", ip)}, uiEvents)
	return derr
}

// hiddenFlow asks for a network name and passphrase by hand, for
// networks that do not broadcast.
func (a *app) hiddenFlow(uiEvents <-chan ui.Event) error {
	ssid, err := menu.NewInputWindow("Enter the network name:", menu.AlwaysValid, uiEvents)
	if err != nil {
		return err
	}
	if ssid == "" || ssid == "<Esc>" {
		return nil
	}
	password, err := menu.NewPasswordWindow("Enter password (empty for an open network):", menu.AlwaysValid, uiEvents)
	if err != nil {
		return err
	}
	if password == "<Esc>" {
		return nil
	}
	return a.connect(ssid, password, uiEvents)
}

// wiredFlow asks DHCP to configure the ethernet links and streams the
// progress lines into the working window.
func (a *app) wiredFlow(uiEvents <-chan ui.Event) error {
	progress := menu.NewProgress("Requesting DHCP leases", false)
	cl := make(chan string, 2)
	dhclient.Request(".*", v, cl)
	last := ""
	for msg := range cl {
		last = msg
		progress.Update(msg)
	}
	progress.Close()

	if last == "" {
		return nil
	}
	_, err := menu.DisplayResult([]string{last}, uiEvents)
	return err
}
