// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lumonode/setupwizard/pkg/execute"
)

// DefaultProbeURL answers 204 with no body, which keeps the connectivity
// fallback cheap on metered links.
const DefaultProbeURL = "https://www.google.com/generate_204"

const (
	scanTimeout    = 15 * time.Second
	connectTimeout = 30 * time.Second
	hiddenTimeout  = 25 * time.Second
	profileTimeout = 15 * time.Second
	upTimeout      = 20 * time.Second
	statusTimeout  = 5 * time.Second
	probeTimeout   = 3 * time.Second
)

var _ = WiFi(&NMWorker{})

// NMWorker implements the WiFi interface with the NetworkManager command
// line tool. All state changes go through nmcli; the worker itself only
// remembers which SSIDs the last scan produced, so that a connect to an
// SSID nobody broadcast can take the hidden-network path.
type NMWorker struct {
	Interface string // wireless device to scan on, "" lets nmcli choose
	ProbeURL  string // connectivity fallback endpoint
	UseSudo   bool   // prefix state-changing commands with sudo

	run      func(time.Duration, string, ...string) execute.Result
	lastScan map[string]Network
}

// NewNMWorker returns a worker bound to iface. It fails early when nmcli
// is not installed so the wizard can show one clear message instead of a
// failure per operation.
func NewNMWorker(iface string) (*NMWorker, error) {
	if _, err := exec.LookPath("nmcli"); err != nil {
		return nil, fmt.Errorf("nmcli is not installed: %v", err)
	}
	return &NMWorker{
		Interface: iface,
		ProbeURL:  DefaultProbeURL,
		UseSudo:   os.Geteuid() != 0,
	}, nil
}

func (w *NMWorker) command(timeout time.Duration, name string, arg ...string) execute.Result {
	if w.run == nil {
		w.run = execute.Run
	}
	return w.run(timeout, name, arg...)
}

// privileged runs an nmcli command that changes system state.
func (w *NMWorker) privileged(timeout time.Duration, arg ...string) execute.Result {
	if w.UseSudo {
		return w.command(timeout, "sudo", append([]string{"nmcli"}, arg...)...)
	}
	return w.command(timeout, "nmcli", arg...)
}

// Scan lists the visible networks, strongest first.
func (w *NMWorker) Scan() ([]Network, error) {
	args := []string{"-t", "-f", "SSID,SIGNAL,SECURITY", "device", "wifi", "list"}
	if w.Interface != "" {
		args = append(args, "ifname", w.Interface)
	}
	res := w.command(scanTimeout, "nmcli", args...)
	if !res.Success() {
		return nil, fmt.Errorf("Fail to scan for networks: %v", res.Output())
	}

	networks := parseScan(res.Stdout)
	w.lastScan = make(map[string]Network, len(networks))
	for _, n := range networks {
		w.lastScan[n.SSID] = n
	}
	return networks, nil
}

// parseScan turns nmcli terse output into deduplicated Network records
// sorted by signal descending, then name. Terse rows are colon-separated
// and an SSID may itself contain colons, so each row is rebuilt from the
// right: the last two fields are signal and security. Rows without an
// SSID are hidden beacons; they are dropped here and reached through
// explicit SSID entry instead.
func parseScan(out string) []Network {
	var networks []Network
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		ssid := strings.Join(fields[:len(fields)-2], ":")
		if ssid == "" || seen[ssid] {
			continue
		}
		signal, err := strconv.Atoi(fields[len(fields)-2])
		if err != nil {
			continue
		}
		seen[ssid] = true
		security := fields[len(fields)-1]
		if security == "" {
			security = "--"
		}
		networks = append(networks, Network{SSID: ssid, Signal: signal, Security: security})
	}

	sort.SliceStable(networks, func(i, j int) bool {
		if networks[i].Signal != networks[j].Signal {
			return networks[i].Signal > networks[j].Signal
		}
		return strings.ToLower(networks[i].SSID) < strings.ToLower(networks[j].SSID)
	})
	return networks
}

// Connect joins ssid and returns the tool's success message. An SSID
// that was seen in the last scan connects directly; any other SSID takes
// the hidden-network path. The password is dropped for networks the scan
// reported as open.
func (w *NMWorker) Connect(ssid, password string) (string, error) {
	if ssid == "" {
		return "", fmt.Errorf("no SSID given")
	}

	known, seen := w.lastScan[ssid]
	if !seen {
		return w.connectHidden(ssid, password)
	}
	if known.Open() {
		password = ""
	}

	args := []string{"device", "wifi", "connect", ssid}
	if password != "" {
		args = append(args, "password", password)
	}
	res := w.privileged(connectTimeout, args...)
	if !res.Success() {
		return "", fmt.Errorf("Fail to connect to %q: %v", ssid, res.Output())
	}
	return res.Stdout, nil
}

// connectHidden first asks NetworkManager for a direct connection with
// the hidden flag, then falls back to creating the profile by hand and
// bringing it up. An "already exists" answer on the add step is fine;
// the profile is simply reused.
func (w *NMWorker) connectHidden(ssid, password string) (string, error) {
	args := []string{"device", "wifi", "connect", ssid, "hidden", "yes"}
	if password != "" {
		args = append(args, "password", password)
	}
	if res := w.privileged(hiddenTimeout, args...); res.Success() {
		return res.Stdout, nil
	}

	add := []string{"connection", "add", "type", "wifi", "con-name", ssid, "ifname", "*", "ssid", ssid}
	if password != "" {
		add = append(add, "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk", PSK(ssid, password))
	}
	res := w.privileged(profileTimeout, add...)
	if !res.Success() && !strings.Contains(res.Output(), "exists") {
		return "", fmt.Errorf("Fail to create a profile for %q: %v", ssid, res.Output())
	}

	res = w.privileged(upTimeout, "connection", "up", ssid)
	if !res.Success() {
		return "", fmt.Errorf("Fail to bring up %q: %v", ssid, res.Output())
	}
	return res.Stdout, nil
}

// CurrentSSID reports the SSID of the active wireless connection, or ""
// when nothing is connected.
func (w *NMWorker) CurrentSSID() (string, error) {
	res := w.command(statusTimeout, "nmcli", "-t", "-f", "ACTIVE,SSID", "device", "wifi")
	if !res.Success() {
		return "", fmt.Errorf("Fail to query the active network: %v", res.Output())
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.HasPrefix(line, "yes:") {
			return strings.TrimPrefix(line, "yes:"), nil
		}
	}
	return "", nil
}

// Connectivity reports whether the device can reach the internet.
// NetworkManager's own judgement comes first; when nmcli cannot answer,
// a DNS lookup plus a probe fetch decide.
func (w *NMWorker) Connectivity() bool {
	res := w.command(statusTimeout, "nmcli", "-t", "-f", "CONNECTIVITY", "general")
	if res.Success() {
		return strings.Contains(res.Stdout, "full")
	}
	return w.probe()
}

func (w *NMWorker) probe() bool {
	probeURL := w.ProbeURL
	if probeURL == "" {
		probeURL = DefaultProbeURL
	}
	u, err := url.Parse(probeURL)
	if err != nil {
		return false
	}
	if _, err := net.LookupHost(u.Hostname()); err != nil {
		return false
	}

	client := http.Client{Timeout: probeTimeout}
	resp, err := client.Get(probeURL)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// LocalAddress returns the device's first private IPv4 address. The
// address list comes from hostname -I; when that command is unavailable
// the kernel's address tables are walked directly.
func (w *NMWorker) LocalAddress() (string, error) {
	res := w.command(statusTimeout, "hostname", "-I")
	if !res.Success() {
		return netlinkAddress()
	}
	if ip := firstPrivate(strings.Fields(res.Stdout)); ip != "" {
		return ip, nil
	}
	return "", fmt.Errorf("no private IPv4 address found")
}

// firstPrivate picks the first RFC 1918 IPv4 from a list of address
// strings.
func firstPrivate(addrs []string) string {
	for _, a := range addrs {
		ip := net.ParseIP(a)
		if ip == nil || ip.To4() == nil {
			continue
		}
		if ip.IsPrivate() {
			return a
		}
	}
	return ""
}
