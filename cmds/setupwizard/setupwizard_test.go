package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	ui "github.com/gizak/termui/v3"

	"github.com/lumonode/setupwizard/pkg/activation"
	"github.com/lumonode/setupwizard/pkg/state"
	"github.com/lumonode/setupwizard/pkg/wifi"
	"github.com/lumonode/setupwizard/pkg/wizard"
)

func pressKey(ch chan ui.Event, input []string) {
	var key ui.Event
	for _, id := range input {
		key = ui.Event{
			Type: ui.KeyboardEvent,
			ID:   id,
		}
		ch <- key
	}
}

func typeText(text string) []string {
	return append(strings.Split(text, ""), "<Enter>")
}

func newTestApp(t *testing.T, worker wifi.WiFi, apiURL string) *app {
	t.Helper()
	return &app{
		worker: worker,
		store:  state.NewStore(filepath.Join(t.TempDir(), "app_state.json")),
		client: activation.NewClient(apiURL),
	}
}

func TestNetworkStep(t *testing.T) {
	// Menu layout with two networks: [0] lab42, [1] cafe, [2] rescan,
	// [3] hidden, [4] continue.
	networks := []wifi.Network{
		{SSID: "lab42", Signal: 88, Security: "WPA2"},
		{SSID: "cafe", Signal: 61},
	}

	t.Run("continue_reports_connectivity", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks, Connected: true, Addr: "10.0.0.9"}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"4", "<Enter>"})

		r := a.networkStep(uiEvents)

		if !r.Bool("connected") {
			t.Errorf("Incorrect value for connected. got: false, want: true")
		}
		if r["ip"] != "10.0.0.9" {
			t.Errorf("Incorrect value for ip. got: %v, want: %v", r["ip"], "10.0.0.9")
		}
		if stub.Scans != 1 {
			t.Errorf("Incorrect value for scans. got: %v, want: %v", stub.Scans, 1)
		}
	})

	t.Run("secured_network_asks_for_a_password", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks, Connected: true, Addr: "10.0.0.9"}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		input := []string{"0", "<Enter>"}
		input = append(input, typeText("pw")...)
		input = append(input, "q", "4", "<Enter>")
		go pressKey(uiEvents, input)

		r := a.networkStep(uiEvents)

		if stub.LastSSID != "lab42" {
			t.Errorf("Incorrect value for ssid. got: %v, want: %v", stub.LastSSID, "lab42")
		}
		if stub.LastPassword != "pw" {
			t.Errorf("Incorrect value for password. got: %v, want: %v", stub.LastPassword, "pw")
		}
		if !r.Bool("connected") {
			t.Errorf("Incorrect value for connected. got: false, want: true")
		}
	})

	t.Run("open_network_skips_the_password", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks, Connected: true, Addr: "10.0.0.9"}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"1", "<Enter>", "q", "4", "<Enter>"})

		a.networkStep(uiEvents)

		if stub.LastSSID != "cafe" {
			t.Errorf("Incorrect value for ssid. got: %v, want: %v", stub.LastSSID, "cafe")
		}
		if stub.LastPassword != "" {
			t.Errorf("Incorrect value for password. got: %v, want: %v", stub.LastPassword, "")
		}
	})

	t.Run("escape_backs_out_of_the_password", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"0", "<Enter>", "<Escape>", "4", "<Enter>"})

		a.networkStep(uiEvents)

		if stub.LastSSID != "" {
			t.Errorf("Incorrect value for ssid. got: %v, want: no connect attempt", stub.LastSSID)
		}
	})

	t.Run("failed_connect_keeps_the_menu", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks, ConnectErr: errors.New("nope")}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"1", "<Enter>", "q", "4", "<Enter>"})

		r := a.networkStep(uiEvents)

		if stub.LastSSID != "cafe" {
			t.Errorf("Incorrect value for ssid. got: %v, want: %v", stub.LastSSID, "cafe")
		}
		if r.Bool("connected") {
			t.Errorf("Incorrect value for connected. got: true, want: false")
		}
	})

	t.Run("rescan_runs_another_scan", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"2", "<Enter>", "4", "<Enter>"})

		a.networkStep(uiEvents)

		if stub.Scans != 2 {
			t.Errorf("Incorrect value for scans. got: %v, want: %v", stub.Scans, 2)
		}
	})

	t.Run("hidden_network_flow", func(t *testing.T) {
		stub := &wifi.StubWorker{Networks: networks, Connected: true, Addr: "10.0.0.9"}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		input := []string{"3", "<Enter>"}
		input = append(input, typeText("backroom")...)
		input = append(input, "<Enter>") // empty password, open network
		input = append(input, "q", "4", "<Enter>")
		go pressKey(uiEvents, input)

		a.networkStep(uiEvents)

		if stub.LastSSID != "backroom" {
			t.Errorf("Incorrect value for ssid. got: %v, want: %v", stub.LastSSID, "backroom")
		}
		if stub.LastPassword != "" {
			t.Errorf("Incorrect value for password. got: %v, want: %v", stub.LastPassword, "")
		}
	})

	t.Run("scan_error_still_shows_the_actions", func(t *testing.T) {
		stub := &wifi.StubWorker{ScanErr: errors.New("scan failed")}
		a := newTestApp(t, stub, "")
		uiEvents := make(chan ui.Event)
		// Without networks the actions move up: [0] rescan, [1] hidden,
		// [2] continue.
		go pressKey(uiEvents, []string{"q", "2", "<Enter>"})

		r := a.networkStep(uiEvents)

		if r.Bool("connected") {
			t.Errorf("Incorrect value for connected. got: true, want: false")
		}
	})

	t.Run("missing_worker_fails_the_step", func(t *testing.T) {
		a := newTestApp(t, nil, "")
		a.workerErr = errors.New("nmcli not found")
		uiEvents := make(chan ui.Event)

		r := a.networkStep(uiEvents)

		if r.Bool("connected") {
			t.Errorf("Incorrect value for connected. got: true, want: false")
		}
		if r["error"] != "nmcli not found" {
			t.Errorf("Incorrect value for error. got: %v, want: %v", r["error"], "nmcli not found")
		}
	})
}

func activationServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("key") {
		case "good-key":
			fmt.Fprintln(w, `{"active": true}`)
		case "pending-key":
			fmt.Fprintln(w, `{"active": false}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestActivationStep(t *testing.T) {
	// Activation menu layout: [0] enter key, [1] recheck, [2] continue.

	t.Run("no_key_mints_a_code", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"q", "2", "<Enter>"})

		r := a.activationStep(uiEvents)

		if r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: true, want: false")
		}
		code := a.store.Load().GetString(state.KeyActivationCode)
		if len(code) != 6 {
			t.Errorf("Incorrect value for code %q. got length: %v, want: %v", code, len(code), 6)
		}
	})

	t.Run("valid_key_is_persisted", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		uiEvents := make(chan ui.Event)
		input := []string{"q", "0", "<Enter>"}
		input = append(input, typeText("good-key")...)
		input = append(input, "q", "2", "<Enter>")
		go pressKey(uiEvents, input)

		r := a.activationStep(uiEvents)

		if !r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: false, want: true")
		}
		if got := a.store.Load().GetString(state.KeyAPIKey); got != "good-key" {
			t.Errorf("Incorrect value for stored key. got: %v, want: %v", got, "good-key")
		}
	})

	t.Run("invalid_key_is_not_persisted", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		uiEvents := make(chan ui.Event)
		input := []string{"q", "0", "<Enter>"}
		input = append(input, typeText("bad")...)
		input = append(input, "q", "2", "<Enter>")
		go pressKey(uiEvents, input)

		r := a.activationStep(uiEvents)

		if r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: true, want: false")
		}
		if got := a.store.Load().GetString(state.KeyAPIKey); got != "" {
			t.Errorf("Incorrect value for stored key. got: %v, want: none", got)
		}
	})

	t.Run("existing_key_counts_as_activated", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		if err := a.store.Save(state.State{state.KeyAPIKey: "pending-key"}); err != nil {
			t.Fatalf("Fail to seed state: %v", err)
		}
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"q", "2", "<Enter>"})

		r := a.activationStep(uiEvents)

		if !r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: false, want: true")
		}
	})

	t.Run("recheck_uses_the_stored_key", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		if err := a.store.Save(state.State{state.KeyAPIKey: "good-key"}); err != nil {
			t.Fatalf("Fail to seed state: %v", err)
		}
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"q", "1", "<Enter>", "q", "2", "<Enter>"})

		r := a.activationStep(uiEvents)

		if !r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: false, want: true")
		}
	})

	t.Run("recheck_without_a_key", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"q", "1", "<Enter>", "q", "2", "<Enter>"})

		r := a.activationStep(uiEvents)

		if r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: true, want: false")
		}
	})

	t.Run("empty_key_asks_again", func(t *testing.T) {
		srv := activationServer(t)
		a := newTestApp(t, nil, srv.URL)
		uiEvents := make(chan ui.Event)
		go pressKey(uiEvents, []string{"q", "0", "<Enter>", "<Enter>", "q", "2", "<Enter>"})

		r := a.activationStep(uiEvents)

		if r.Bool("activated") {
			t.Errorf("Incorrect value for activated. got: true, want: false")
		}
	})
}

func TestSummaryMessage(t *testing.T) {
	for _, tt := range []struct {
		name string
		r    wizard.Result
		want string
	}{
		{
			name: "error_wins",
			r:    wizard.Result{"error": "Network not connected", "activated": true},
			want: "❌ Network not connected",
		},
		{
			name: "activated",
			r:    wizard.Result{"activated": true},
			want: "✅ Device activated and ready!",
		},
		{
			name: "connected_only",
			r:    wizard.Result{"connected": true, "ip": "192.168.1.7"},
			want: "✅ Connected to network. IP: 192.168.1.7",
		},
		{
			name: "incomplete",
			r:    wizard.Result{"activated": false},
			want: "⚠️  Setup incomplete.",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := summaryMessage(tt.r); got != tt.want {
				t.Errorf("Incorrect value for message. got: %v, want: %v", got, tt.want)
			}
		})
	}
}
