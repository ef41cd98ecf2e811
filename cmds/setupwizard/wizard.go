package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	ui "github.com/gizak/termui/v3"
	"golang.org/x/sys/unix"

	"github.com/lumonode/setupwizard/pkg/activation"
	"github.com/lumonode/setupwizard/pkg/dhclient"
	"github.com/lumonode/setupwizard/pkg/menu"
	"github.com/lumonode/setupwizard/pkg/state"
	"github.com/lumonode/setupwizard/pkg/wifi"
	"github.com/lumonode/setupwizard/pkg/wizard"
)

// app holds what the wizard screens share. worker is nil when nmcli is
// not around; workerErr then says why.
type app struct {
	worker    wifi.WiFi
	workerErr error
	store     *state.Store
	client    *activation.Client
	wired     bool
}

func isTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}

func runWizard() error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("stdout is not a terminal; use the scan, status and activate subcommands instead")
	}

	if cfg.Interface == "" {
		cfg.Interface = defaultWirelessInterface()
	}
	verbose("Using wireless interface %q, state file %q", cfg.Interface, cfg.StatePath)

	a := &app{
		store:  state.NewStore(cfg.StatePath),
		client: activation.NewClient(cfg.APIURL),
	}
	if worker, err := wifi.NewNMWorker(cfg.Interface); err != nil {
		a.workerErr = err
	} else {
		worker.ProbeURL = cfg.ProbeURL
		a.worker = worker
	}
	if links, err := dhclient.WiredLinks(".*"); err == nil && len(links) > 0 {
		a.wired = true
	}

	// The UI owns the terminal from here on; log lines go to a file.
	if f, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		log.SetOutput(f)
		defer func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}()
	}

	if err := menu.Init(); err != nil {
		return fmt.Errorf("Fail to initialize a terminal screen: %v", err)
	}

	uiEvents := ui.PollEvents()
	final := wizard.Run(wizard.Screens{
		Network:    func() wizard.Result { return a.networkStep(uiEvents) },
		Activation: func() wizard.Result { return a.activationStep(uiEvents) },
		Summary:    func(r wizard.Result) { a.summaryStep(r, uiEvents) },
	})

	menu.Close()
	verbose("Wizard finished: %v", final)

	out, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return fmt.Errorf("Fail to encode the summary: %v", err)
	}
	fmt.Println(string(out))
	return nil
}
