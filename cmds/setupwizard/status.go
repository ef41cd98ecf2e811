package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumonode/setupwizard/pkg/wifi"
)

type statusReport struct {
	Interface string `json:"interface,omitempty"`
	SSID      string `json:"ssid,omitempty"`
	Connected bool   `json:"connected"`
	IP        string `json:"ip,omitempty"`
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report connectivity and the active network as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			worker, err := wifi.NewNMWorker(cfg.Interface)
			if err != nil {
				return err
			}
			worker.ProbeURL = cfg.ProbeURL

			report := statusReport{Interface: cfg.Interface}
			report.Connected = worker.Connectivity()
			if ssid, err := worker.CurrentSSID(); err == nil {
				report.SSID = ssid
			}
			if ip, err := worker.LocalAddress(); err == nil {
				report.IP = ip
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
