package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumonode/setupwizard/pkg/wifi"
)

func scanCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the visible Wi-Fi networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			worker, err := wifi.NewNMWorker(cfg.Interface)
			if err != nil {
				return err
			}
			networks, err := worker.Scan()
			if err != nil {
				return err
			}

			if jsonOut {
				out, err := json.MarshalIndent(networks, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			for _, n := range networks {
				fmt.Printf("%-32s %3d%%  %s\n", n.SSID, n.Signal, n.Security)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the scan as JSON")
	return cmd
}
