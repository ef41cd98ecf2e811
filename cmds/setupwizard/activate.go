package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumonode/setupwizard/pkg/activation"
	"github.com/lumonode/setupwizard/pkg/state"
)

func activateCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Validate an API key and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := state.NewStore(cfg.StatePath)
			st := store.Load()

			if key == "" {
				key = st.GetString(state.KeyAPIKey)
			}
			if key == "" {
				return fmt.Errorf("no API key given and none stored; pass --key")
			}

			client := activation.NewClient(cfg.APIURL)
			active, msg := client.CheckKey(key)
			fmt.Println(msg)
			if !active {
				return fmt.Errorf("key is not active")
			}

			st[state.KeyAPIKey] = key
			return store.Save(st)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "API key to validate (default: the stored key)")
	return cmd
}
