// Package main is the first-boot setup wizard for lumonode devices: it
// walks the operator through joining a network and activating the
// device against the fleet API, then prints a JSON summary for the
// provisioning harness to parse.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumonode/setupwizard/pkg/config"
	"github.com/lumonode/setupwizard/pkg/execute"
)

var (
	v       = false
	verbose = func(string, ...interface{}) {}

	cfgPath   string
	ifaceFlag string
	stateFlag string
	apiFlag   string

	cfg config.Config
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "setupwizard",
		Short:        "First-boot setup wizard for lumonode devices",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			if ifaceFlag != "" {
				cfg.Interface = ifaceFlag
			}
			if stateFlag != "" {
				cfg.StatePath = stateFlag
			}
			if apiFlag != "" {
				cfg.APIURL = apiFlag
			}
			if v {
				verbose = log.Printf
				execute.Verbose = log.Printf
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path of the config file (default "+config.DefaultPath+")")
	root.PersistentFlags().BoolVarP(&v, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVar(&ifaceFlag, "interface", "", "wireless interface (default: the first wireless link)")
	root.PersistentFlags().StringVar(&stateFlag, "state", "", "path of the state file")
	root.PersistentFlags().StringVar(&apiFlag, "api", "", "base URL of the activation service")

	root.AddCommand(scanCmd(), statusCmd(), activateCmd())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
