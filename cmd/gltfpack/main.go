// Command gltfpack converts a skinned, animated glTF asset into the
// fixed-layout binary files the runtime renderer loads directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gltfpack/internal/config"
	"gltfpack/internal/logging"
)

var (
	flagConfig  string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "gltfpack",
		Short:         "Pack glTF assets into runtime binary files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to gltfpack.toml")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newExtractCmd(), newInspectCmd(), newBatchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the optional config file with flag overrides and applies
// defaults.
func loadConfig(flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if flagConfig != "" {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
	}
	flags.Verbose = flags.Verbose || flagVerbose
	cfg.Resolve(flags)
	logging.SetVerbose(cfg.Verbose)
	return cfg, nil
}
