// Package cli implements the quill command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillkit/quill/internal/config"
	"github.com/quillkit/quill/storage"
)

type ctxKey string

const cfgKey ctxKey = "config"

// Execute builds the root cobra.Command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the cobra root command and wires configuration.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "quill",
		Short:         "Compose, render and persist plain text documents",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(v); err != nil {
				return err
			}
			if err := config.Validate(v); err != nil {
				return err
			}
			// Stash the resolved config in context for subcommands.
			ctx := context.WithValue(cmd.Context(), cfgKey, v)
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")

	cmd.AddCommand(newComposeCmd())
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getConfig(cmd *cobra.Command) *viper.Viper {
	v := cmd.Context().Value(cfgKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: config not initialized")
		os.Exit(1)
	}
	return v.(*viper.Viper)
}

// storeFor builds the persistence backend named by the configuration.
// The returned destination string is what save messages report.
func storeFor(v *viper.Viper, path string) (storage.Store, string, error) {
	switch backend := v.GetString("storage.backend"); backend {
	case "file":
		return storage.NewFileStore(path), path, nil
	case "db":
		return storage.NewDBStore(), "database", nil
	case "memory":
		return storage.NewMemoryStore(), "memory", nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend: %q", backend)
	}
}
