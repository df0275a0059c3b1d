// Package main is the entry point for the dbgsh debugger shell.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "dbgsh [dir]",
		Short:   "dbgsh — responsive terminal debugger shell",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := readFlags(cmd, args)
			if err != nil {
				return err
			}
			return executeShell(flags)
		},
	}
	root.Flags().String("config", "", "path to dbgsh.toml (default: search up from the project directory)")
	root.Flags().String("log-file", "", "write diagnostic logs to this file (overrides log.file)")
	root.Flags().Bool("no-mouse", false, "disable mouse support (splitters resize by keyboard only)")

	root.AddCommand(
		initCmd(),
		sourcesCmd(),
		historyCmd(),
	)

	return root
}

// shellFlags are the root command's resolved flags.
type shellFlags struct {
	Dir        string
	ConfigPath string
	LogFile    string
	NoMouse    bool
}

func readFlags(cmd *cobra.Command, args []string) (shellFlags, error) {
	var f shellFlags
	if len(args) == 1 {
		f.Dir = args[0]
	}
	f.ConfigPath, _ = cmd.Flags().GetString("config")
	f.LogFile, _ = cmd.Flags().GetString("log-file")
	f.NoMouse, _ = cmd.Flags().GetBool("no-mouse")
	return f, nil
}
