package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hostlink/jvmbridge/config"
)

var rootCmd = &cobra.Command{
	Use:   "bridgedemo",
	Short: "Exercise the exception bridge against an in-memory VM",
	Long:  `bridgedemo drives the throw, trace and translation machinery against a simulated managed runtime, printing what crosses the boundary.`,
}

var configPath string

func main() {
	rootCmd.AddCommand(throwCmd)
	rootCmd.AddCommand(traceCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to bridge.toml (default: search upward)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	cobra.OnInitialize(setupColor, setupConfig)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupColor() {
	switch mode, _ := rootCmd.PersistentFlags().GetString("color"); mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func setupConfig() {
	path := configPath
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil || !ok {
			return
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Apply(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
