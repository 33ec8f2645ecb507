package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "config.yaml"

// processStart is the origin of the time axis on all plots.
var processStart = time.Now()

// options holds flags shared by all commands.
type options struct {
	port       string
	configFile string
	mock       bool
	force      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "gridscope",
		Short: "Power grid monitoring dashboard",
		Long: `gridscope reads Voltage, Current and Temperature telemetry lines from a
serial device and plots the most recent readings live.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), opts)
		},
	}

	// Disable the default help command (use --help flag instead)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVarP(&opts.port, "port", "p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", defaultConfigFile, "Configuration file path")
	rootCmd.Flags().BoolVar(&opts.mock, "mock", false, "Use simulated device instead of serial port")

	rootCmd.AddCommand(newPortsCmd())
	rootCmd.AddCommand(newInitConfigCmd(opts))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
