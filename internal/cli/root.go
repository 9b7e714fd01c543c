package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tk-ops/certops/internal/logger"
)

var (
	verbose bool
	version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "certops",
	Short: "TLS certificate operations CLI",
	Long: `certops is a CLI tool for inspecting TLS certificates on managed
appliances.

It reads a PEM chain from a local file or captures one from a live TLS
endpoint, reports each certificate's identity fields as JSON, and
computes the renewal deadline for the leaf certificate.`,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
