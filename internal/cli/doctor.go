package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tk-ops/certops/internal/config"
	certerrors "github.com/tk-ops/certops/internal/errors"
	"github.com/tk-ops/certops/internal/openssl"
	"github.com/tk-ops/certops/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that certificate inspection can run on this system",
	Long: `Run diagnostic checks for the certops environment.

Checks:
  - openssl installation and version
  - Configuration file validity
  - Display timezone availability

Examples:
  certops doctor`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	checks := runChecks()

	failed := false
	for _, c := range checks {
		switch c.Status {
		case "success":
			output.Success("%s", c.Message)
		case "warning":
			output.Warn("%s", c.Message)
		default:
			output.Error("%s", c.Message)
			failed = true
		}
	}

	if failed {
		return certerrors.Config("environment checks failed")
	}
	return nil
}

func runChecks() []CheckResult {
	var checks []CheckResult

	cfg, err := config.Load()
	if err != nil {
		checks = append(checks, CheckResult{Status: "error", Message: "Configuration: " + err.Error()})
		cfg = config.New()
	} else {
		checks = append(checks, CheckResult{Status: "success", Message: "Configuration loaded"})
	}
	openssl.SetBinary(cfg.OpenSSLBinary)

	if openssl.IsInstalled() {
		if v, err := openssl.Version(); err == nil {
			checks = append(checks, CheckResult{Status: "success", Message: "openssl: " + v})
		} else {
			checks = append(checks, CheckResult{Status: "warning", Message: "openssl found but version check failed: " + err.Error()})
		}
	} else {
		checks = append(checks, CheckResult{Status: "error", Message: "openssl not found on PATH"})
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		checks = append(checks, CheckResult{Status: "error", Message: "Timezone " + cfg.Timezone + " not loadable"})
	} else {
		checks = append(checks, CheckResult{Status: "success", Message: "Timezone " + cfg.Timezone + " available"})
	}

	return checks
}
