// Haxomatic locates exploit gadget addresses in decrypted Tuya firmware.
//
// Given the decrypted application partition of a BK7231T or BK7231N
// device, it identifies the SDK build, finds the payload and finish
// gadgets for that build and writes them as sidecar text files for the
// downstream exploit tooling:
//
//	haxomatic analyze device_app_1.00_decrypted.bin
//
// See 'haxomatic --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/haxomatic/internal/logging"
	"github.com/muurk/haxomatic/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// reportedError marks an error that was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "haxomatic",
	Short: "Find exploit gadget addresses in decrypted Tuya firmware",
	Long: `Locate the payload and finish gadget addresses in a decrypted
application partition.

The firmware build is identified from SDK marker strings, the matching
byte patterns are searched, and the resulting Thumb addresses are checked
so they can be embedded in a string payload (no null bytes).

Results are written next to the image:
  <name>chip.txt              chipset identifier
  <name>address_<kind>.txt    payload gadget (datagram, ssid or passwd)
  <name>address_finish.txt    finish gadget

An image is skipped when its address_finish.txt already exists.`,
	Version:       version.Version,
	SilenceErrors: true,
	Example: `  # Analyze a dump produced by the dissector
  haxomatic analyze device_app_1.00_decrypted.bin

  # Write results to another directory with debug logging
  haxomatic analyze dump.bin --output-dir ./out --log-level debug

  # List the known firmware builds
  haxomatic variants`,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "haxomatic %s\n", version.Full())
	},
}
