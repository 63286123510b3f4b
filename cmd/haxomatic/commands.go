package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/muurk/haxomatic/internal/analysis"
	"github.com/muurk/haxomatic/internal/config"
	"github.com/muurk/haxomatic/internal/firmware"
	"github.com/muurk/haxomatic/internal/logging"
	"github.com/muurk/haxomatic/internal/sink"
	"github.com/muurk/haxomatic/internal/ui"
	"github.com/muurk/haxomatic/internal/variant"
)

// Command flags
var (
	configPath string
	logLevel   string
	outputDir  string
	force      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/haxomatic/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default: silent)")

	analyzeCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for result files (default: next to the image)")
	analyzeCmd.Flags().BoolVarP(&force, "force", "f", false, "Analyze even if results already exist")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the config file, applies flag overrides and sets up logging.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(outputDir, logLevel)

	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// analyzeCmd implements the 'analyze' command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Resolve gadget addresses for a decrypted application image",
	Long: `Analyze a decrypted application partition and write the gadget addresses.

This command will:
  1. Check the image is decrypted (contains the TUYA marker)
  2. Identify the SDK build from its marker strings
  3. Resolve the payload gadget, if the build has one
  4. Resolve the finish gadget, falling back to an alternative match when
     the preferred address contains a null byte
  5. Write chip.txt, address_<kind>.txt and address_finish.txt

Nothing is written unless every step succeeds. Images that already have an
address_finish.txt are skipped unless --force is given.`,
	Example: `  haxomatic analyze device_app_1.00_decrypted.bin
  haxomatic analyze dump.bin.xz --output-dir ./results
  haxomatic analyze dump.bin --force --log-level info`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	imagePath := args[0]

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ui.PrintCommandHeader(out, "Gadget Analysis", "haxomatic analyze", ui.Detail{Key: "Image", Value: imagePath})

	fileSink := sink.NewFileSink(imagePath, cfg.OutputDir)

	img, err := firmware.Load(imagePath)
	if err != nil {
		return fail(cmd, "Could not load image", err)
	}

	analyzer, err := analysis.NewDefault()
	if err != nil {
		return fail(cmd, "Variant catalog is invalid", err)
	}

	ctx := context.Background()
	var result *analysis.RunResult
	if force {
		result, err = analyzer.Run(ctx, img)
		if err == nil {
			err = fileSink.Emit(result)
		}
	} else {
		var skipped bool
		result, skipped, err = analyzer.Process(ctx, img, fileSink)
		if err == nil && skipped {
			ui.PrintWarning(out, "Already analyzed",
				ui.Detail{Key: "Marker", Value: fileSink.ArtifactPath(sink.FinishArtifact)},
				ui.Detail{Key: "Hint", Value: "use --force to analyze again"},
			)
			return nil
		}
	}
	if err != nil {
		return fail(cmd, "Analysis failed", err)
	}

	details := []ui.Detail{
		{Key: "Chipset", Value: result.Chipset},
		{Key: "Variant", Value: fmt.Sprintf("%s (pattern version %d)", result.Rule, result.PatternVersion)},
	}
	if result.Payload != nil {
		details = append(details, ui.Detail{
			Key:   "Payload (" + string(result.Payload.Kind) + ")",
			Value: sink.FormatAddress(result.Payload.Address),
		})
	}
	finish := sink.FormatAddress(result.Finish.Address)
	if result.Finish.Alternative {
		finish += " (alternative match)"
	}
	details = append(details, ui.Detail{Key: "Finish", Value: finish})
	for _, a := range sink.Artifacts(result) {
		details = append(details, ui.Detail{Key: "Wrote", Value: fileSink.ArtifactPath(a.Name)})
	}

	ui.PrintSuccess(out, "Gadgets resolved", details...)
	return nil
}

// fail prints a failure box with hints for err and marks it as reported.
func fail(cmd *cobra.Command, title string, err error) error {
	if errType := analysis.ClassifyError(err); errType != analysis.ErrTypeUnknown {
		title = fmt.Sprintf("%s (%s)", title, errType)
	}
	ui.PrintFailure(cmd.ErrOrStderr(), title, err, hintsFor(err)...)
	return &reportedError{err: err}
}

func hintsFor(err error) []string {
	switch analysis.ClassifyError(err) {
	case analysis.ErrTypeNotDecrypted:
		return []string{
			"Make sure the image is the decrypted application partition",
			"Re-run the dump dissector and use the *_app_1.00_decrypted.bin output",
		}
	case analysis.ErrTypeUnknownVariant:
		return []string{
			"This firmware build is not recognized",
			"Open a new issue and include the decrypted binary",
		}
	case analysis.ErrTypeUnsupportedVariant:
		return []string{
			"This build is known but has no gadget pattern yet",
			"See 'haxomatic variants' for the supported builds",
		}
	case analysis.ErrTypeMatchCount:
		return []string{
			"The image matched a known build but its code differs",
			"Re-run with --log-level debug to see every match offset",
		}
	case analysis.ErrTypeNullByte:
		return []string{
			"No candidate address can be embedded in the exploit payload",
		}
	case analysis.ErrTypeCatalog:
		return []string{
			"This indicates a problem with the variant catalog, please report it",
		}
	default:
		return nil
	}
}

// variantsCmd implements the 'variants' command
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the known firmware builds",
	Long: `List the firmware builds in the embedded catalog, in the order they are matched.

Builds marked unsupported are recognized but deliberately rejected, so they
are never mistaken for a later, more generic rule.`,
	Args: cobra.NoArgs,
	RunE: runVariants,
}

func runVariants(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	catalog, err := variant.Default()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderVariants(catalog))
	return nil
}

func renderVariants(catalog *variant.Catalog) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.PrimaryColor)).
		Headers("#", "RULE", "CHIPSET", "PAYLOAD", "FINISH", "MARKERS")

	for i, r := range catalog.Rules() {
		chipset, payload, finish := "unsupported", "-", "-"
		if d := r.Descriptor; d != nil {
			chipset = fmt.Sprintf("%s v%d", d.Chipset, d.PatternVersion)
			if d.Payload != nil {
				payload = fmt.Sprintf("%s %s x%d [%d]", d.Payload.Kind, d.Payload.PatternHex(),
					d.Payload.ExpectedCount, d.Payload.PreferredIndex)
			}
			finish = fmt.Sprintf("%s <=%d [%d]", d.Finish.PatternHex(), d.Finish.ExpectedCount, d.Finish.PreferredIndex)
		}
		t.Row(strconv.Itoa(i+1), r.Name, chipset, payload, finish, r.MarkerSummary())
	}

	return fmt.Sprintf("%s\n%d rules, %d supported", t.String(), catalog.Count(), len(catalog.Supported()))
}

// configCmd groups configuration file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		if err := config.NewConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = cfg.Merge("", logLevel)

		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		level := cfg.LogLevel
		if level == "" {
			level = "(silent)"
		}
		dir := cfg.OutputDir
		if dir == "" {
			dir = "(next to image)"
		}
		ui.PrintSuccess(cmd.OutOrStdout(), "Configuration",
			ui.Detail{Key: "File", Value: path},
			ui.Detail{Key: "Output dir", Value: dir},
			ui.Detail{Key: "Log level", Value: level},
		)
		return nil
	},
}
