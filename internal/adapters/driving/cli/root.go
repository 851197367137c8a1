// Package cli implements the docwright command line.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docwright/internal/core/ports/driving"
	"github.com/custodia-labs/docwright/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services wired by the composition root.
var (
	conversionService driving.ConversionService
	documentService   driving.DocumentService
	settingsService   driving.SettingsService
)

// Services groups the driving ports the commands use.
type Services struct {
	Conversion driving.ConversionService
	Document   driving.DocumentService
	Settings   driving.SettingsService
}

// BootstrapFunc builds the services from a config file path. An empty path
// means the default location. The returned cleanup releases resources.
type BootstrapFunc func(configPath string) (*Services, func(), error)

var (
	bootstrap BootstrapFunc
	cleanup   func()
)

// Persistent flags.
var (
	verbose    bool
	configPath string
)

var errNoConversion = errors.New("conversion service not configured")

var rootCmd = &cobra.Command{
	Use:   "docwright",
	Short: "Build Word documents from Markdown",
	Long: `docwright turns Markdown, HTML, plain text and existing .docx files
into styled Word documents.

Use convert for one-shot conversions, or mcp serve to let an AI assistant
build documents incrementally.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.docwright/config.toml)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		conversionService, documentService, settingsService = nil, nil, nil
		return
	}
	conversionService = s.Conversion
	documentService = s.Document
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds services once flags are
// parsed.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetColor(term.IsTerminal(int(os.Stderr.Fd())))

	if cmd == versionCmd || bootstrap == nil || conversionService != nil {
		return nil
	}

	services, release, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = release
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Close releases anything the bootstrap opened.
func Close() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}
