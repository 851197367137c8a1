package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the config file.

Use subcommands to change one setting at a time.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsOutputCmd = &cobra.Command{
	Use:   "output-dir <dir>",
	Short: "Set where saved documents are written",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsOutput,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage <memory|sqlite>",
	Short: "Select the session storage backend",
	Long: `Select where open document sessions are kept.

Available backends:
  memory - Sessions end with the process
  sqlite - Sessions survive restarts of the MCP server`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsStorage,
}

var settingsAuthorCmd = &cobra.Command{
	Use:   "author <name>",
	Short: "Set the default document author",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsAuthor,
}

var settingsStyleCmd = &cobra.Command{
	Use:   "style <bucket>",
	Short: "Replace one style bucket",
	Long: `Replace a style bucket in the config file. Unset flags leave the field
empty, so the whole bucket is defined by this command.

Buckets: heading1, heading2, heading3, heading4, paragraph, bullets,
ordered, blockquote.

Example:
  docwright settings style heading1 --font Georgia --size 28 --bold --color 1F3864 --border`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsStyle,
}

// Style flags.
var (
	styleFont   string
	styleSize   string
	styleBold   bool
	styleItalic bool
	styleColor  string
	styleBorder bool
)

var errNoSettings = errors.New("settings service not configured")

func init() {
	settingsStyleCmd.Flags().StringVar(&styleFont, "font", "", "Font name")
	settingsStyleCmd.Flags().StringVar(&styleSize, "size", "", "Font size in points")
	settingsStyleCmd.Flags().BoolVar(&styleBold, "bold", false, "Bold text")
	settingsStyleCmd.Flags().BoolVar(&styleItalic, "italic", false, "Italic text")
	settingsStyleCmd.Flags().StringVar(&styleColor, "color", "", "Hex colour such as 2E74B5")
	settingsStyleCmd.Flags().BoolVar(&styleBorder, "border", false, "Draw a bottom border")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsOutputCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsAuthorCmd)
	settingsCmd.AddCommand(settingsStyleCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Directory: %s\n", settings.OutputDir)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Description())
	if settings.Storage == domain.StorageSQLite {
		dir := settings.StorageDir
		if dir == "" {
			dir = "(default)"
		}
		cmd.Printf("  Directory: %s\n", dir)
	}
	cmd.Println()

	cmd.Println("[Document]")
	author := settings.Author
	if author == "" {
		author = "(not set)"
	}
	cmd.Printf("  Author: %s\n", author)

	if len(settings.Styles) > 0 {
		cmd.Println()
		cmd.Println("[Styles]")
		for _, key := range domain.StyleKeys {
			if style, ok := settings.Styles[key]; ok {
				cmd.Printf("  %s: %s\n", key, describeStyle(style))
			}
		}
	}
	return nil
}

func runSettingsOutput(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	if err := settingsService.SetOutputDir(args[0]); err != nil {
		return fmt.Errorf("failed to set output dir: %w", err)
	}
	cmd.Printf("Output directory set to %s\n", args[0])
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	backend := domain.StorageBackend(args[0])
	if err := settingsService.SetStorage(backend); err != nil {
		return fmt.Errorf("failed to set storage: %w", err)
	}
	cmd.Printf("Storage set to %s\n", backend.Description())
	return nil
}

func runSettingsAuthor(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	if err := settingsService.SetAuthor(args[0]); err != nil {
		return fmt.Errorf("failed to set author: %w", err)
	}
	cmd.Printf("Default author set to %s\n", args[0])
	return nil
}

func runSettingsStyle(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	key, err := domain.ParseStyleKey(args[0])
	if err != nil {
		return err
	}

	style := domain.ElementStyle{
		FontName:     styleFont,
		Bold:         styleBold,
		Italic:       styleItalic,
		Color:        styleColor,
		BorderBottom: styleBorder,
	}
	if styleSize != "" {
		size, err := strconv.ParseFloat(styleSize, 64)
		if err != nil {
			return fmt.Errorf("%w: size %q", domain.ErrInvalidInput, styleSize)
		}
		style.FontSize = size
	}

	if err := settingsService.SetStyle(key, style); err != nil {
		return fmt.Errorf("failed to set style: %w", err)
	}
	cmd.Printf("%s: %s\n", key, describeStyle(style))
	return nil
}
