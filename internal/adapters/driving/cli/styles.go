package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Show the resolved style sheet",
	Long: `Show every style bucket after configured overrides are applied.

Pass --styles to preview the effect of a TOML override file on top of the
configuration.`,
	Args: cobra.NoArgs,
	RunE: runStyles,
}

var stylesFile string

func init() {
	stylesCmd.Flags().StringVar(&stylesFile, "styles", "", "TOML file with style overrides to layer on top")
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, _ []string) error {
	sheet := domain.DefaultStyleSheet()
	if settingsService != nil {
		configured, err := settingsService.StyleSheet()
		if err != nil {
			return fmt.Errorf("failed to load styles: %w", err)
		}
		sheet = configured
	}

	overrides, err := loadStyleFile(stylesFile)
	if err != nil {
		return err
	}
	for key, style := range overrides {
		sheet.Set(key, style)
	}

	for _, key := range domain.StyleKeys {
		cmd.Printf("%-11s %s\n", key.String()+":", describeStyle(sheet.Bucket(key)))
	}
	return nil
}

func describeStyle(s domain.ElementStyle) string {
	parts := make([]string, 0, 6)
	if s.FontName != "" {
		parts = append(parts, s.FontName)
	}
	if s.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("%gpt", s.FontSize))
	}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Color != "" {
		parts = append(parts, "#"+strings.TrimPrefix(s.Color, "#"))
	}
	if s.BorderBottom {
		parts = append(parts, "border")
	}
	if len(parts) == 0 {
		return "(inherit)"
	}
	return strings.Join(parts, ", ")
}
