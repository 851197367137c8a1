package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	fswatch "github.com/custodia-labs/docwright/internal/connectors/filesystem"
	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/normalisers"
)

var previewCmd = &cobra.Command{
	Use:   "preview <input>",
	Short: "Show the content items an input parses to",
	Long: `Parse an input file and print the content items that convert would
map into the document. Use "-" to read Markdown from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

// previewStyles decorate preview output on a terminal.
type previewStyles struct {
	enabled bool
	title   lipgloss.Style
	kind    lipgloss.Style
	marker  lipgloss.Style
}

func (p previewStyles) render(style lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return style.Render(text)
}

func newPreviewStyles(styled bool) previewStyles {
	if !styled {
		return previewStyles{}
	}
	return previewStyles{
		enabled: true,
		title:   lipgloss.NewStyle().Bold(true).Underline(true),
		kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runPreview(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errNoConversion
	}

	raw, err := readPreviewInput(cmd, args[0])
	if err != nil {
		return err
	}
	preview, err := conversionService.Preview(cmd.Context(), raw)
	if err != nil {
		return fmt.Errorf("preview %s: %w", raw.URI, err)
	}

	st := newPreviewStyles(isTerminal(cmd.OutOrStdout()))
	if preview.Title != "" {
		cmd.Println(st.render(st.title, preview.Title))
		cmd.Println()
	}
	if len(preview.Items) == 0 {
		cmd.Println("No content.")
		return nil
	}
	for i, item := range preview.Items {
		cmd.Printf("%3d %s %s\n", i+1, st.render(st.kind, describeKind(item)), describeBody(item, st))
	}
	return nil
}

func readPreviewInput(cmd *cobra.Command, arg string) (*domain.RawDocument, error) {
	if arg == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &domain.RawDocument{URI: "stdin", MIMEType: normalisers.MIMEMarkdown, Content: content}, nil
	}

	path := fswatch.ResolvePath(arg)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return &domain.RawDocument{URI: path, MIMEType: normalisers.MIMETypeForPath(path), Content: content}, nil
}

func describeKind(item domain.ContentItem) string {
	kind := item.EffectiveKind()
	switch {
	case kind == domain.ContentHeading:
		level := 1
		if item.Format != nil && item.Format.Level > 0 {
			level = item.Format.Level
		}
		return fmt.Sprintf("heading%d", level)
	case kind == domain.ContentParagraph && item.Text != nil && *item.Text == "":
		return "spacer"
	case kind == domain.ContentParagraph && item.Text != nil && *item.Text == domain.RuleText:
		return "rule"
	case item.IsBlockquote():
		return "quote"
	default:
		return kind.String()
	}
}

func describeBody(item domain.ContentItem, st previewStyles) string {
	if item.EffectiveKind().IsList() {
		marker := "-"
		lines := make([]string, len(item.Items))
		for i, entry := range item.Items {
			if item.Kind == domain.ContentOrdered {
				marker = fmt.Sprintf("%d.", i+1)
			}
			lines[i] = st.render(st.marker, marker) + " " + entry
		}
		return "\n      " + strings.Join(lines, "\n      ")
	}
	if item.Text == nil || *item.Text == domain.RuleText {
		return ""
	}
	return strings.ReplaceAll(*item.Text, "\n", "\n      ")
}
