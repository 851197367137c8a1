package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwright/internal/adapters/driven/storage/filesystem"
	fswatch "github.com/custodia-labs/docwright/internal/connectors/filesystem"
	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/logger"
	"github.com/custodia-labs/docwright/internal/normalisers"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a document to .docx",
	Long: `Convert a Markdown, HTML, plain text or .docx file into a styled Word
document.

The output defaults to the input path with a .docx extension. Style
overrides are read from a TOML file keyed by bucket name:

  [heading1]
  font_name = "Georgia"
  font_size = 28
  color = "1F3864"

  [paragraph]
  font_size = 12

Each bucket present replaces the built-in one entirely.

Examples:
  docwright convert notes.md
  docwright convert notes.md -o out/report.docx --title "Q3 Report"
  docwright convert notes.md --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

// Convert flags.
var (
	convertOutput string
	convertTitle  string
	convertAuthor string
	convertStyles string
	convertWatch  bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output .docx path")
	convertCmd.Flags().StringVar(&convertTitle, "title", "", "Document title (default: detected from content)")
	convertCmd.Flags().StringVar(&convertAuthor, "author", "", "Document author (default: document.author setting)")
	convertCmd.Flags().StringVar(&convertStyles, "styles", "", "TOML file with style overrides")
	convertCmd.Flags().BoolVarP(&convertWatch, "watch", "w", false, "Re-convert whenever the input changes")
	rootCmd.AddCommand(convertCmd)
}

// convertJob is one resolved convert invocation.
type convertJob struct {
	input     string
	output    string
	overrides domain.StyleOverrides
	meta      domain.DocumentMeta
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errNoConversion
	}

	job, err := newConvertJob(args[0])
	if err != nil {
		return err
	}

	content, err := os.ReadFile(job.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := job.run(cmd, &domain.RawDocument{
		URI:      job.input,
		MIMEType: normalisers.MIMETypeForPath(job.input),
		Content:  content,
	}); err != nil {
		return err
	}

	if !convertWatch {
		return nil
	}
	return job.watch(cmd)
}

func newConvertJob(arg string) (*convertJob, error) {
	input := fswatch.ResolvePath(arg)
	output := convertOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + domain.DocxExtension
	} else if !strings.EqualFold(filepath.Ext(output), domain.DocxExtension) {
		output += domain.DocxExtension
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return nil, fmt.Errorf("%w: output would overwrite %s, use --output", domain.ErrInvalidInput, input)
	}

	overrides, err := loadStyleFile(convertStyles)
	if err != nil {
		return nil, err
	}

	author := convertAuthor
	if author == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			author = settings.Author
		}
	}

	return &convertJob{
		input:     input,
		output:    output,
		overrides: overrides,
		meta:      domain.DocumentMeta{Title: convertTitle, Author: author},
	}, nil
}

// loadStyleFile reads bucket overrides from a TOML file. An empty path
// yields no overrides.
func loadStyleFile(path string) (domain.StyleOverrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read styles: %w", err)
	}
	var raw map[string]domain.ElementStyle
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse styles %s: %w", path, err)
	}
	overrides, err := domain.ParseStyleOverrides(raw)
	if err != nil {
		return nil, fmt.Errorf("styles %s: %w", path, err)
	}
	return overrides, nil
}

func (j *convertJob) run(cmd *cobra.Command, raw *domain.RawDocument) error {
	defer logger.Timed("convert " + raw.URI)()

	var buf bytes.Buffer
	result, err := conversionService.Convert(cmd.Context(), raw, j.overrides, j.meta, &buf)
	if err != nil {
		return fmt.Errorf("convert %s: %w", raw.URI, err)
	}

	out, err := filesystem.NewOutputStore(filepath.Dir(j.output))
	if err != nil {
		return err
	}
	path, err := out.Write(cmd.Context(), filepath.Base(j.output), buf.Bytes())
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	cmd.Printf("Wrote %s (%d elements", path, result.Elements)
	if result.Title != "" {
		cmd.Printf(", title %q", result.Title)
	}
	cmd.Println(")")
	return nil
}

func (j *convertJob) watch(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	watcher := fswatch.New(j.input)
	defer watcher.Close()

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", j.input, err)
	}
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", j.input)

	for change := range changes {
		if change.Type == domain.ChangeDeleted {
			logger.Warn("%s was removed, waiting for it to return", j.input)
			continue
		}
		if err := j.run(cmd, &change.Document); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
