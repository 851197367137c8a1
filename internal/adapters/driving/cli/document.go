package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fswatch "github.com/custodia-labs/docwright/internal/connectors/filesystem"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage open document sessions",
	Long: `List, extend, save or discard open document sessions.

Sessions only outlive a single command with the sqlite storage backend.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open sessions",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show <filename>",
	Short: "Show a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentAddCmd = &cobra.Command{
	Use:   "add <filename> <markdown-file>",
	Short: "Append Markdown to a session",
	Long:  `Append the contents of a Markdown file, creating the session if needed.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentAdd,
}

var documentSaveCmd = &cobra.Command{
	Use:   "save <filename>",
	Short: "Write a session to the output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSave,
}

var documentCloseCmd = &cobra.Command{
	Use:   "close <filename>",
	Short: "Save a session and end it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentClose,
}

var documentDiscardCmd = &cobra.Command{
	Use:   "discard <filename>",
	Short: "End a session without writing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDiscard,
}

var errNoDocuments = errors.New("document service not configured")

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentSaveCmd)
	documentCmd.AddCommand(documentCloseCmd)
	documentCmd.AddCommand(documentDiscardCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocuments
	}

	sessions, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		cmd.Println("No open documents.")
		return nil
	}

	for i := range sessions {
		cmd.Printf("  %s\n", sessions[i].Filename)
		if sessions[i].Title != "" {
			cmd.Printf("    Title: %s\n", sessions[i].Title)
		}
		cmd.Printf("    Elements: %d\n", len(sessions[i].Elements))
	}
	cmd.Println()
	cmd.Printf("Total: %d documents\n", len(sessions))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocuments
	}

	session, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n", session.Filename)
	cmd.Printf("  ID: %s\n", session.ID)
	cmd.Printf("  Title: %s\n", session.Title)
	cmd.Printf("  Author: %s\n", session.Author)
	cmd.Printf("  Created: %s\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated: %s\n", session.UpdatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Elements: %d\n", len(session.Elements))
	for i := range session.Elements {
		e := session.Elements[i]
		cmd.Printf("    %-11s %s\n", e.Kind, e.Text())
	}
	return nil
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocuments
	}

	content, err := os.ReadFile(fswatch.ResolvePath(args[1]))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	n, err := documentService.AddMarkdown(cmd.Context(), args[0], string(content), nil)
	if err != nil {
		return fmt.Errorf("failed to add content: %w", err)
	}
	cmd.Printf("Added %d elements to %s\n", n, args[0])
	return nil
}

func runDocumentSave(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocuments
	}

	path, err := documentService.Save(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	cmd.Printf("Saved %s\n", path)
	return nil
}

func runDocumentClose(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocuments
	}

	path, err := documentService.Close(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to close document: %w", err)
	}
	cmd.Printf("Saved %s and closed the session\n", path)
	return nil
}

func runDocumentDiscard(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocuments
	}

	if err := documentService.Discard(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to discard document: %w", err)
	}
	cmd.Printf("Discarded %s\n", args[0])
	return nil
}
