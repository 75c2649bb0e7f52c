package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/talk/internal/library"
	"github.com/opencode-ai/talk/internal/models"
	"github.com/opencode-ai/talk/internal/templates"
	"github.com/opencode-ai/talk/internal/tui/components"
)

var (
	// add flags
	addTitle  string
	addSource bodySource

	// edit flags
	editTitle  string
	editSource bodySource

	// list flags
	listTable bool
	listLimit int

	// rm flags
	rmForce bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dupCmd)
	rootCmd.AddCommand(rmCmd)

	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "template title (required)")
	addCmd.Flags().StringVarP(&addSource.text, "body", "b", "", "template body")
	addCmd.Flags().StringVarP(&addSource.file, "file", "f", "", "read the body from a file")
	addCmd.Flags().BoolVar(&addSource.stdin, "stdin", false, "read the body from stdin")
	addCmd.Flags().BoolVarP(&addSource.editor, "editor", "e", false, "write the body in $EDITOR")
	addCmd.MarkFlagRequired("title")

	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editSource.text, "body", "b", "", "new body")
	editCmd.Flags().StringVarP(&editSource.file, "file", "f", "", "read the new body from a file")
	editCmd.Flags().BoolVar(&editSource.stdin, "stdin", false, "read the new body from stdin")
	editCmd.Flags().BoolVarP(&editSource.editor, "editor", "e", false, "edit the body in $EDITOR")

	listCmd.Flags().BoolVar(&listTable, "table", false, "show a compact table instead of cards")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show at most n templates")

	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "delete without confirmation")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a template",
	Long: `Create a template. Placeholders are written as {{name}} where name starts
with a letter or underscore followed by letters, digits or underscores.`,
	Example: `  talk add --title "Meeting invite" --body "Hi {{name}}, see you at {{time}}."
  talk add --title Reminder --file reminder.txt
  talk add --title Notes --editor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		body, err := addSource.read("")
		if err != nil {
			return err
		}

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		tmpl, err := service.Create(ctx, library.CreateInput{Title: addTitle, Body: body})
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}

		notifySuccess("Template %q created", tmpl.Title)
		printTemplateSummary(tmpl)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <template>",
	Short: "Edit a template",
	Long: `Change the title or body of a template. Without --title or a body flag the
body opens in $EDITOR.`,
	Example: `  talk edit "Meeting invite" --title "Team meeting"
  talk edit 3f2a --file invite.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		tmpl, err := service.Find(ctx, args[0])
		if err != nil {
			return err
		}

		input := library.UpdateInput{Title: tmpl.Title, Body: tmpl.Body}
		if cmd.Flags().Changed("title") {
			input.Title = editTitle
		}

		source := editSource
		if !source.set() && !cmd.Flags().Changed("title") {
			source.editor = true
		}
		if source.set() {
			body, err := source.read(tmpl.Body)
			if err != nil {
				return err
			}
			input.Body = body
		}

		updated, err := service.Update(ctx, tmpl.ID, input)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, updated)
		}

		if !templateChanged(tmpl, updated) {
			notifyInfo("No changes to %q", updated.Title)
			return nil
		}
		notifySuccess("Template %q updated", updated.Title)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	Long:    "List stored templates, newest first.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		items, err := service.List(ctx)
		if err != nil {
			return err
		}
		if listLimit > 0 && len(items) > listLimit {
			items = items[:listLimit]
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, items)
		}

		styleSet := currentStyles()
		if len(items) == 0 {
			fmt.Println(components.EmptyTemplates().Render(styleSet))
			return nil
		}

		if listTable || noColor {
			return writeTemplateTable(items, time.Now())
		}

		now := time.Now()
		for i, tmpl := range items {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(components.TemplateCard{Template: tmpl, Width: 72, Now: now}.Render(styleSet))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show a template",
	Long:  "Show a template with its placeholders.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		tmpl, err := service.Find(ctx, args[0])
		if err != nil {
			return err
		}

		variables := templates.ExtractVariables(tmpl.Body)
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, struct {
				*models.Template
				Variables []string `json:"variables"`
			}{tmpl, variables})
		}

		styleSet := currentStyles()
		fmt.Printf("Template: %s\n", tmpl.Title)
		fmt.Printf("  ID:        %s\n", tmpl.ID)
		fmt.Printf("  Created:   %s\n", tmpl.CreatedAt.Local().Format(time.RFC3339))
		fmt.Printf("  Updated:   %s\n", tmpl.UpdatedAt.Local().Format(time.RFC3339))
		if len(variables) > 0 {
			fmt.Printf("  Variables: %s\n", strings.Join(variables, ", "))
		} else {
			fmt.Printf("  Variables: none\n")
		}
		fmt.Println()
		if noColor {
			fmt.Println(tmpl.Body)
		} else {
			fmt.Println(components.HighlightPlaceholders(tmpl.Body, styleSet))
		}
		return nil
	},
}

var dupCmd = &cobra.Command{
	Use:   "dup <template>",
	Short: "Duplicate a template",
	Long:  "Create a new template with the title and body of an existing one.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		source, err := service.Find(ctx, args[0])
		if err != nil {
			return err
		}

		tmpl, err := service.Duplicate(ctx, source.ID)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}

		notifySuccess("Duplicated %q", source.Title)
		printTemplateSummary(tmpl)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <template>",
	Aliases: []string{"delete"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		tmpl, err := service.Find(ctx, args[0])
		if err != nil {
			return err
		}

		if !rmForce {
			if IsNonInteractive() {
				return fmt.Errorf("refusing to delete %q without --force in non-interactive mode", tmpl.Title)
			}
			if !confirm(fmt.Sprintf("Delete template %q?", tmpl.Title)) {
				notifyInfo("Cancelled")
				return nil
			}
		}

		if err := service.Delete(ctx, tmpl.ID); err != nil {
			if errors.Is(err, library.ErrTemplateNotFound) {
				return fmt.Errorf("template %q was already deleted", tmpl.Title)
			}
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{"deleted": true, "id": tmpl.ID})
		}

		notifySuccess("Deleted %q", tmpl.Title)
		return nil
	},
}

// templateChanged compares content; UpdatedAt can stay put when the clock
// has not advanced.
func templateChanged(before, after *models.Template) bool {
	return before.Title != after.Title || before.Body != after.Body
}

func printTemplateSummary(tmpl *models.Template) {
	fmt.Printf("  ID:        %s\n", tmpl.ID)
	fmt.Printf("  Title:     %s\n", tmpl.Title)
	variables := templates.ExtractVariables(tmpl.Body)
	if len(variables) > 0 {
		fmt.Printf("  Variables: %s\n", strings.Join(variables, ", "))
	}
}

func writeTemplateTable(items []*models.Template, now time.Time) error {
	rows := make([][]string, 0, len(items))
	for _, tmpl := range items {
		rows = append(rows, []string{
			shortTemplateID(tmpl.ID),
			tmpl.Title,
			fmt.Sprintf("%d", len(templates.ExtractVariables(tmpl.Body))),
			components.FormatAge(now.Sub(tmpl.UpdatedAt)),
		})
	}
	return writeTable(os.Stdout, []string{"ID", "TITLE", "VARS", "UPDATED"}, rows)
}

func shortTemplateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
