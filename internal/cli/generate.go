package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/talk/internal/templates"
	"github.com/opencode-ai/talk/internal/tui"
	"github.com/opencode-ai/talk/internal/tui/components"
)

var (
	// gen flags
	genVars        []string
	genInteractive bool
	genCopy        bool
	genNoCopy      bool

	// render flags
	renderText string
	renderFile string
	renderVars []string

	// vars flags
	varsText string
)

func init() {
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(suggestCmd)

	genCmd.Flags().StringArrayVarP(&genVars, "var", "v", nil, "variable value as key=value (repeatable)")
	genCmd.Flags().BoolVarP(&genInteractive, "interactive", "i", false, "fill values in a form")
	genCmd.Flags().BoolVarP(&genCopy, "copy", "c", false, "copy the generated text to the clipboard")
	genCmd.Flags().BoolVar(&genNoCopy, "no-copy", false, "do not copy even when clipboard.copy_on_generate is set")

	renderCmd.Flags().StringVar(&renderText, "text", "", "template text")
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "", "read template text from a file")
	renderCmd.Flags().StringArrayVarP(&renderVars, "var", "v", nil, "variable value as key=value (repeatable)")

	varsCmd.Flags().StringVar(&varsText, "text", "", "extract from text instead of a stored template")
}

var genCmd = &cobra.Command{
	Use:     "gen <template>",
	Aliases: []string{"generate"},
	Short:   "Generate text from a template",
	Long: `Fill a template's placeholders and print the result.

Placeholders without a value become empty. In a terminal, --interactive
opens a form with one field per placeholder.`,
	Example: `  talk gen "Meeting invite" --var name=Ana --var time=3pm
  talk gen invite -v name=Ana -v "note=Hi, all" --copy
  talk gen invite --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		values, err := parseVars(genVars)
		if err != nil {
			return err
		}

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		tmpl, err := service.Find(ctx, args[0])
		if err != nil {
			return err
		}

		if genInteractive {
			if IsNonInteractive() {
				return fmt.Errorf("--interactive requires a terminal")
			}
			values, err = tui.RunVariableForm(tui.FormConfig{
				Title:     tmpl.Title,
				Body:      tmpl.Body,
				Variables: templates.ExtractVariables(tmpl.Body),
				Initial:   values,
				Theme:     GetConfig().TUI.Theme,
			})
			if err != nil {
				if errors.Is(err, tui.ErrFormCancelled) {
					notifyInfo("Cancelled")
					return nil
				}
				return err
			}
		}

		result, err := service.Generate(ctx, tmpl.ID, values)
		if err != nil {
			return err
		}

		copyText := (genCopy || GetConfig().Clipboard.CopyOnGenerate) && !genNoCopy
		var copyErr error
		if copyText {
			copyErr = service.CopyToClipboard(ctx, tmpl.ID, result.Text)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			out := struct {
				TemplateID string   `json:"template_id"`
				Variables  []string `json:"variables"`
				Missing    []string `json:"missing"`
				Text       string   `json:"text"`
				Copied     bool     `json:"copied"`
			}{tmpl.ID, result.Variables, result.Missing, result.Text, copyText && copyErr == nil}
			if err := WriteOutput(os.Stdout, out); err != nil {
				return err
			}
			return copyErr
		}

		// The text is printed even when the copy fails so nothing is lost.
		printText(result.Text)
		if len(result.Missing) > 0 {
			notifyInfo("No value for %s", strings.Join(result.Missing, ", "))
		}
		if copyText {
			if copyErr != nil {
				return copyErr
			}
			notifySuccess("Copied to clipboard")
		}
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Substitute values into ad-hoc text",
	Long:  "Substitute values into text without touching the template store.",
	Example: `  talk render --text "Hello {{name}}" --var name=World
  echo "Hi {{who}}" | talk render --var who=team`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseVars(renderVars)
		if err != nil {
			return err
		}

		text, err := adHocText(cmd.Flags().Changed("text"), renderText, renderFile)
		if err != nil {
			return err
		}

		rendered := templates.ReplaceVariables(text, values)
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"variables": templates.ExtractVariables(text),
				"missing":   templates.MissingVariables(text, values),
				"text":      rendered,
			})
		}
		printText(rendered)
		return nil
	},
}

var varsCmd = &cobra.Command{
	Use:   "vars [template]",
	Short: "List the placeholders of a template",
	Long:  "List distinct placeholder names in the order they first appear.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var body string
		switch {
		case cmd.Flags().Changed("text"):
			body = varsText
		case len(args) == 1:
			service, closeLibrary, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			defer closeLibrary()

			tmpl, err := service.Find(ctx, args[0])
			if err != nil {
				return err
			}
			body = tmpl.Body
		default:
			return fmt.Errorf("template reference or --text is required")
		}

		names := templates.ExtractVariables(body)
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, names)
		}

		if len(names) == 0 {
			fmt.Println(components.NoVariables().Render(currentStyles()))
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <template> [query]",
	Short: "Suggest placeholder names",
	Long: `Suggest placeholder names for a template: names it already uses first,
then common names. An optional query filters by substring.`,
	Args: cobra.RangeArgs(1, 2),
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

		query := ""
		if len(args) == 2 {
			query = args[1]
		}
		suggestions := templates.SuggestVariables(tmpl.Body, query)

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, suggestions)
		}

		rows := make([][]string, 0, len(suggestions))
		for _, s := range suggestions {
			rows = append(rows, []string{templates.Placeholder(s.Name), formatYesNo(s.Used)})
		}
		return writeTable(os.Stdout, []string{"PLACEHOLDER", "IN USE"}, rows)
	},
}

// adHocText reads template text from --text, --file or stdin.
func adHocText(textSet bool, text, file string) (string, error) {
	switch {
	case textSet && file != "":
		return "", fmt.Errorf("use only one of --text or --file")
	case textSet:
		return text, nil
	case file != "":
		return bodySource{file: file}.read("")
	case !stdinIsTerminal():
		return bodySource{stdin: true}.read("")
	}
	return "", fmt.Errorf("--text, --file or piped input is required")
}

// printText writes text followed by a single newline.
func printText(text string) {
	if strings.HasSuffix(text, "\n") {
		fmt.Print(text)
		return
	}
	fmt.Println(text)
}
