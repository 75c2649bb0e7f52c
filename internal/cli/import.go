package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/talk/internal/models"
	"github.com/opencode-ai/talk/internal/templates"
)

var (
	importBuiltin    bool
	importDuplicates bool

	exportDir   string
	exportForce bool
)

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)

	importCmd.Flags().BoolVar(&importBuiltin, "builtin", false, "import only the builtin starter templates")
	importCmd.Flags().BoolVar(&importDuplicates, "allow-duplicates", false, "import templates whose title already exists")

	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "write one YAML file per template into this directory")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite existing files")
}

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import starter templates",
	Long: `Import starter templates from YAML files.

Without a directory, templates are read from the search paths
(.talk/templates, ~/.config/talk/templates, /usr/share/talk/templates)
followed by the builtins. Templates whose title already exists are skipped.`,
	Example: `  talk import ./templates
  talk import --builtin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		starters, err := loadStarters(args)
		if err != nil {
			return err
		}

		service, closeLibrary, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer closeLibrary()

		existing, err := service.List(ctx)
		if err != nil {
			return err
		}

		pending := starters
		skipped := 0
		if !importDuplicates {
			pending, skipped = withoutExistingTitles(starters, existing)
		}

		step := startProgress(os.Stderr, "Importing templates")
		added, err := service.Import(ctx, pending)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done(fmt.Sprintf("%d added, %d skipped", added, skipped))

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]int{"imported": added, "skipped": skipped})
		}

		notifySuccess("Imported %d templates (%d skipped)", added, skipped)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export templates as YAML",
	Long: `Export stored templates in the starter template format so they can be
imported elsewhere. Without --dir the YAML documents are written to stdout.`,
	Args: cobra.NoArgs,
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
		starters := toStarters(items)

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, starters)
		}

		if exportDir == "" {
			for i, starter := range starters {
				data, err := templates.MarshalTemplate(starter)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Println("---")
				}
				fmt.Print(string(data))
			}
			return nil
		}

		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return fmt.Errorf("failed to create export dir: %w", err)
		}
		if !exportForce {
			for _, starter := range starters {
				path := filepath.Join(exportDir, starter.Name+".yaml")
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
		}
		step := startProgress(os.Stderr, "Writing "+exportDir)
		written := 0
		for _, starter := range starters {
			path := filepath.Join(exportDir, starter.Name+".yaml")
			data, err := templates.MarshalTemplate(starter)
			if err == nil {
				err = os.WriteFile(path, data, 0o644)
			}
			if err != nil {
				step.Fail(err)
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			written++
		}
		step.Done(fmt.Sprintf("%d files", written))

		notifySuccess("Exported %d templates to %s", written, exportDir)
		return nil
	},
}

func loadStarters(args []string) ([]*templates.Template, error) {
	switch {
	case importBuiltin && len(args) > 0:
		return nil, fmt.Errorf("use either a directory or --builtin")
	case importBuiltin:
		return templates.LoadBuiltinTemplates()
	case len(args) == 1:
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if !info.IsDir() {
			tmpl, err := templates.LoadTemplate(args[0])
			if err != nil {
				return nil, err
			}
			return []*templates.Template{tmpl}, nil
		}
		return templates.LoadTemplatesFromDir(args[0])
	}

	projectDir := GetConfig().Templates.ProjectDir
	if projectDir == "" {
		if wd, err := os.Getwd(); err == nil {
			projectDir = wd
		}
	}
	return templates.LoadTemplatesFromSearchPaths(projectDir)
}

// withoutExistingTitles drops starters whose title is already stored,
// comparing case-insensitively.
func withoutExistingTitles(starters []*templates.Template, existing []*models.Template) ([]*templates.Template, int) {
	titles := make(map[string]struct{}, len(existing))
	for _, tmpl := range existing {
		titles[strings.ToLower(tmpl.Title)] = struct{}{}
	}

	kept := make([]*templates.Template, 0, len(starters))
	for _, starter := range starters {
		key := strings.ToLower(starter.Title)
		if _, exists := titles[key]; exists {
			continue
		}
		titles[key] = struct{}{}
		kept = append(kept, starter)
	}
	return kept, len(starters) - len(kept)
}

// toStarters converts stored templates into starter templates with unique
// file-safe names.
func toStarters(items []*models.Template) []*templates.Template {
	used := make(map[string]struct{}, len(items))
	starters := make([]*templates.Template, 0, len(items))
	for _, item := range items {
		base := slugify(item.Title)
		name := base
		for n := 2; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = struct{}{}
		starters = append(starters, &templates.Template{
			Name:  name,
			Title: item.Title,
			Body:  item.Body,
		})
	}
	return starters
}

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "template"
	}
	return slug
}
