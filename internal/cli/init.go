package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/talk/internal/config"
)

var (
	initForce bool

	// configDirFunc is replaced in tests.
	configDirFunc = config.DefaultConfigDir
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

type initResult struct {
	name    string
	status  string // done, skipped or failed
	message string
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and template database",
	Long: `Create ~/.config/talk/config.yaml with defaults and initialize the
template database with the starter templates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := []initResult{
			createConfigFile(),
			initDatabase(context.Background()),
		}

		if IsJSONOutput() || IsJSONLOutput() {
			out := make([]map[string]string, 0, len(results))
			for _, r := range results {
				out = append(out, map[string]string{"step": r.name, "status": r.status, "message": r.message})
			}
			return WriteOutput(os.Stdout, out)
		}

		failed := false
		for _, r := range results {
			fmt.Printf("%-10s %-8s %s\n", r.name, r.status, r.message)
			if r.status == "failed" {
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("init did not complete")
		}
		return nil
	},
}

func createConfigFile() initResult {
	result := initResult{name: "config"}

	dir := configDirFunc()
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		result.status = "skipped"
		result.message = fmt.Sprintf("%s already exists (use --force to overwrite)", path)
		return result
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("failed to create %s: %v", dir, err)
		return result
	}
	if err := os.WriteFile(path, []byte(config.DefaultConfigYAML), 0o644); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("failed to write %s: %v", path, err)
		return result
	}

	result.status = "done"
	result.message = path
	return result
}

func initDatabase(ctx context.Context) initResult {
	result := initResult{name: "database"}

	service, closeLibrary, err := openLibrary(ctx)
	if err != nil {
		result.status = "failed"
		result.message = err.Error()
		return result
	}
	defer closeLibrary()

	added, err := service.Seed(ctx)
	if err != nil {
		result.status = "failed"
		result.message = err.Error()
		return result
	}

	count, err := service.Count(ctx)
	if err != nil {
		result.status = "failed"
		result.message = err.Error()
		return result
	}

	result.status = "done"
	result.message = fmt.Sprintf("%s (%d templates, %d added)", GetConfig().Database.Path, count, added)
	return result
}
