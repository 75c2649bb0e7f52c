package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/talk/internal/db"
	"github.com/opencode-ai/talk/internal/library"
	"github.com/opencode-ai/talk/internal/models"
)

var (
	logType  string
	logSince time.Duration
	logLimit int
)

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVar(&logType, "type", "", "filter by event type (e.g. template.generated)")
	logCmd.Flags().DurationVar(&logSince, "since", 0, "only events newer than this (e.g. 24h)")
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 50, "maximum events to show")
}

var logCmd = &cobra.Command{
	Use:   "log [template]",
	Short: "Show template history",
	Long: `Show the event log: creations, edits, deletions, generations and
clipboard failures. With a template reference only its events are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		eventRepo := db.NewEventRepository(database)
		query := db.EventQuery{Limit: logLimit}

		if len(args) == 1 {
			service := library.NewService(db.NewTemplateRepository(database))
			tmpl, err := service.Find(ctx, args[0])
			if err != nil {
				return err
			}
			entityType := models.EntityTypeTemplate
			query.EntityType = &entityType
			query.EntityID = &tmpl.ID
		}
		if logType != "" {
			eventType := models.EventType(logType)
			query.Type = &eventType
		}
		if logSince > 0 {
			since := time.Now().Add(-logSince)
			query.Since = &since
		}

		page, err := eventRepo.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, page.Events)
		}

		if len(page.Events) == 0 {
			notifyInfo("No events")
			return nil
		}

		rows := make([][]string, 0, len(page.Events))
		for _, event := range page.Events {
			rows = append(rows, []string{
				event.Timestamp.Local().Format("2006-01-02 15:04:05"),
				string(event.Type),
				shortTemplateID(event.EntityID),
				summarizePayload(event.Payload),
			})
		}
		return writeTable(os.Stdout, []string{"TIME", "TYPE", "TEMPLATE", "DETAILS"}, rows)
	},
}

func summarizePayload(payload []byte) string {
	text := strings.TrimSpace(string(payload))
	if text == "" || text == "null" {
		return "-"
	}
	const maxLen = 60
	if len(text) > maxLen {
		return text[:maxLen-3] + "..."
	}
	return text
}
