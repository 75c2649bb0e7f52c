package cli

import (
	"fmt"
	"os"

	"github.com/opencode-ai/talk/internal/tui/components"
	"github.com/opencode-ai/talk/internal/tui/styles"
)

func currentStyles() styles.Styles {
	return styles.StylesForTheme(GetConfig().TUI.Theme)
}

// notify prints a transient status line on stderr. JSON modes stay quiet so
// stdout and stderr remain machine readable.
func notify(kind components.NotificationKind, format string, args ...any) {
	if IsJSONOutput() || IsJSONLOutput() {
		return
	}
	message := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(os.Stderr, "%s: %s\n", kind, message)
		return
	}
	fmt.Fprintln(os.Stderr, components.Notification{Kind: kind, Message: message}.Render(currentStyles()))
}

func notifySuccess(format string, args ...any) {
	notify(components.NotificationSuccess, format, args...)
}

func notifyInfo(format string, args ...any) {
	notify(components.NotificationInfo, format, args...)
}

func notifyError(err error) {
	if err == nil {
		return
	}
	if IsJSONOutput() || IsJSONLOutput() {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	notify(components.NotificationError, "%v", err)
}
