package components

import (
	"strings"

	"github.com/opencode-ai/talk/internal/tui/styles"
)

// NotificationKind is the severity of a notification.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

// Notification is a short, transient status message.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Render renders the notification as a single line.
func (n Notification) Render(styleSet styles.Styles) string {
	message := strings.TrimSpace(n.Message)
	switch n.Kind {
	case NotificationSuccess:
		return styleSet.Success.Render("✓ " + message)
	case NotificationError:
		return styleSet.Error.Render("✗ " + message)
	default:
		return styleSet.Info.Render("• " + message)
	}
}
