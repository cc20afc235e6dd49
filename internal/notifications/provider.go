package notifications

import "context"

// NotificationType represents the kind of alert being sent.
type NotificationType string

const (
	NotificationTypeGrowth    NotificationType = "growth"
	NotificationTypeFeedError NotificationType = "feed_error"
)

// Notification represents an alert to be sent.
type Notification struct {
	Type    NotificationType
	Title   string
	Message string
	Color   int
}

// Provider defines the interface for notification providers, so other
// backends (Telegram, Slack, ...) can slot in next to Discord.
type Provider interface {
	// Name returns the provider's identifier.
	Name() string

	// IsConfigured returns true if the provider has valid configuration.
	IsConfigured() bool

	// Connect establishes connection to the notification service.
	Connect(ctx context.Context) error

	// Disconnect closes the connection.
	Disconnect() error

	// Send sends a notification.
	Send(ctx context.Context, notification Notification) error
}
