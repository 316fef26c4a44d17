package core

// Notification levels
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyError   = "error"
)

type (
	// Notification is a short transient user-facing message (a "toast").
	Notification struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Level       string `json:"level"`
	}

	// Notifier is any service that can deliver Notifications to the user.
	// Delivery is fire-and-forget; implementations must never block the caller
	// for longer than it takes to hand the message off.
	Notifier interface {
		Notify(n Notification)
	}
)

func InfoNotification(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: NotifyInfo}
}

func SuccessNotification(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: NotifySuccess}
}

func ErrorNotification(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: NotifyError}
}
