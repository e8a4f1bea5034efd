package tray

import "fyne.io/fyne/v2"

// Notifier shows notifications through the desktop notification service.
type Notifier struct {
	app fyne.App
}

// NewNotifier creates a Notifier for app.
func NewNotifier(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

// Notify sends a desktop notification. Delivery failures are not reported by fyne.
func (notifier *Notifier) Notify(title, body string) {
	notification := fyne.NewNotification(title, body)
	fyne.Do(func() {
		notifier.app.SendNotification(notification)
	})
}
