package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	work          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	rollover      *widget.Entry
	interval      *widget.Entry
	bell          *widget.Check
	notifications *widget.Check
	idlePause     *widget.Check
	idleAfter     *widget.Entry
	schedule      *widget.Entry
	status        *widget.Label
}

// New creates a preferences window. onSave receives validated settings.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		rollover:      widget.NewEntry(),
		interval:      widget.NewEntry(),
		bell:          widget.NewCheck("Ring the terminal bell", nil),
		notifications: widget.NewCheck("Desktop notifications", nil),
		idlePause:     widget.NewCheck("Pause work when I am away", nil),
		idleAfter:     widget.NewEntry(),
		schedule:      widget.NewEntry(),
		status:        widget.NewLabel(""),
	}
	prefs.schedule.SetPlaceHolder("cron, e.g. 0 9 * * 1-5")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Cycle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.interval, widget.NewLabel("sessions")),
		container.NewHBox(widget.NewLabel("Decide within"), prefs.rollover, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.bell,
		prefs.notifications,
		widget.NewLabelWithStyle("Automation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.idlePause,
		container.NewHBox(widget.NewLabel("Away after"), prefs.idleAfter, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Start work at"), prefs.schedule),
		widget.NewLabel("Changes apply the next time the timer starts."),
		prefs.status,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(window.Hide)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(strconv.Itoa(int(settings.Work.Minutes())))
	prefs.shortBreak.SetText(strconv.Itoa(int(settings.ShortBreak.Minutes())))
	prefs.longBreak.SetText(strconv.Itoa(int(settings.LongBreak.Minutes())))
	prefs.rollover.SetText(strconv.Itoa(int(settings.Rollover.Seconds())))
	prefs.interval.SetText(strconv.Itoa(settings.LongBreakInterval))
	prefs.bell.SetChecked(settings.Bell)
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.idlePause.SetChecked(settings.IdlePause)
	prefs.idleAfter.SetText(strconv.Itoa(int(settings.IdlePauseAfter.Minutes())))
	prefs.schedule.SetText(settings.AutostartSchedule)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.work.Text); ok {
		settings.Work = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.shortBreak.Text); ok {
		settings.ShortBreak = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.longBreak.Text); ok {
		settings.LongBreak = time.Duration(minutes) * time.Minute
	}
	if seconds, ok := parsePositiveInt(prefs.rollover.Text); ok {
		settings.Rollover = time.Duration(seconds) * time.Second
	}
	if count, ok := parsePositiveInt(prefs.interval.Text); ok {
		settings.LongBreakInterval = count
	}
	if minutes, ok := parsePositiveInt(prefs.idleAfter.Text); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}
	settings.Bell = prefs.bell.Checked
	settings.Notifications = prefs.notifications.Checked
	settings.IdlePause = prefs.idlePause.Checked
	settings.AutostartSchedule = strings.TrimSpace(prefs.schedule.Text)

	if err := settings.Validate(); err != nil {
		prefs.status.SetText(err.Error())
		return
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
