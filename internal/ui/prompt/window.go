// Package prompt shows a small undecorated window while the timer waits for
// the user to take or skip a break.
package prompt

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/timer"
)

// Config defines prompt visuals.
type Config struct {
	Opacity uint8
}

// DefaultConfig returns the prompt defaults.
func DefaultConfig() Config {
	return Config{Opacity: 230}
}

// Actions are invoked from the prompt buttons.
type Actions struct {
	OnTakeBreak func()
	OnSkipBreak func()
}

// View is the text and button state derived from a timer snapshot.
type View struct {
	Visible    bool
	Title      string
	Subtitle   string
	Countdown  string
	CanTakeNow bool
}

// NewView derives what the prompt shows for state. Only the rollover phase is visible.
func NewView(state timer.State) View {
	if state.Phase != timer.PhaseRollover {
		return View{}
	}

	view := View{
		Visible:    true,
		Title:      "Break time",
		Countdown:  state.Clock(),
		CanTakeNow: state.BreakDeficit > 0,
	}
	if view.CanTakeNow {
		view.Subtitle = fmt.Sprintf("%s of break banked", timer.FormatSeconds(state.BreakDeficit))
	} else {
		view.Subtitle = "No break banked"
	}
	return view
}

// Window manages the prompt UI.
type Window struct {
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	timerLabel    *canvas.Text
	breakButton   *widget.Button
	skipButton    *widget.Button
	visible       bool
}

const (
	promptWidthFraction  = float32(0.16)
	promptHeightFraction = float32(0.16)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden prompt window.
func New(app fyne.App, config Config, actions Actions) *Window {
	window := app.NewWindow("Pomodoro")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	titleLabel := canvas.NewText("", white)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	subtitleLabel := canvas.NewText("", white)
	subtitleLabel.TextSize = 14

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 16

	prompt := &Window{
		window:        window,
		config:        config,
		background:    canvas.NewRectangle(color.NRGBA{A: config.Opacity}),
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		timerLabel:    timerLabel,
		breakButton:   widget.NewButton("Take break", nil),
		skipButton:    widget.NewButton("Keep working", nil),
	}
	prompt.breakButton.OnTapped = func() { call(actions.OnTakeBreak) }
	prompt.skipButton.OnTapped = func() { call(actions.OnSkipBreak) }

	text := container.New(&textLayout{}, titleLabel, subtitleLabel, timerLabel)
	buttons := container.NewGridWithColumns(2, prompt.breakButton, prompt.skipButton)
	content := container.NewBorder(nil, buttons, nil, nil, text)
	window.SetContent(container.NewStack(prompt.background, container.NewPadded(content)))
	window.SetCloseIntercept(prompt.hide)
	return prompt
}

// Render shows, refreshes or hides the prompt for state.
// It must run on the fyne main goroutine.
func (prompt *Window) Render(state timer.State) {
	view := NewView(state)
	if !view.Visible {
		prompt.hide()
		return
	}

	prompt.titleLabel.Text = view.Title
	prompt.subtitleLabel.Text = view.Subtitle
	prompt.timerLabel.Text = view.Countdown
	prompt.titleLabel.Refresh()
	prompt.subtitleLabel.Refresh()
	prompt.timerLabel.Refresh()
	if view.CanTakeNow {
		prompt.breakButton.Enable()
	} else {
		prompt.breakButton.Disable()
	}

	if !prompt.visible {
		prompt.visible = true
		prompt.resizeToScreenFraction()
		prompt.window.Show()
		prompt.window.RequestFocus()
	}
}

// UpdateConfig updates prompt visuals.
func (prompt *Window) UpdateConfig(config Config) {
	prompt.config = config
	prompt.background.FillColor = color.NRGBA{A: config.Opacity}
	canvas.Refresh(prompt.background)
}

func (prompt *Window) hide() {
	if !prompt.visible {
		return
	}
	prompt.visible = false
	prompt.window.Hide()
}

func (prompt *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	// Canvas size stands in for monitor size when it is clearly screen-like.
	if canvasSize := prompt.window.Canvas().Size(); canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	minSize := prompt.window.Content().MinSize()
	width := max(screenSize.Width*promptWidthFraction, minSize.Width)
	height := max(screenSize.Height*promptHeightFraction, minSize.Height)

	prompt.window.Resize(fyne.NewSize(width, height))
	prompt.window.CenterOnScreen()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// textLayout stacks title and subtitle at the top and pins the countdown to the bottom.
type textLayout struct{}

func (layout *textLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title, subtitle, countdown := objects[0], objects[1], objects[2]

	pad := size.Height * 0.05
	width := max(size.Width-pad*2, 0)

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(width, titleSize.Height))

	subtitleY := pad + titleSize.Height + 6
	subtitle.Move(fyne.NewPos(pad, subtitleY))
	subtitle.Resize(fyne.NewSize(width, subtitle.MinSize().Height))

	countdownSize := countdown.MinSize()
	countdown.Move(fyne.NewPos(pad, max(size.Height-pad-countdownSize.Height, 0)))
	countdown.Resize(countdownSize)
}

func (layout *textLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects[:3] {
		size := object.MinSize()
		width = max(width, size.Width)
		height += size.Height
	}
	return fyne.NewSize(width+20, height+26)
}
