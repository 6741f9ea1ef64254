package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/trexbot/trex"
	"github.com/trexbot/trex/controller"
)

const (
	appID       = "io.trexbot.trex"
	maxLogLines = 200
)

// ConnectFunc starts sending commands to the controller and returns the writer that the UI's
// command lines go to
type ConnectFunc func(controller.Config) (io.Writer, error)

// DriveUI is a desktop panel for the T'REX. It is an io.Writer so the controller's output can be
// shown in its log
type DriveUI struct {
	application fyne.App

	logMtx   sync.Mutex
	logLines []string
	logText  *widget.Label
	logWrap  *container.Scroll
}

func NewDriveUI() *DriveUI {
	application := app.NewWithID(appID)

	logText := widget.NewLabel("")
	logText.TextStyle = fyne.TextStyle{Monospace: true}
	logScroll := container.NewVScroll(logText)
	logScroll.SetMinSize(fyne.NewSize(400, 150))

	return &DriveUI{
		application: application,
		logText:     logText,
		logWrap:     logScroll,
	}
}

// Write appends controller output to the log, keeping only the most recent lines
func (ui *DriveUI) Write(p []byte) (int, error) {
	ui.logMtx.Lock()
	ui.logLines = appendLog(ui.logLines, string(p), maxLogLines)
	text := strings.Join(ui.logLines, "")
	ui.logMtx.Unlock()

	fyne.Do(func() {
		ui.logText.SetText(text)
		ui.logWrap.ScrollToBottom()
	})

	return len(p), nil
}

// appendLog adds s to lines, splitting after each newline, and drops the oldest lines beyond limit.
// An unterminated last line is continued by the next call
func appendLog(lines []string, s string, limit int) []string {
	if len(lines) > 0 && !strings.HasSuffix(lines[len(lines)-1], "\n") {
		s = lines[len(lines)-1] + s
		lines = lines[:len(lines)-1]
	}

	lines = append(lines, strings.SplitAfter(s, "\n")...)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}

// Run shows the drive panel and blocks until the window is closed or ctx is done. If cfg has no
// serial port, the configuration window is shown first
func (ui *DriveUI) Run(ctx context.Context, cfg controller.Config, connect ConnectFunc) {
	show := func() {
		w, err := connect(cfg)
		if err != nil {
			window := ui.application.NewWindow("T'REX")
			window.Show()
			showError(ui.application, window, fmt.Errorf("error connecting: %w", err))
			return
		}
		ui.showDriveWindow(ctx, w)
	}

	if cfg.SerialPort == "" {
		configWindow := NewConfigWindow(ui.application)
		configWindow.OnSubmit = show
		configWindow.Show(&cfg)
	} else {
		show()
	}

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			ui.application.Quit()
		})
	}()

	ui.application.Run()
}

func (ui *DriveUI) showDriveWindow(ctx context.Context, w io.Writer) {
	window := ui.application.NewWindow("T'REX")

	modeTimer := newTimer(false)
	modeTimer.Go(ctx)

	c := &controllerWrapper{
		writer:    w,
		modeTimer: modeTimer,
	}

	modeLabelText := widget.NewLabel("Mode: " + modeLabel(trex.ModeIdle))
	var modeButtons []fyne.CanvasObject
	for _, m := range modes {
		modeButtons = append(modeButtons, widget.NewButton(modeLabel(m), func() {
			modeLabelText.SetText("Mode: " + modeLabel(m))
			c.SetMode(m)
		}))
	}

	var servoRows []fyne.CanvasObject
	for ch := range trex.ServoChannels {
		servoRows = append(servoRows, createServoSlider(ch, c))
	}

	beepButton := widget.NewButton("Beep", func() {
		c.Beep(1)
	})
	statusButton := widget.NewButton("Status", c.Status)
	verboseCheck := widget.NewCheck("Verbose", func(checked bool) {
		if checked {
			c.Verbose()
		}
	})

	contentContainer := container.NewVBox(
		container.NewHBox(
			modeLabelText,
			layout.NewSpacer(),
			container.NewPadded(modeTimer.text),
		),
		container.NewGridWithColumns(len(modeButtons), modeButtons...),
		widget.NewCard("Servos", "", container.NewVBox(servoRows...)),
		container.NewHBox(beepButton, statusButton, verboseCheck),
		widget.NewAccordion(
			widget.NewAccordionItem("Logs", ui.logWrap),
		),
	)

	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(500, 400))
	window.SetMaster()
	window.Show()
}

// createServoSlider makes one row for a servo channel. The servo attaches when the slider is moved
// and detaches with the Detach button
func createServoSlider(channel int, c *controllerWrapper) *fyne.Container {
	defaultValue := 1500.0
	valueLabel := widget.NewLabel(fmt.Sprintf("%.0f", defaultValue))

	reversed := widget.NewCheck("Reverse", nil)

	slider := widget.NewSlider(1000, 2000)
	slider.Step = 10
	slider.SetValue(defaultValue)
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(fmt.Sprintf("%.0f", value))
	}
	slider.OnChangeEnded = func(value float64) {
		c.SetServo(channel, value, reversed.Checked)
	}
	reversed.OnChanged = func(checked bool) {
		c.SetServo(channel, slider.Value, checked)
	}

	detachButton := widget.NewButton("Detach", func() {
		c.DetachServo(channel)
	})

	return container.NewVBox(
		container.NewGridWithColumns(4,
			widget.NewLabel(fmt.Sprintf("Servo %d", channel)),
			valueLabel,
			reversed,
			detachButton,
		),
		slider,
	)
}
