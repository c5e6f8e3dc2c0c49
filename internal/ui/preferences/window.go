package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// Window is the main TouchGrass window: a status line over the
// preferences form.
type Window struct {
	window    fyne.Window
	status    *widget.Label
	interval  *widget.Entry
	activity  *widget.Check
	threshold *widget.Slider
	sound     *widget.Check
	autostart *widget.Check
	theme     *widget.RadioGroup
	onSave    func(model.PreferencesUpdate)
}

// New creates the window. onSave receives the user's committed changes.
func New(app fyne.App, title string, prefs model.Preferences, onSave func(model.PreferencesUpdate)) *Window {
	window := app.NewWindow(title)

	status := widget.NewLabel("")
	interval := widget.NewEntry()
	interval.SetPlaceHolder(fmt.Sprintf("%d-%d", model.MinIntervalMinutes, model.MaxIntervalMinutes))

	thresholdLabel := widget.NewLabel("")
	threshold := widget.NewSlider(float64(model.MinIdleThresholdMinutes), float64(model.MaxIdleThresholdMinutes))
	threshold.Step = 1
	threshold.OnChanged = func(value float64) {
		thresholdLabel.SetText(fmt.Sprintf("%.0f min", value))
	}

	activity := widget.NewCheck("Pause the countdown while I'm away", func(enabled bool) {
		if enabled {
			threshold.Enable()
		} else {
			threshold.Disable()
		}
	})
	sound := widget.NewCheck("Play a sound with reminders", nil)
	autostart := widget.NewCheck("Start at login", nil)
	themeChoice := widget.NewRadioGroup([]string{themeDarkLabel, themeLightLabel}, nil)
	themeChoice.Horizontal = true

	form := container.NewVBox(
		status,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Reminders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Remind me every"), interval, widget.NewLabel("min")),
		activity,
		container.NewBorder(nil, nil, widget.NewLabel("Away after"), thresholdLabel, threshold),
		sound,
		widget.NewLabelWithStyle("App", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
		container.NewHBox(widget.NewLabel("Theme"), themeChoice),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(window.Hide)

	prefsWindow := &Window{
		window:    window,
		status:    status,
		interval:  interval,
		activity:  activity,
		threshold: threshold,
		sound:     sound,
		autostart: autostart,
		theme:     themeChoice,
		onSave:    onSave,
	}
	prefsWindow.SetPreferences(prefs)

	saveButton.OnTapped = prefsWindow.handleSave
	cancelButton.OnTapped = window.Hide

	return prefsWindow
}

// Show displays the window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide hides the window.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

// SetStatus replaces the status line.
func (prefs *Window) SetStatus(line string) {
	prefs.status.SetText(line)
}

// SetPreferences replaces the form values.
func (prefs *Window) SetPreferences(current model.Preferences) {
	values := valuesFromPreferences(current)
	prefs.interval.SetText(values.interval)
	prefs.threshold.SetValue(values.threshold)
	prefs.activity.SetChecked(values.activity)
	prefs.sound.SetChecked(values.sound)
	prefs.autostart.SetChecked(values.autostart)
	prefs.theme.SetSelected(values.themeLabel)
}

func (prefs *Window) handleSave() {
	update := buildUpdate(formValues{
		interval:   prefs.interval.Text,
		activity:   prefs.activity.Checked,
		threshold:  prefs.threshold.Value,
		sound:      prefs.sound.Checked,
		autostart:  prefs.autostart.Checked,
		themeLabel: prefs.theme.Selected,
	})
	if prefs.onSave != nil {
		prefs.onSave(update)
	}
	prefs.window.Hide()
}
