package preferences

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// fixedVariantTheme pins the default theme to one variant regardless of
// the OS setting.
type fixedVariantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t fixedVariantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

// ApplyTheme switches the app to the chosen color scheme.
func ApplyTheme(app fyne.App, scheme model.Theme) {
	variant := theme.VariantDark
	if scheme == model.ThemeLight {
		variant = theme.VariantLight
	}
	app.Settings().SetTheme(fixedVariantTheme{Theme: theme.DefaultTheme(), variant: variant})
}
