package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"drawsignature/internal/config"
	"drawsignature/internal/logger"
	"drawsignature/internal/state"
)

const AppID = "io.github.drawsignature"

// Controller wires the signature view to the dialogs, menus and file actions
// of the main window.
type Controller struct {
	app     fyne.App
	window  fyne.Window
	cfg     config.Config
	surface *state.Surface
	view    *SignatureView
	status  *notifier
	log     zerolog.Logger

	mainMenu    *fyne.MainMenu
	eraserItem  *fyne.MenuItem
	eraserCheck *widget.Check
}

func NewController(a fyne.App, w fyne.Window, cfg config.Config) *Controller {
	c := &Controller{
		app:     a,
		window:  w,
		cfg:     cfg,
		surface: state.NewSurface(int(cfg.Width), int(cfg.Height)),
		status:  newNotifier(),
		log:     logger.For("ui"),
	}
	c.surface.SetPen(config.LoadPen(a.Preferences()))
	c.view = NewSignatureView(c.surface)
	return c
}

func (c *Controller) Surface() *state.Surface { return c.surface }

func (c *Controller) View() *SignatureView { return c.view }

// Content lays out toolbar, drawing area and status bar.
func (c *Controller) Content() fyne.CanvasObject {
	return container.NewBorder(NewToolbar(c), c.status.label, nil, nil, c.view)
}

func (c *Controller) MainMenu() *fyne.MainMenu {
	c.eraserItem = fyne.NewMenuItem("Eraser", func() {
		c.SetEraser(!c.surface.Eraser())
	})
	c.mainMenu = fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Save", c.Save),
			fyne.NewMenuItem("Save As…", c.ShowSaveAsDialog),
			fyne.NewMenuItem("Open…", c.ShowOpenDialog),
		),
		fyne.NewMenu("Draw",
			fyne.NewMenuItem("Color…", c.ShowColorDialog),
			fyne.NewMenuItem("Line Width…", c.ShowWidthDialog),
			c.eraserItem,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Clear", c.Clear),
		),
	)
	return c.mainMenu
}

func (c *Controller) addShortcuts() {
	cv := c.window.Canvas()
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { c.Save() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { c.ShowOpenDialog() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyDelete, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { c.Clear() })
}

func (c *Controller) SetColor(col color.NRGBA) {
	c.surface.SetColor(col)
	c.SetEraser(false)
	config.SavePen(c.app.Preferences(), c.surface.Pen())
	c.log.Debug().Uint8("a", col.A).Uint8("r", col.R).Uint8("g", col.G).Uint8("b", col.B).Msg("pen colour set")
}

func (c *Controller) SetWidth(w float32) {
	c.surface.SetWidth(w)
	config.SavePen(c.app.Preferences(), c.surface.Pen())
	c.log.Debug().Float32("width", c.surface.Width()).Msg("pen width set")
}

func (c *Controller) SetEraser(on bool) {
	c.surface.SetEraser(on)
	if c.eraserCheck != nil {
		c.eraserCheck.SetChecked(on)
	}
	if c.eraserItem != nil && c.eraserItem.Checked != on {
		c.eraserItem.Checked = on
		c.mainMenu.Refresh()
	}
}

func (c *Controller) Clear() {
	c.surface.Clear()
	c.status.Notify("Canvas cleared")
}

func (c *Controller) ShowColorDialog() {
	showColorDialog(c.window, c.surface.Color(), c.SetColor)
}

func (c *Controller) ShowWidthDialog() {
	showWidthDialog(c.window, c.surface.Pen(), c.SetWidth)
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg config.Config) {
	a := app.NewWithID(AppID)
	w := a.NewWindow("Draw Signature")
	w.Resize(fyne.NewSize(cfg.Width, cfg.Height))

	c := NewController(a, w, cfg)
	w.SetContent(c.Content())
	w.SetMainMenu(c.MainMenu())
	c.addShortcuts()

	log := logger.For("ui")
	log.Info().Float32("width", cfg.Width).Float32("height", cfg.Height).Msg("window ready")
	w.ShowAndRun()
}
