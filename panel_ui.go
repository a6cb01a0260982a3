package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strconv"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	clipboard "golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"sightline/overlay"
)

// overlayPanel is the draggable settings window. Position lives only in
// memory: dragging updates rect, hiding and showing restores it, and
// nothing is ever written to disk.
type overlayPanel struct {
	ui       *ebitenui.UI
	window   *widget.Window
	settings *overlay.Settings
	tone     func(string)

	rInput         *widget.TextInput
	gInput         *widget.TextInput
	bInput         *widget.TextInput
	emissionInput  *widget.TextInput
	lengthInput    *widget.TextInput
	thicknessInput *widget.TextInput
	offsetInput    *widget.TextInput
	toggleBtn      *widget.Button

	rect    image.Rectangle
	visible bool
	clipOK  bool
}

func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

func newOverlayPanel(settings *overlay.Settings, tone func(string)) *overlayPanel {
	p := &overlayPanel{
		settings: settings,
		tone:     tone,
		rect:     image.Rect(24, 72, 24+280, 72+440),
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("panel: clipboard unavailable, copy disabled: %v", err)
	} else {
		p.clipOK = true
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var fontFace ebtext.Face = goFace

	form := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{R: 30, G: 32, B: 38, A: 235})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
	)

	makeField := func(label string) *widget.TextInput {
		form.AddChild(widget.NewLabel(
			widget.LabelOpts.Text(label, &fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
		))
		input := widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(200, 24)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     solidNineSlice(color.NRGBA{R: 245, G: 245, B: 245, A: 255}),
				Disabled: solidNineSlice(color.NRGBA{R: 200, G: 200, B: 200, A: 255}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
			widget.TextInputOpts.Face(&fontFace),
			widget.TextInputOpts.SubmitOnEnter(true),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				p.apply()
			}),
		)
		form.AddChild(input)
		return input
	}

	p.rInput = makeField("R")
	p.gInput = makeField("G")
	p.bInput = makeField("B")
	p.emissionInput = makeField("Brightness")
	p.lengthInput = makeField("Length")
	p.thicknessInput = makeField("Thickness")
	p.offsetInput = makeField("Y offset")

	btnImage := &widget.ButtonImage{
		Idle:    solidNineSlice(color.NRGBA{R: 70, G: 74, B: 84, A: 255}),
		Hover:   solidNineSlice(color.NRGBA{R: 90, G: 94, B: 104, A: 255}),
		Pressed: solidNineSlice(color.NRGBA{R: 55, G: 58, B: 66, A: 255}),
	}
	btnTextColor := &widget.ButtonTextColor{Idle: color.White}

	makeButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImage),
			widget.ButtonOpts.Text(label, &fontFace, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(94, 26)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Spacing(6, 6),
		)),
	)
	buttons.AddChild(makeButton("Apply", p.apply))
	p.toggleBtn = makeButton("", p.toggle)
	buttons.AddChild(p.toggleBtn)
	buttons.AddChild(makeButton("Reset", p.reset))
	buttons.AddChild(makeButton("Copy", p.copy))
	form.AddChild(buttons)

	titleBar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{R: 50, G: 54, B: 64, A: 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 5, Left: 8}),
		)),
	)
	titleBar.AddChild(widget.NewText(
		widget.TextOpts.Text("beam overlay", &fontFace, color.White),
	))

	p.window = widget.NewWindow(
		widget.WindowOpts.Contents(form),
		widget.WindowOpts.TitleBar(titleBar, 24),
		widget.WindowOpts.Draggable(),
		widget.WindowOpts.MinSize(280, 440),
		widget.WindowOpts.MoveHandler(func(args *widget.WindowChangedEventArgs) {
			p.rect = args.Rect
		}),
	)

	p.ui = &ebitenui.UI{Container: widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)}

	p.refreshText()
	p.show()
	return p
}

func (p *overlayPanel) show() {
	p.window.SetLocation(p.rect)
	p.ui.AddWindow(p.window)
	p.visible = true
}

func (p *overlayPanel) toggleVisible() {
	if p.visible {
		p.window.Close()
		p.visible = false
		return
	}
	p.show()
}

// apply parses every field. Invalid or empty input falls back to the
// previous value; out-of-range input is clamped. Either way the text is
// rewritten to the value actually in effect.
func (p *overlayPanel) apply() {
	s := p.settings
	s.R = overlay.ParseChannel(p.rInput.GetText(), s.R)
	s.G = overlay.ParseChannel(p.gInput.GetText(), s.G)
	s.B = overlay.ParseChannel(p.bInput.GetText(), s.B)
	s.Emission = overlay.ParseFloat(p.emissionInput.GetText(), s.Emission, overlay.MinEmission, overlay.MaxEmission)
	s.Length = overlay.ParseFloat(p.lengthInput.GetText(), s.Length, overlay.MinLength, overlay.MaxLength)
	s.Thickness = overlay.ParseFloat(p.thicknessInput.GetText(), s.Thickness, overlay.MinThickness, overlay.MaxThickness)
	s.VerticalOffset = overlay.ParseFloat(p.offsetInput.GetText(), s.VerticalOffset, overlay.MinOffset, overlay.MaxOffset)
	p.refreshText()
	p.tone(toneTick)
}

func (p *overlayPanel) toggle() {
	p.settings.Enabled = !p.settings.Enabled
	p.refreshText()
	p.tone(toneTick)
}

func (p *overlayPanel) reset() {
	*p.settings = overlay.Defaults()
	p.refreshText()
	p.tone(toneTick)
}

func (p *overlayPanel) copy() {
	if !p.clipOK {
		log.Printf("panel: clipboard unavailable, copy skipped")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(p.settings.Encode()))
	p.tone(toneTick)
}

// refreshText rewrites every field from the settings record, so the
// panel always shows the values in effect.
func (p *overlayPanel) refreshText() {
	s := p.settings
	p.rInput.SetText(strconv.Itoa(s.R))
	p.gInput.SetText(strconv.Itoa(s.G))
	p.bInput.SetText(strconv.Itoa(s.B))
	p.emissionInput.SetText(formatFloat(s.Emission))
	p.lengthInput.SetText(formatFloat(s.Length))
	p.thicknessInput.SetText(formatFloat(s.Thickness))
	p.offsetInput.SetText(formatFloat(s.VerticalOffset))

	if text := p.toggleBtn.Text(); text != nil {
		if s.Enabled {
			text.Label = "On"
		} else {
			text.Label = "Off"
		}
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
