package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel stacks sliders and checkboxes vertically inside a translucent box.
// Widgets are laid out top to bottom in the order they were added.
type Panel struct {
	Title string
	X, Y  float64
	Width float64

	sliders    []*Slider
	checkboxes []*Checkbox
	order      []any // layout order, mixing both widget kinds

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

const (
	panelPadding = 10
	sliderPitch  = 38 // label line plus bar plus gap
	checkPitch   = 24
	titlePitch   = 22
)

// AddSlider appends a slider and returns it for value reads.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+panelPadding, 0, p.Width-2*panelPadding, label, min, max, value)
	p.sliders = append(p.sliders, s)
	p.order = append(p.order, s)
	p.layout()
	return s
}

// AddCheckbox appends a checkbox and returns it for value reads.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+panelPadding, 0, label, value)
	p.checkboxes = append(p.checkboxes, c)
	p.order = append(p.order, c)
	p.layout()
	return c
}

func (p *Panel) layout() {
	y := p.Y + titlePitch + 16
	for _, w := range p.order {
		switch widget := w.(type) {
		case *Slider:
			widget.Y = y
			y += sliderPitch
		case *Checkbox:
			widget.Y = y
			y += checkPitch
		}
	}
}

// Height returns the current panel height from its content.
func (p *Panel) Height() float64 {
	h := float64(titlePitch + panelPadding + 16)
	for _, w := range p.order {
		switch w.(type) {
		case *Slider:
			h += sliderPitch
		case *Checkbox:
			h += checkPitch
		}
	}
	return h
}

// Contains reports whether the screen point falls inside the panel, so the
// caller can keep panel clicks from reaching the world underneath.
func (p *Panel) Contains(x, y int) bool {
	return float64(x) >= p.X && float64(x) <= p.X+p.Width &&
		float64(y) >= p.Y && float64(y) <= p.Y+p.Height()
}

// Update handles input for all widgets. Returns true when any value changed
// this frame.
func (p *Panel) Update() bool {
	changed := false
	for _, s := range p.sliders {
		if s.Update() {
			changed = true
		}
	}
	for _, c := range p.checkboxes {
		if c.Update() {
			changed = true
		}
	}
	return changed
}

// Draw renders the panel background, title and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	h := p.Height()
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelPadding), int(p.Y+5))

	for _, s := range p.sliders {
		s.Draw(screen)
	}
	for _, c := range p.checkboxes {
		c.Draw(screen)
	}
}
