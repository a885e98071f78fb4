//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the key-binding help popup over the board.
type Overlay struct {
	visible bool
	box     *ebiten.Image
}

// NewOverlay constructs a hidden overlay.
func NewOverlay() *Overlay {
	o := &Overlay{}
	w := 0
	for _, line := range HelpLines {
		if n := len(line) * 7; n > w {
			w = n
		}
	}
	o.box = ebiten.NewImage(w+2*hudPadding, len(HelpLines)*hudLineHeight+2*hudPadding)
	return o
}

// Toggle shows or hides the overlay.
func (o *Overlay) Toggle() { o.visible = !o.visible }

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool { return o.visible }

// Draw paints the help box centred on screen when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	o.box.Fill(color.RGBA{A: 0xd0})
	y := hudPadding + hudLineHeight - 3
	for _, line := range HelpLines {
		text.Draw(o.box, line, basicfont.Face7x13, hudPadding, y, color.White)
		y += hudLineHeight
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	bw, bh := o.box.Bounds().Dx(), o.box.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((sw-bw)/2), float64((sh-bh)/2))
	screen.DrawImage(o.box, op)
}
