//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"wireworld/internal/core"
)

const (
	hudPadding    = 8
	hudLineHeight = 16
)

// HUD renders the status panel to the right of the simulation view.
type HUD struct {
	title      string
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []string
	status     string
}

// NewHUD constructs a HUD with the given title and panel width.
func NewHUD(title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{title: title, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached lines from the latest snapshot.
func (h *HUD) Update(snap core.ParameterSnapshot, status string) {
	if h == nil {
		return
	}
	h.lines = PanelLines(h.title, snap)
	h.status = status
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 20, B: 12, A: 255})

	face := basicfont.Face7x13
	y := hudPadding + hudLineHeight
	for _, line := range h.lines {
		text.Draw(h.panel, line, face, hudPadding, y, color.White)
		y += hudLineHeight
	}
	if h.status != "" {
		text.Draw(h.panel, h.status, face, hudPadding, height-hudPadding, color.RGBA{R: 0xff, G: 0xdd, B: 0x22, A: 0xff})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
